package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/service"
)

type RatingServiceInterface interface {
	Rate(ctx context.Context, userID, vehicleID string, score int) (*entity.RatingSummary, error)
	GetSummary(ctx context.Context, vehicleID string, userID string) (*entity.RatingSummary, error)
}

type RatingHandler struct {
	ratingService RatingServiceInterface
	validator     *validator.Validate
}

func NewRatingHandler(ratingService RatingServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

// RateVehicle ставит или обновляет оценку пользователя и возвращает новый агрегат
func (h *RatingHandler) RateVehicle(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicleID := c.Param("vehicle_id")
	if vehicleID == "" {
		respondError(c, http.StatusBadRequest, "Vehicle ID is required")
		return
	}

	var req entity.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	summary, err := h.ratingService.Rate(c.Request.Context(), principal.UserID, vehicleID, req.Score)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to rate vehicle")
		return
	}

	respondData(c, http.StatusOK, summary)
}

// GetRatingSummary возвращает агрегат оценок объявления
// Для авторизованного пользователя включает его собственную оценку
func (h *RatingHandler) GetRatingSummary(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")
	if vehicleID == "" {
		respondError(c, http.StatusBadRequest, "Vehicle ID is required")
		return
	}

	userID := ""
	if principal, ok := CurrentPrincipal(c); ok {
		userID = principal.UserID
	}

	summary, err := h.ratingService.GetSummary(c.Request.Context(), vehicleID, userID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get rating summary")
		return
	}

	respondData(c, http.StatusOK, summary)
}
