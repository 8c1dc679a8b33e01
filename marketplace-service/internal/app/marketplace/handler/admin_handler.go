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

type ModerationServiceInterface interface {
	ListAll(ctx context.Context, filter entity.ListingFilter) (*entity.VehicleListResponse, error)
	ListPending(ctx context.Context) ([]entity.Vehicle, error)
	Approve(ctx context.Context, admin entity.Principal, id string) (*entity.Vehicle, error)
	Reject(ctx context.Context, admin entity.Principal, id string, reason string) (*entity.Vehicle, error)
	AddComment(ctx context.Context, admin entity.Principal, id string, note string) error
	SetFeatured(ctx context.Context, admin entity.Principal, id string, featured bool) error
	Stats(ctx context.Context) (*entity.ModerationStats, error)
}

// AdminHandler обслуживает панель модерации
type AdminHandler struct {
	moderationService ModerationServiceInterface
	validator         *validator.Validate
}

func NewAdminHandler(moderationService ModerationServiceInterface) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
		validator:         validator.New(),
	}
}

// ListAllVehicles возвращает объявления всех статусов с фильтрацией
func (h *AdminHandler) ListAllVehicles(c *gin.Context) {
	filter := parseListingFilter(c)
	if raw := c.Query("status"); raw != "" {
		filter.Status = entity.VehicleStatus(raw)
	}

	page, err := h.moderationService.ListAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	respondData(c, http.StatusOK, page)
}

// ListPendingVehicles возвращает очередь модерации
func (h *AdminHandler) ListPendingVehicles(c *gin.Context) {
	vehicles, err := h.moderationService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list pending vehicles")
		return
	}

	respondData(c, http.StatusOK, entity.VehicleListResponse{
		Vehicles: vehicles,
		Total:    len(vehicles),
	})
}

// ApproveVehicle одобряет объявление из статуса pending
func (h *AdminHandler) ApproveVehicle(c *gin.Context) {
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

	vehicle, err := h.moderationService.Approve(c.Request.Context(), principal, vehicleID)
	if err != nil {
		h.respondDecisionError(c, err, "Failed to approve vehicle")
		return
	}

	respondData(c, http.StatusOK, vehicle)
}

// RejectVehicle отклоняет объявление с обязательной причиной
func (h *AdminHandler) RejectVehicle(c *gin.Context) {
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

	var req entity.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	vehicle, err := h.moderationService.Reject(c.Request.Context(), principal, vehicleID, req.Reason)
	if err != nil {
		h.respondDecisionError(c, err, "Failed to reject vehicle")
		return
	}

	respondData(c, http.StatusOK, vehicle)
}

// AddComment добавляет комментарий администратора в историю объявления
func (h *AdminHandler) AddComment(c *gin.Context) {
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

	var req entity.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	if err := h.moderationService.AddComment(c.Request.Context(), principal, vehicleID, req.Note); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	respondMessage(c, http.StatusOK, "Comment added")
}

// SetFeatured помечает объявление как продвигаемое
func (h *AdminHandler) SetFeatured(c *gin.Context) {
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

	var req entity.FeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.moderationService.SetFeatured(c.Request.Context(), principal, vehicleID, req.Featured); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	respondMessage(c, http.StatusOK, "Featured flag updated")
}

// GetStats возвращает счетчики объявлений по статусам
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.moderationService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	respondData(c, http.StatusOK, stats)
}

func (h *AdminHandler) respondDecisionError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrVehicleNotFound) {
		respondError(c, http.StatusNotFound, "Vehicle not found")
		return
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		respondError(c, http.StatusConflict, "Invalid status transition")
		return
	}
	respondError(c, http.StatusInternalServerError, fallback)
}
