package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/service"
)

type FavoriteServiceInterface interface {
	Toggle(ctx context.Context, userID, vehicleID string) (bool, error)
	List(ctx context.Context, userID string) ([]entity.Vehicle, error)
}

type FavoriteHandler struct {
	favoriteService FavoriteServiceInterface
}

func NewFavoriteHandler(favoriteService FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// ToggleFavorite добавляет или убирает объявление из избранного
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
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

	favorited, err := h.favoriteService.Toggle(c.Request.Context(), principal.UserID, vehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	respondData(c, http.StatusOK, gin.H{"vehicle_id": vehicleID, "favorited": favorited})
}

// ListFavorites возвращает избранные объявления пользователя
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicles, err := h.favoriteService.List(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	respondData(c, http.StatusOK, entity.VehicleListResponse{
		Vehicles: vehicles,
		Total:    len(vehicles),
	})
}
