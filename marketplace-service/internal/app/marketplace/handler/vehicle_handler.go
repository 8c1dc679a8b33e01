package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/service"
)

type VehicleServiceInterface interface {
	CreateVehicle(ctx context.Context, principal entity.Principal, req *entity.CreateVehicleRequest) (*entity.Vehicle, error)
	GetVehicle(ctx context.Context, id string, principal *entity.Principal, displayCurrency string) (*entity.VehicleResponse, error)
	ListPublic(ctx context.Context, filter entity.ListingFilter) (*entity.VehicleListResponse, error)
	ListMine(ctx context.Context, sellerID string) ([]entity.Vehicle, error)
	UpdateVehicle(ctx context.Context, principal entity.Principal, id string, req *entity.UpdateVehicleRequest) (*entity.Vehicle, error)
	DeleteVehicle(ctx context.Context, principal entity.Principal, id string) error
}

type VehicleHandler struct {
	vehicleService VehicleServiceInterface
	validator      *validator.Validate
}

func NewVehicleHandler(vehicleService VehicleServiceInterface) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		validator:      validator.New(),
	}
}

// CreateVehicle создает объявление, оно попадает на модерацию со статусом pending
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	respondData(c, http.StatusCreated, vehicle)
}

// GetVehicle возвращает объявление, не-одобренные видны только владельцу и админу
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")
	if vehicleID == "" {
		respondError(c, http.StatusBadRequest, "Vehicle ID is required")
		return
	}

	var principal *entity.Principal
	if p, ok := CurrentPrincipal(c); ok {
		principal = &p
	}

	displayCurrency := strings.ToUpper(c.Query("currency"))

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), vehicleID, principal, displayCurrency)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get vehicle")
		return
	}

	respondData(c, http.StatusOK, vehicle)
}

// ListVehicles возвращает страницу одобренных объявлений с фильтрацией и сортировкой
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	filter := parseListingFilter(c)

	page, err := h.vehicleService.ListPublic(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	respondData(c, http.StatusOK, page)
}

// ListMyVehicles возвращает объявления текущего продавца во всех статусах
func (h *VehicleHandler) ListMyVehicles(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vehicles, err := h.vehicleService.ListMine(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	respondData(c, http.StatusOK, entity.VehicleListResponse{
		Vehicles: vehicles,
		Total:    len(vehicles),
	})
}

// UpdateVehicle обновляет объявление владельца
// Отклонённое объявление после правки возвращается на модерацию
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
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

	var req entity.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), principal, vehicleID, &req)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		if errors.Is(err, service.ErrNotOwner) {
			respondError(c, http.StatusForbidden, "Access denied")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	respondData(c, http.StatusOK, vehicle)
}

// DeleteVehicle удаляет объявление владельца
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
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

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), principal, vehicleID); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		if errors.Is(err, service.ErrNotOwner) {
			respondError(c, http.StatusForbidden, "Access denied")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	respondMessage(c, http.StatusOK, "Vehicle deleted successfully")
}

// parseListingFilter собирает фильтр списка из query-параметров
func parseListingFilter(c *gin.Context) entity.ListingFilter {
	filter := entity.ListingFilter{
		Query: c.Query("q"),
		Sort:  c.Query("sort"),
	}

	if categories := c.Query("categories"); categories != "" {
		for _, cat := range strings.Split(categories, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				filter.Categories = append(filter.Categories, cat)
			}
		}
	}

	if raw := c.Query("price_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceMin = &v
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceMax = &v
		}
	}

	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Page = v
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.PageSize = v
		}
	}

	return filter
}
