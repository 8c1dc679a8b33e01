package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
)

type AnalyticsServiceInterface interface {
	Ingest(ctx context.Context, userID string, req *entity.AnalyticsEventRequest) (string, error)
}

type AnalyticsHandler struct {
	analyticsService AnalyticsServiceInterface
	validator        *validator.Validate
}

func NewAnalyticsHandler(analyticsService AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		validator:        validator.New(),
	}
}

// IngestEvent принимает событие аналитики, анонимные события допустимы
func (h *AnalyticsHandler) IngestEvent(c *gin.Context) {
	var req entity.AnalyticsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	userID := ""
	if principal, ok := CurrentPrincipal(c); ok {
		userID = principal.UserID
	}

	eventID, err := h.analyticsService.Ingest(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to ingest event")
		return
	}

	respondData(c, http.StatusAccepted, gin.H{"event_id": eventID})
}
