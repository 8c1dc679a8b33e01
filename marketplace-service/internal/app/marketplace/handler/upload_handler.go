package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/util"
)

// UploadHandler выдает подписи для прямой загрузки изображений на файловый хостинг
// Сами файлы через бэкенд не проходят
type UploadHandler struct {
	apiKey    string
	apiSecret string
	validator *validator.Validate
}

func NewUploadHandler(apiKey, apiSecret string) *UploadHandler {
	return &UploadHandler{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		validator: validator.New(),
	}
}

// GetUploadSignature подписывает параметры загрузки текущим временем
func (h *UploadHandler) GetUploadSignature(c *gin.Context) {
	var req entity.UploadSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	timestamp := time.Now().Unix()
	signature := util.SignUploadParams(req.Folder, timestamp, h.apiSecret)

	respondData(c, http.StatusOK, entity.UploadSignatureResponse{
		Signature: signature,
		Timestamp: timestamp,
		Folder:    req.Folder,
		APIKey:    h.apiKey,
	})
}
