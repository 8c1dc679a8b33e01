package handler

import (
	"github.com/gin-gonic/gin"

	"motormarket/auth-service/internal/app/auth/entity"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, entity.APIResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, entity.APIResponse{Success: true, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.APIResponse{Success: false, Error: message})
}
