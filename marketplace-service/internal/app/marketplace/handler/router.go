package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	vehicleHandler *VehicleHandler,
	adminHandler *AdminHandler,
	favoriteHandler *FavoriteHandler,
	ratingHandler *RatingHandler,
	uploadHandler *UploadHandler,
	analyticsHandler *AnalyticsHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("marketplace-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "marketplace-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	vehicles := router.Group("/vehicles")
	{
		// Публичные маршруты, токен опционален
		vehicles.GET("/", authMiddleware.AuthenticateOptional(), vehicleHandler.ListVehicles)
		vehicles.GET("/:vehicle_id", authMiddleware.AuthenticateOptional(), vehicleHandler.GetVehicle)
		vehicles.GET("/:vehicle_id/rating", authMiddleware.AuthenticateOptional(), ratingHandler.GetRatingSummary)

		authed := vehicles.Group("")
		authed.Use(authMiddleware.Authenticate())
		{
			authed.POST("/", vehicleHandler.CreateVehicle)
			authed.GET("/mine", vehicleHandler.ListMyVehicles)
			authed.PATCH("/:vehicle_id", vehicleHandler.UpdateVehicle)
			authed.DELETE("/:vehicle_id", vehicleHandler.DeleteVehicle)
			authed.POST("/:vehicle_id/rating", ratingHandler.RateVehicle)
			authed.POST("/:vehicle_id/favorite", favoriteHandler.ToggleFavorite)
		}
	}

	favorites := router.Group("/favorites")
	favorites.Use(authMiddleware.Authenticate())
	{
		favorites.GET("/", favoriteHandler.ListFavorites)
	}

	uploads := router.Group("/uploads")
	uploads.Use(authMiddleware.Authenticate())
	{
		uploads.POST("/signature", uploadHandler.GetUploadSignature)
	}

	analytics := router.Group("/analytics")
	{
		analytics.POST("/events", authMiddleware.AuthenticateOptional(), analyticsHandler.IngestEvent)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
	{
		admin.GET("/vehicles", adminHandler.ListAllVehicles)
		admin.GET("/vehicles/pending", adminHandler.ListPendingVehicles)
		admin.POST("/vehicles/:vehicle_id/approve", adminHandler.ApproveVehicle)
		admin.POST("/vehicles/:vehicle_id/reject", adminHandler.RejectVehicle)
		admin.POST("/vehicles/:vehicle_id/comments", adminHandler.AddComment)
		admin.PATCH("/vehicles/:vehicle_id/featured", adminHandler.SetFeatured)
		admin.GET("/stats", adminHandler.GetStats)
	}

	return router
}
