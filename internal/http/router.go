package http

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/ocean-s2z/internal/usecase"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(extractionUC *usecase.ExtractionUseCase) *gin.Engine {
	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Allow all origins unless CORS_ALLOWED_ORIGINS lists them.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))

	handler := NewHandler(extractionUC)

	v1 := router.Group("/v1")
	v1.GET("/reader", handler.GetReader)
	v1.GET("/variables", handler.GetVariables)

	router.GET("/health", handler.HealthCheck)

	return router
}
