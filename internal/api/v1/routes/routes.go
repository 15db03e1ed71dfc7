package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio-minutes/internal/api/v1/handlers"
	"audio-minutes/internal/api/v1/services"
	"audio-minutes/internal/app/api"
)

// RegisterRoutes registers the service endpoints on router
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	systemHandler := handlers.NewSystemHandler(container.ProviderInfo)
	router.GET("/", systemHandler.Root)
	router.GET("/health", systemHandler.Health)

	minutesHandler := handlers.NewMinutesHandler(container.MinutesService)
	router.POST("/summarize", minutesHandler.Summarize)

	if container.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(container.MetricsHandler))
	}
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	MinutesService services.MinutesService
	ProviderInfo   api.ProviderInfo
	MetricsHandler http.Handler
}
