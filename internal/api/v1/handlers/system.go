package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"audio-minutes/internal/api/v1/dto"
	"audio-minutes/internal/app/api"
	"audio-minutes/internal/version"
)

// SystemHandler serves service metadata and health
type SystemHandler struct {
	provider api.ProviderInfo
}

func NewSystemHandler(provider api.ProviderInfo) *SystemHandler {
	return &SystemHandler{provider: provider}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceInfo{
		Service:   version.ServiceName,
		Version:   version.Version,
		PoweredBy: fmt.Sprintf("%s (%s)", h.provider.Name, h.provider.Model),
		Endpoints: map[string]string{
			"/summarize": "POST - upload an audio file for transcription and summary",
			"/health":    "GET - server health",
			"/metrics":   "GET - prometheus metrics",
		},
	})
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Message: "Server is running normally.",
	})
}
