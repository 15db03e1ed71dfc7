package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio-minutes/internal/api/errors"
	"audio-minutes/internal/api/middleware"
	"audio-minutes/internal/api/v1/dto"
	"audio-minutes/internal/api/v1/services"
)

// MinutesHandler handles audio summary requests
type MinutesHandler struct {
	service services.MinutesService
}

// NewMinutesHandler creates a new minutes handler
func NewMinutesHandler(service services.MinutesService) *MinutesHandler {
	return &MinutesHandler{
		service: service,
	}
}

// Summarize handles POST /summarize.
// The form field "file" carries the audio; its extension is checked before
// anything is written to disk.
func (h *MinutesHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := middleware.BindForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	file, err := req.File.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	response, err := h.service.Summarize(c.Request.Context(), req.File.Filename, req.Extension(), file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
