package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/services"
)

type HealthHandler struct {
	model   *services.ModelHandle
	formats []string
}

func NewHealthHandler(model *services.ModelHandle, extractor services.TextExtractor) *HealthHandler {
	return &HealthHandler{
		model:   model,
		formats: extractor.SupportedFormats(),
	}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status := "healthy"
	if !h.model.Loaded() {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":      status,
		"time":        time.Now(),
		"model":       h.model.Name(),
		"modelLoaded": h.model.Loaded(),
		"formats":     h.formats,
	})
}
