package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DetectorStatus reports whether the vehicle detection model is loaded.
type DetectorStatus interface {
	Loaded() bool
}

// RecognizerStatus reports whether the text recognizer is usable.
type RecognizerStatus interface {
	Ready() bool
}

type HealthHandler struct {
	detector   DetectorStatus
	recognizer RecognizerStatus
}

func NewHealthHandler(detector DetectorStatus, recognizer RecognizerStatus) *HealthHandler {
	return &HealthHandler{detector: detector, recognizer: recognizer}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"detector_loaded":  h.detector.Loaded(),
		"recognizer_ready": h.recognizer.Ready(),
	})
}
