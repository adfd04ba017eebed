package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vsingh-08/NetraAI/internal/domain"
	"github.com/vsingh-08/NetraAI/internal/service"
)

// PlateRecognizer runs the plate recognition pipeline on an encoded image.
type PlateRecognizer interface {
	DetectPlate(ctx context.Context, imageBytes []byte) (domain.PlateResult, error)
}

type PlateHandler struct {
	pipeline PlateRecognizer
}

func NewPlateHandler(pipeline PlateRecognizer) *PlateHandler {
	return &PlateHandler{pipeline: pipeline}
}

// POST /detect_plate
func (h *PlateHandler) DetectPlate(c *gin.Context) {
	var req domain.DetectPlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	imageBytes, err := base64DecodeImage(req.Image)
	if err != nil {
		log.Printf("PlateHandler: failed to decode image payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format"})
		return
	}

	result, err := h.pipeline.DetectPlate(c.Request.Context(), imageBytes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format"})
			return
		}
		log.Printf("PlateHandler: pipeline error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !result.Found {
		c.JSON(http.StatusOK, domain.DetectPlateResponse{
			Success:      false,
			LicensePlate: nil,
			Message:      "No license plate detected",
		})
		return
	}

	c.JSON(http.StatusOK, domain.DetectPlateResponse{
		Success:       true,
		LicensePlate:  &result.Plate,
		Confidence:    result.Confidence,
		AllDetections: result.AllDetections,
	})
}

// base64DecodeImage decodes a base64 image payload, tolerating a data-URL
// prefix (everything up to the first comma is discarded). Clients encode
// with either the standard or the URL-safe alphabet, so both are tried.
func base64DecodeImage(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}

	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		imageBytes, err = base64.URLEncoding.DecodeString(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}

	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	return imageBytes, nil
}
