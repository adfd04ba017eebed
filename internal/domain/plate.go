package domain

import "image"

// DetectPlateRequest carries a base64 (optionally data-URL prefixed) image.
type DetectPlateRequest struct {
	Image string `json:"image" binding:"required"`
}

type DetectPlateResponse struct {
	Success       bool     `json:"success"`
	LicensePlate  *string  `json:"license_plate"`
	Confidence    float64  `json:"confidence,omitempty"`
	AllDetections []string `json:"all_detections,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// Detection is one object returned by the vehicle detector.
type Detection struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
}

// TextDetection is one raw result from the text recognizer.
// Confidence is normalized to 0..1 regardless of the backing engine.
type TextDetection struct {
	Text       string
	Confidence float64
}

// PlateCandidate is a normalized, filtered plate reading. Text is uppercase
// alphanumeric with length 4..12; Box is the image region it was read from.
type PlateCandidate struct {
	Text       string
	Confidence float64
	Box        image.Rectangle
}

// PlateResult is the outcome of one recognition request. AllDetections keeps
// every candidate text in first-seen order, duplicates included.
type PlateResult struct {
	Found         bool
	Plate         string
	Confidence    float64
	AllDetections []string
}
