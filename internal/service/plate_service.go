package service

import (
	"context"
	"errors"
	"image"
	"log"
	"regexp"
	"strings"

	"gocv.io/x/gocv"

	"github.com/vsingh-08/NetraAI/internal/domain"
)

// ErrInvalidImage marks input that could not be decoded as an image.
var ErrInvalidImage = errors.New("invalid image data")

// Plate text constraints after normalization.
const (
	plateMinLen = 4
	plateMaxLen = 12

	// Vertical fraction of a vehicle box above the plate band. Plates sit
	// low on a vehicle, so only the bottom 40% of the box is scanned.
	plateBandTop = 0.6
)

var nonPlateChars = regexp.MustCompile(`[^A-Z0-9]`)

// vehicleClasses are the detector labels treated as plate carriers.
var vehicleClasses = map[string]bool{
	"car":   true,
	"bus":   true,
	"truck": true,
}

// VehicleDetector locates objects in a decoded image.
type VehicleDetector interface {
	Loaded() bool
	Detect(img gocv.Mat) ([]domain.Detection, error)
}

// TextRecognizer extracts raw text readings from an encoded image region.
type TextRecognizer interface {
	Ready() bool
	RecognizeText(ctx context.Context, imageBytes []byte) ([]domain.TextDetection, error)
}

// PlateService runs the full recognition pipeline: detect vehicle regions,
// read text from each region's plate band, filter and normalize candidates,
// and pick the highest-confidence one.
type PlateService struct {
	detector   VehicleDetector
	recognizer TextRecognizer

	detectionThreshold   float64
	recognitionThreshold float64
}

func NewPlateService(detector VehicleDetector, recognizer TextRecognizer,
	detectionThreshold, recognitionThreshold float64) *PlateService {
	return &PlateService{
		detector:             detector,
		recognizer:           recognizer,
		detectionThreshold:   detectionThreshold,
		recognitionThreshold: recognitionThreshold,
	}
}

// DetectPlate decodes imageBytes and runs the pipeline. It returns
// ErrInvalidImage when the bytes are not a decodable image; collaborator
// failures further down are logged and absorbed into an empty result, so a
// valid image never produces an error.
func (s *PlateService) DetectPlate(ctx context.Context, imageBytes []byte) (domain.PlateResult, error) {
	img, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return domain.PlateResult{}, ErrInvalidImage
	}
	defer img.Close()

	if img.Empty() {
		return domain.PlateResult{}, ErrInvalidImage
	}

	var candidates []domain.PlateCandidate
	for _, band := range s.plateBands(img) {
		candidates = append(candidates, s.candidatesFromRegion(ctx, img, band)...)
	}

	best, ok := bestCandidate(candidates)
	if !ok {
		return domain.PlateResult{}, nil
	}

	texts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		texts = append(texts, c.Text)
	}

	return domain.PlateResult{
		Found:         true,
		Plate:         best.Text,
		Confidence:    best.Confidence,
		AllDetections: texts,
	}, nil
}

// plateBands returns the image rectangles to run recognition on. With no
// usable detector or no qualifying vehicle detections the whole image is the
// single band, so the result is never empty.
func (s *PlateService) plateBands(img gocv.Mat) []image.Rectangle {
	bounds := image.Rect(0, 0, img.Cols(), img.Rows())

	if !s.detector.Loaded() {
		return []image.Rectangle{bounds}
	}

	detections, err := s.detector.Detect(img)
	if err != nil {
		log.Printf("PlateService: vehicle detection failed, using whole image: %v", err)
		return []image.Rectangle{bounds}
	}

	bands := vehicleBands(detections, bounds, s.detectionThreshold)
	if len(bands) == 0 {
		return []image.Rectangle{bounds}
	}
	return bands
}

// vehicleBands keeps detections of plate-carrying classes above threshold
// and maps each to the lower portion of its box, clamped to bounds.
func vehicleBands(detections []domain.Detection, bounds image.Rectangle, threshold float64) []image.Rectangle {
	var bands []image.Rectangle
	for _, d := range detections {
		if !vehicleClasses[d.Label] || d.Confidence <= threshold {
			continue
		}
		band := plateBand(d.Box, bounds)
		if band.Empty() {
			continue
		}
		bands = append(bands, band)
	}
	return bands
}

// plateBand is the bottom part of a vehicle box, full width. Detector boxes
// can overshoot the image, so the box is clamped first.
func plateBand(box, bounds image.Rectangle) image.Rectangle {
	box = box.Intersect(bounds)
	if box.Empty() {
		return image.Rectangle{}
	}
	top := box.Min.Y + int(float64(box.Dy())*plateBandTop)
	return image.Rect(box.Min.X, top, box.Max.X, box.Max.Y)
}

// candidatesFromRegion crops the band, runs the recognizer on it and filters
// the raw readings into candidates. Recognizer failures count as zero
// results for the region.
func (s *PlateService) candidatesFromRegion(ctx context.Context, img gocv.Mat, band image.Rectangle) []domain.PlateCandidate {
	region := img.Region(band)
	buf, err := gocv.IMEncode(".jpg", region)
	region.Close()
	if err != nil {
		log.Printf("PlateService: failed to encode region %v: %v", band, err)
		return nil
	}
	regionBytes := make([]byte, len(buf.GetBytes()))
	copy(regionBytes, buf.GetBytes())
	buf.Close()

	readings, err := s.recognizer.RecognizeText(ctx, regionBytes)
	if err != nil {
		log.Printf("PlateService: text recognition failed for region %v: %v", band, err)
		return nil
	}

	return filterCandidates(readings, band, s.recognitionThreshold)
}

// filterCandidates normalizes raw readings and drops those below the
// confidence threshold or outside plate text bounds. Duplicates are kept;
// the selector resolves them by confidence.
func filterCandidates(readings []domain.TextDetection, box image.Rectangle, threshold float64) []domain.PlateCandidate {
	var candidates []domain.PlateCandidate
	for _, r := range readings {
		if r.Confidence <= threshold {
			continue
		}
		text := normalizePlateText(r.Text)
		if len(text) < plateMinLen || len(text) > plateMaxLen {
			continue
		}
		candidates = append(candidates, domain.PlateCandidate{
			Text:       text,
			Confidence: r.Confidence,
			Box:        box,
		})
	}
	return candidates
}

// normalizePlateText uppercases raw text and strips everything outside
// A-Z0-9. It is idempotent.
func normalizePlateText(raw string) string {
	return nonPlateChars.ReplaceAllString(strings.ToUpper(raw), "")
}

// bestCandidate picks the candidate with maximum confidence. The strict >
// comparison keeps the first maximum, preserving first-seen order on ties.
func bestCandidate(candidates []domain.PlateCandidate) (domain.PlateCandidate, bool) {
	if len(candidates) == 0 {
		return domain.PlateCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}
