package service

import (
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/vsingh-08/NetraAI/internal/config"
	"github.com/vsingh-08/NetraAI/internal/domain"
)

// SSD-MobileNet input geometry.
const (
	detectorInputSize = 300
	detectorScale     = 1.0 / 127.5
	detectorMean      = 127.5
)

// cocoLabels maps SSD-MobileNet COCO class ids to names. Only classes the
// pipeline can plausibly see are listed; anything else gets a numeric label.
var cocoLabels = map[int]string{
	1:  "person",
	2:  "bicycle",
	3:  "car",
	4:  "motorcycle",
	6:  "bus",
	8:  "truck",
	10: "traffic light",
	13: "stop sign",
	14: "parking meter",
}

// DetectorService runs the pretrained vehicle detection network. The network
// is loaded once at startup; a missing or broken model leaves the service in
// a not-loaded state instead of failing startup, and callers are expected to
// fall back to whole-image processing.
type DetectorService struct {
	net       gocv.Net
	loaded    bool
	threshold float64

	// gocv.Net forward passes are not reentrant.
	mu sync.Mutex
}

func NewDetectorService(cfg *config.Config) *DetectorService {
	s := &DetectorService{threshold: cfg.DetectionThreshold}

	if err := s.loadNet(cfg.DetectorModelPath, cfg.DetectorConfigPath); err != nil {
		log.Printf("DetectorService: vehicle detector unavailable: %v", err)
		return s
	}

	s.loaded = true
	log.Println("DetectorService: detection network loaded")
	return s
}

func (s *DetectorService) loadNet(modelPath, configPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model file not found: %s", modelPath)
	}
	if _, err := os.Stat(configPath); err != nil {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return fmt.Errorf("failed to load network from %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		return fmt.Errorf("failed to set network backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		return fmt.Errorf("failed to set network target: %w", err)
	}

	s.net = net
	return nil
}

// Loaded reports whether the detection network is available.
func (s *DetectorService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Detect runs one forward pass and returns detections above the confidence
// threshold, with boxes in pixel coordinates of img.
func (s *DetectorService) Detect(img gocv.Mat) ([]domain.Detection, error) {
	if img.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, fmt.Errorf("detection network not initialized")
	}

	blob := gocv.BlobFromImage(img, detectorScale,
		image.Pt(detectorInputSize, detectorInputSize),
		gocv.NewScalar(detectorMean, detectorMean, detectorMean, 0), true, false)
	defer blob.Close()

	s.net.SetInput(blob, "")
	output := s.net.Forward("")
	defer output.Close()

	// Output rows are [batch, classID, confidence, x1, y1, x2, y2] with
	// normalized coordinates.
	reshaped := output.Reshape(1, output.Total()/7)
	defer reshaped.Close()

	cols := float32(img.Cols())
	rows := float32(img.Rows())

	var results []domain.Detection
	for i := 0; i < reshaped.Rows(); i++ {
		confidence := float64(reshaped.GetFloatAt(i, 2))
		if confidence <= s.threshold {
			continue
		}

		classID := int(reshaped.GetFloatAt(i, 1))
		x1 := int(reshaped.GetFloatAt(i, 3) * cols)
		y1 := int(reshaped.GetFloatAt(i, 4) * rows)
		x2 := int(reshaped.GetFloatAt(i, 5) * cols)
		y2 := int(reshaped.GetFloatAt(i, 6) * rows)

		results = append(results, domain.Detection{
			Label:      classLabel(classID),
			Confidence: confidence,
			Box:        image.Rect(x1, y1, x2, y2),
		})
	}

	return results, nil
}

// Close releases the detection network. Safe to call more than once; a
// Detect racing Close sees either the open net or a not-initialized error.
func (s *DetectorService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return
	}
	if err := s.net.Close(); err != nil {
		log.Printf("DetectorService: failed to close network: %v", err)
	}
	s.loaded = false
}

func classLabel(classID int) string {
	if label, ok := cocoLabels[classID]; ok {
		return label
	}
	return fmt.Sprintf("class_%d", classID)
}
