package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/vsingh-08/NetraAI/internal/domain"
)

// DetectTextAPI is the slice of the Rekognition client the recognizer needs.
type DetectTextAPI interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput,
		optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// RecognizerService extracts text from image regions with Rekognition
// DetectText. It is safe for concurrent use; the underlying client is
// shared and read-only.
type RecognizerService struct {
	client DetectTextAPI
}

func NewRecognizerService(client DetectTextAPI) *RecognizerService {
	return &RecognizerService{client: client}
}

// Ready reports whether a Rekognition client is configured.
func (s *RecognizerService) Ready() bool {
	return s.client != nil
}

// RecognizeText returns raw (text, confidence) results for one image region.
// Rekognition reports confidence on a 0..100 scale; results are normalized
// to 0..1 here so the rest of the pipeline has a single scale.
func (s *RecognizerService) RecognizeText(ctx context.Context, imageBytes []byte) ([]domain.TextDetection, error) {
	if s.client == nil {
		return nil, fmt.Errorf("rekognition client not configured")
	}

	input := &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: imageBytes},
	}

	result, err := s.client.DetectText(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("rekognition DetectText: %w", err)
	}

	var detections []domain.TextDetection
	for _, td := range result.TextDetections {
		if td.Type != types.TextTypesLine && td.Type != types.TextTypesWord {
			continue
		}
		if td.DetectedText == nil || td.Confidence == nil {
			continue
		}
		detections = append(detections, domain.TextDetection{
			Text:       *td.DetectedText,
			Confidence: float64(*td.Confidence) / 100,
		})
	}

	return detections, nil
}
