package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type fakeDetectTextAPI struct {
	output *rekognition.DetectTextOutput
	err    error
}

func (f *fakeDetectTextAPI) DetectText(ctx context.Context, params *rekognition.DetectTextInput,
	optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error) {
	return f.output, f.err
}

func TestRecognizeText_MapsAndNormalizesConfidence(t *testing.T) {
	client := &fakeDetectTextAPI{output: &rekognition.DetectTextOutput{
		TextDetections: []types.TextDetection{
			{Type: types.TextTypesLine, DetectedText: aws.String("KA01AB1234"), Confidence: aws.Float32(92.5)},
			{Type: types.TextTypesWord, DetectedText: aws.String("MH12"), Confidence: aws.Float32(48)},
		},
	}}

	s := NewRecognizerService(client)
	detections, err := s.RecognizeText(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("RecognizeText returned error: %v", err)
	}

	if len(detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(detections))
	}
	if detections[0].Text != "KA01AB1234" {
		t.Errorf("text = %q", detections[0].Text)
	}
	if detections[0].Confidence != 0.925 {
		t.Errorf("confidence = %v, expected 0.925", detections[0].Confidence)
	}
	if detections[1].Confidence != 0.48 {
		t.Errorf("confidence = %v, expected 0.48", detections[1].Confidence)
	}
}

func TestRecognizeText_SkipsIncompleteDetections(t *testing.T) {
	client := &fakeDetectTextAPI{output: &rekognition.DetectTextOutput{
		TextDetections: []types.TextDetection{
			{Type: types.TextTypesLine, DetectedText: nil, Confidence: aws.Float32(90)},
			{Type: types.TextTypesLine, DetectedText: aws.String("NO-CONF"), Confidence: nil},
		},
	}}

	s := NewRecognizerService(client)
	detections, err := s.RecognizeText(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("RecognizeText returned error: %v", err)
	}
	if len(detections) != 0 {
		t.Errorf("expected no detections, got %v", detections)
	}
}

func TestRecognizeText_Error(t *testing.T) {
	client := &fakeDetectTextAPI{err: errors.New("throttled")}

	s := NewRecognizerService(client)
	if _, err := s.RecognizeText(context.Background(), []byte{0x01}); err == nil {
		t.Error("expected an error from a failing client")
	}
}

func TestRecognizerReady(t *testing.T) {
	if NewRecognizerService(nil).Ready() {
		t.Error("recognizer without a client must not report ready")
	}
	if !NewRecognizerService(&fakeDetectTextAPI{}).Ready() {
		t.Error("recognizer with a client must report ready")
	}
}
