package service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// SynthesizeSpeechAPI is the slice of the Polly client the speech service needs.
type SynthesizeSpeechAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput,
		optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// SpeechService converts text to mp3 audio with Polly.
type SpeechService struct {
	client SynthesizeSpeechAPI
	voice  types.VoiceId
}

func NewSpeechService(client SynthesizeSpeechAPI, voice string) *SpeechService {
	return &SpeechService{
		client: client,
		voice:  types.VoiceId(voice),
	}
}

// Synthesize returns the full mp3 byte stream for text.
func (s *SpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("polly client not configured")
	}

	input := &polly.SynthesizeSpeechInput{
		OutputFormat: types.OutputFormatMp3,
		Text:         aws.String(text),
		VoiceId:      s.voice,
		Engine:       types.EngineStandard,
	}

	result, err := s.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("polly SynthesizeSpeech: %w", err)
	}
	defer result.AudioStream.Close()

	audio, err := io.ReadAll(result.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("reading polly audio stream: %w", err)
	}

	return audio, nil
}
