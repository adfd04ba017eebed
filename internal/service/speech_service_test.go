package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/polly"
)

type fakePollyAPI struct {
	audio []byte
	err   error

	gotInput *polly.SynthesizeSpeechInput
}

func (f *fakePollyAPI) SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput,
	optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.gotInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(bytes.NewReader(f.audio)),
	}, nil
}

func TestSynthesize(t *testing.T) {
	client := &fakePollyAPI{audio: []byte("mp3-bytes")}
	s := NewSpeechService(client, "Joanna")

	audio, err := s.Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if !bytes.Equal(audio, []byte("mp3-bytes")) {
		t.Errorf("audio = %q", audio)
	}

	if client.gotInput == nil || client.gotInput.Text == nil || *client.gotInput.Text != "hello world" {
		t.Error("text was not passed through to the synthesizer")
	}
	if string(client.gotInput.VoiceId) != "Joanna" {
		t.Errorf("voice = %q, expected Joanna", client.gotInput.VoiceId)
	}
}

func TestSynthesize_Error(t *testing.T) {
	s := NewSpeechService(&fakePollyAPI{err: errors.New("quota exceeded")}, "Joanna")
	if _, err := s.Synthesize(context.Background(), "hi"); err == nil {
		t.Error("expected an error from a failing client")
	}
}

func TestSynthesize_NoClient(t *testing.T) {
	s := NewSpeechService(nil, "Joanna")
	if _, err := s.Synthesize(context.Background(), "hi"); err == nil {
		t.Error("expected an error without a client")
	}
}
