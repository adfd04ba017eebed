package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return f.audio, f.err
}

func newSpeechRouter(synth Synthesizer, audioDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/speak", NewSpeechHandler(synth, audioDir).Speak)
	return r
}

func TestSpeak_EmptyText(t *testing.T) {
	r := newSpeechRouter(&fakeSynthesizer{}, t.TempDir())

	for _, body := range []string{`{}`, `{"text": ""}`, ``} {
		w := postJSON(t, r, "/speak", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, expected 400", body, w.Code)
		}
	}
}

func TestSpeak_ReturnsAudioAttachment(t *testing.T) {
	audioDir := t.TempDir()
	r := newSpeechRouter(&fakeSynthesizer{audio: []byte("mp3-bytes")}, audioDir)

	w := postJSON(t, r, "/speak", `{"text": "hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q, expected audio/mpeg", got)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "speech.mp3") {
		t.Errorf("Content-Disposition = %q, expected attachment named speech.mp3", cd)
	}
	if w.Body.String() != "mp3-bytes" {
		t.Errorf("body = %q, expected the synthesized audio", w.Body.String())
	}
}

func TestSpeak_RemovesTempFile(t *testing.T) {
	audioDir := t.TempDir()
	r := newSpeechRouter(&fakeSynthesizer{audio: []byte("mp3-bytes")}, audioDir)

	w := postJSON(t, r, "/speak", `{"text": "hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	entries, err := os.ReadDir(audioDir)
	if err != nil {
		t.Fatalf("reading audio dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no residual files, found %d", len(entries))
	}
}

func TestSpeak_SynthesizerError(t *testing.T) {
	r := newSpeechRouter(&fakeSynthesizer{err: errors.New("voice unavailable")}, t.TempDir())

	w := postJSON(t, r, "/speak", `{"text": "hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", w.Code)
	}
}
