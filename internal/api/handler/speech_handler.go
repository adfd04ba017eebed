package handler

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vsingh-08/NetraAI/internal/domain"
)

// Synthesizer converts text to an audio byte stream.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type SpeechHandler struct {
	synthesizer Synthesizer
	audioDir    string
}

func NewSpeechHandler(synthesizer Synthesizer, audioDir string) *SpeechHandler {
	if audioDir == "" {
		audioDir = os.TempDir()
	}
	return &SpeechHandler{synthesizer: synthesizer, audioDir: audioDir}
}

// POST /speak
//
// The audio is spooled to a per-request temp file so the response can be
// served as a download; the file is removed once the handler returns,
// whether or not the send succeeded.
func (h *SpeechHandler) Speak(c *gin.Context) {
	var req domain.SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	audio, err := h.synthesizer.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("SpeechHandler: synthesis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	audioPath := filepath.Join(h.audioDir, "speech-"+uuid.NewString()+".mp3")
	if err := os.WriteFile(audioPath, audio, 0o600); err != nil {
		log.Printf("SpeechHandler: failed to write audio file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil {
			log.Printf("SpeechHandler: failed to remove %s: %v", audioPath, err)
		}
	}()

	// The extension-based MIME lookup does not know .mp3 everywhere, so the
	// content type is pinned before serving the file.
	c.Header("Content-Type", "audio/mpeg")
	c.FileAttachment(audioPath, "speech.mp3")
}
