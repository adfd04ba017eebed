package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	AWSRegion string

	DetectorModelPath  string
	DetectorConfigPath string

	// Minimum confidence for vehicle detections and recognized text,
	// both on a 0..1 scale.
	DetectionThreshold   float64
	RecognitionThreshold float64

	PollyVoice string
	AudioDir   string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "5000"),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		DetectorModelPath:  getEnv("DETECTOR_MODEL_PATH", filepath.Join("models", "frozen_inference_graph.pb")),
		DetectorConfigPath: getEnv("DETECTOR_CONFIG_PATH", filepath.Join("models", "ssd_mobilenet_v1_coco.pbtxt")),

		DetectionThreshold:   getEnvAsFloat("DETECTION_THRESHOLD", 0.5),
		RecognitionThreshold: getEnvAsFloat("RECOGNITION_THRESHOLD", 0.5),

		PollyVoice: getEnv("POLLY_VOICE", "Joanna"),
		AudioDir:   getEnv("AUDIO_DIR", os.TempDir()),
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Warning: invalid value for %s, using default %.2f", key, fallback)
	}
	return fallback
}
