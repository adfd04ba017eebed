package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"

	"github.com/vsingh-08/NetraAI/internal/api"
	"github.com/vsingh-08/NetraAI/internal/api/handler"
	"github.com/vsingh-08/NetraAI/internal/config"
	"github.com/vsingh-08/NetraAI/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. AWS SDK config and clients. Loaded before the detector so the one
	// fatal startup path runs while there is nothing to clean up yet.
	awsSDKCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("Could not load AWS SDK config: %v", err)
	}
	log.Println("AWS SDK config loaded for region:", cfg.AWSRegion)

	rekognitionClient := rekognition.NewFromConfig(awsSDKCfg)
	pollyClient := polly.NewFromConfig(awsSDKCfg)

	// 3. Vehicle detector. A missing model must not prevent startup; the
	// pipeline degrades to whole-image recognition.
	detector := service.NewDetectorService(cfg)
	defer detector.Close()
	if !detector.Loaded() {
		log.Println("WARNING: running without vehicle detection, whole images go straight to OCR.")
	}

	// 4. Services
	recognizer := service.NewRecognizerService(rekognitionClient)
	plateService := service.NewPlateService(detector, recognizer,
		cfg.DetectionThreshold, cfg.RecognitionThreshold)
	chatbotService := service.NewChatbotService()
	speechService := service.NewSpeechService(pollyClient, cfg.PollyVoice)

	// 5. Handlers and router
	plateHandler := handler.NewPlateHandler(plateService)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)
	speechHandler := handler.NewSpeechHandler(speechService, cfg.AudioDir)
	healthHandler := handler.NewHealthHandler(detector, recognizer)

	router := api.SetupRouter(plateHandler, chatbotHandler, speechHandler, healthHandler)

	// 6. HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shut down: %v", err)
	}

	log.Println("Server stopped.")
}
