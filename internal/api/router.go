package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vsingh-08/NetraAI/internal/api/handler"
)

// SetupRouter wires the four public endpoints. gin.Recovery turns unhandled
// panics into 500 responses; CORS is open because the clients are mobile
// apps served from anywhere.
func SetupRouter(plateH *handler.PlateHandler, chatbotH *handler.ChatbotHandler,
	speechH *handler.SpeechHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.POST("/detect_plate", plateH.DetectPlate)
	r.POST("/chatbot", chatbotH.Chat)
	r.POST("/speak", speechH.Speak)
	r.GET("/health", healthH.Health)

	return r
}
