package main

import (
	"os"
	"time"

	"jarvis-app/config"
	"jarvis-app/database"
	billingapi "jarvis-app/internal/api/billing"
	widgetapi "jarvis-app/internal/api/widget"
	routes "jarvis-app/internal/app/http"
	"jarvis-app/internal/infra/chatbot"
	"jarvis-app/internal/infra/proxycache"
	"jarvis-app/internal/infra/shopifyapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnv()
	database.InitDB()

	chatClient := chatbot.New(config.CHATBOT_API_URL, 0)
	responseCache := proxycache.New(5 * time.Minute)
	provider := shopifyapi.New(config.APP_URL+"/api/subscription", os.Getenv("SHOPIFY_BILLING_TEST") == "true")

	widgetHandler := widgetapi.NewHandler(chatClient, responseCache)
	billingHandler := billingapi.NewHandler(provider)

	r := gin.Default()

	// Merchant-admin CORS only; widget routes manage their own headers.
	if config.CORS_ORIGIN != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{config.CORS_ORIGIN},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	routes.RegisterRoutes(r, widgetHandler, billingHandler)

	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}
