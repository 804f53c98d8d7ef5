package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT   string
	DB_URL string

	SHOPIFY_API_KEY    string
	SHOPIFY_API_SECRET string
	SHOPIFY_SCOPES     string

	APP_URL         string
	CHATBOT_API_URL string

	ADMIN_TOKEN_HASH string
	CORS_ORIGIN      string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")

	SHOPIFY_API_KEY = mustEnv("SHOPIFY_API_KEY")
	SHOPIFY_API_SECRET = mustEnv("SHOPIFY_API_SECRET")
	SHOPIFY_SCOPES = getEnv("SHOPIFY_SCOPES", "read_products,write_discounts")

	APP_URL = mustEnv("APP_URL")
	CHATBOT_API_URL = mustEnv("CHATBOT_API_URL")

	// bcrypt hash of the operator token; /admin stays locked until it is set
	ADMIN_TOKEN_HASH = getEnv("ADMIN_TOKEN_HASH", "")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
