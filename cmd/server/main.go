package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dfarias/merenda-gateway-go/pkg/auth"
	"github.com/dfarias/merenda-gateway-go/pkg/chat"
	"github.com/dfarias/merenda-gateway-go/pkg/database"
	"github.com/dfarias/merenda-gateway-go/pkg/handlers"
	"github.com/dfarias/merenda-gateway-go/pkg/kitchen"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := zap.NewProduction()
	if os.Getenv("GIN_MODE") == "debug" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	apiBase := os.Getenv("KITCHEN_API_URL")
	if apiBase == "" {
		log.Fatal("KITCHEN_API_URL is required")
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	client := kitchen.NewClient(apiBase, logger)
	h := &handlers.Handler{DB: db, Kitchen: client, Log: logger}

	// the chat poller needs a backend credential of its own; without
	// one, chat reads fall through to per-session fetches
	serviceToken := os.Getenv("KITCHEN_SERVICE_TOKEN")
	if serviceToken != "" {
		interval := 5 * time.Second
		if raw := os.Getenv("CHAT_POLL_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				interval = parsed
			}
		}
		poller := chat.NewPoller(client.WithToken(serviceToken), interval, logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go poller.Run(ctx)
		h.Chat = poller
	}

	r := gin.Default()
	h.RegisterRoutes(r, serviceToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Gateway starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
