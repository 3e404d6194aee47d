package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dfarias/merenda-gateway-go/pkg/auth"
	"github.com/dfarias/merenda-gateway-go/pkg/database"
	"github.com/dfarias/merenda-gateway-go/pkg/handlers"
	"github.com/dfarias/merenda-gateway-go/pkg/kitchen"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger, _ := zap.NewProduction()

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	client := kitchen.NewClient(os.Getenv("KITCHEN_API_URL"), logger)
	h := &handlers.Handler{DB: db, Kitchen: client, Log: logger}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// no background poller in the serverless runtime; chat reads fall
	// through to per-session fetches
	h.RegisterRoutes(r, os.Getenv("KITCHEN_SERVICE_TOKEN"))
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
