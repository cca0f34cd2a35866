package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"carnes-boutique/app"
	"carnes-boutique/db"
	"carnes-boutique/logger"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables: %v", err)
		}
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Sync()

	ctx := context.Background()
	handler, err := app.Initialize(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("❌ Failed to initialize application", zap.Error(err))
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	logger.Log.Info("🚀 Server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("import", "POST "+cfg.BaseURL+"/admin/catalog/import"),
	)

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Log.Fatal("❌ Server failed to start", zap.Error(err))
	}
}
