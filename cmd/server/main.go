// ABOUTME: Main entry point for the goals MCP server with stdio transport
// ABOUTME: Initializes storage and registers all goal-tracking tools
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/willbda/ten-week-goal-app-sub004/internal/config"
	"github.com/willbda/ten-week-goal-app-sub004/internal/mcp"
	"github.com/willbda/ten-week-goal-app-sub004/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	store, err := storage.Open(cfg.DBPath, storage.Options{
		GraphStrategy: cfg.GraphStrategy,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	server := mcpserver.NewMCPServer(
		"Goal Tracker",
		"0.1.0",
	)
	mcp.RegisterTools(server, store)

	// Storage counters are served over HTTP while the MCP transport owns
	// stdio.
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	log.Println("Goals MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
