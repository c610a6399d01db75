package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes resume upload, candidate listing, and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; uploads will be parsed by the regex fallback chain only")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	model := llm.NewClient(llm.Config{
		APIKey:         cfg.GeminiAPIKey,
		BaseURL:        cfg.GeminiBaseURL,
		Model:          cfg.GeminiModel,
		Attempts:       cfg.ModelAttempts,
		Backoff:        cfg.ModelBackoff,
		RequestTimeout: cfg.ModelRequestTimeout,
	}, logger)

	parser := pipeline.New(model, logger)

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
	}, database, parser, logger)

	return srv.Start()
}
