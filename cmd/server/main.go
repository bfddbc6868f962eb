package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/chaiyareokput-tech/Finsi/internal/analysis"
	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/generator"
	_ "github.com/chaiyareokput-tech/Finsi/internal/generator/gemini"
	_ "github.com/chaiyareokput-tech/Finsi/internal/generator/openai"
	"github.com/chaiyareokput-tech/Finsi/internal/handler"
	"github.com/chaiyareokput-tech/Finsi/internal/normalize"
	"github.com/chaiyareokput-tech/Finsi/internal/router"
	"github.com/chaiyareokput-tech/Finsi/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env for local development; missing files are fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gen, err := generator.NewGenerator(&cfg.Generator)
	if err != nil {
		return fmt.Errorf("failed to initialize generation provider: %w", err)
	}

	builder, err := generator.NewBuilder(&cfg.Generator)
	if err != nil {
		return fmt.Errorf("failed to build analyst prompt: %w", err)
	}

	normalizer := normalize.New(&cfg.Upload)
	analyzer := analysis.New(normalizer, builder, gen, cfg.Generator.MaxLineItems)
	tracker := session.NewTracker()

	analysisH := handler.NewAnalysisHandler(analyzer, tracker)
	healthH := handler.NewHealthHandler()

	r := router.Setup(analysisH, healthH, &cfg.CORS)

	log.Printf("Server starting on %s (provider %s)", cfg.Server.Port, cfg.Generator.Provider)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
