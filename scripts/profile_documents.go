package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/pdf-profiler/internal/config"
	"alfredoptarigan/pdf-profiler/internal/models"
	"alfredoptarigan/pdf-profiler/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: go run ./scripts/profile_documents.go <file.pdf> [file.pdf...]")
	}

	// Load configuration
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	llmService, err := services.NewLLMService(cfg, logger)
	if err != nil {
		logger.Fatal("❌ Failed to initialize LLM client", zap.Error(err))
	}

	profileService := services.NewProfileService(
		services.NewPDFParserService(cfg.Extraction.MaxChars, logger),
		services.NewPromptBuilder(cfg.Extraction.MaxChars),
		llmService,
		services.NewNormalizer(logger),
		logger,
	)

	ctx := context.Background()
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	successCount := 0
	failCount := 0

	for _, path := range os.Args[1:] {
		log.Printf("\n📄 Processing: %s", path)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		outcome, err := profileService.ProcessPDF(ctx, path)
		if err != nil {
			if errors.Is(err, services.ErrEmptyDocument) {
				log.Printf("   ⚠️  No readable text found in PDF")
			} else {
				log.Printf("   ❌ Failed to profile document: %v", err)
			}
			failCount++
			continue
		}

		response := models.ProcessResponse{Summary: outcome.Result}
		if outcome.FellBack() {
			response.Warning = fmt.Sprintf("Model response required JSON extraction (%s)", outcome.Layer)
			response.RawResponse = services.TruncateChars(outcome.RawResponse, cfg.Extraction.ExcerptChars)
		}

		if err := encoder.Encode(response); err != nil {
			log.Printf("   ❌ Failed to write result: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Profiled %s", path)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Profile Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
