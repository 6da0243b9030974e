package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/pdf-profiler/internal/config"
)

// LLMService sends a single non-streaming generation request.
// Implementations return *RequestError for transport failures and
// *UpstreamError for non-success responses.
type LLMService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewLLMService builds the client for the configured provider.
func NewLLMService(cfg *config.Config, logger *zap.Logger) (LLMService, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		return NewOllamaService(cfg.Ollama.URL, cfg.Ollama.Model, cfg.LLM.Timeout, cfg.Extraction.ExcerptChars, logger), nil
	case config.ProviderGemini:
		return NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.LLM.Timeout, cfg.Extraction.ExcerptChars, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLM.Provider)
	}
}
