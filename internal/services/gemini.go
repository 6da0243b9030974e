package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type geminiService struct {
	client       *genai.Client
	modelName    string
	timeout      time.Duration
	excerptChars int
	logger       *zap.Logger
}

func NewGeminiService(apiKey, modelName string, timeout time.Duration, excerptChars int, logger *zap.Logger) (LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:       client,
		modelName:    modelName,
		timeout:      timeout,
		excerptChars: excerptChars,
		logger:       logger,
	}, nil
}

func (g *geminiService) Name() string {
	return "Gemini"
}

// Generate implements LLMService.
func (g *geminiService) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		LLMRequestDuration.WithLabelValues(g.Name()).Observe(time.Since(start).Seconds())
	}()

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		mapped := g.classifyError(err)
		var upstream *UpstreamError
		if errors.As(mapped, &upstream) {
			LLMRequestsTotal.WithLabelValues(g.Name(), "upstream_error").Inc()
		} else {
			LLMRequestsTotal.WithLabelValues(g.Name(), "request_error").Inc()
		}
		return "", mapped
	}

	if resp == nil {
		LLMRequestsTotal.WithLabelValues(g.Name(), "decode_error").Inc()
		return "", fmt.Errorf("no response generated (nil response)")
	}

	LLMRequestsTotal.WithLabelValues(g.Name(), "success").Inc()
	text := resp.Text()
	g.logger.Debug("model reply received",
		zap.String("model", g.modelName),
		zap.Int("chars", CharCount(text)),
		zap.Duration("latency", time.Since(start)))

	return text, nil
}

func (g *geminiService) classifyError(err error) error {
	return classifyGeminiError(g.Name(), g.excerptChars, err)
}

// classifyGeminiError maps API status errors to UpstreamError and everything
// else to RequestError.
func classifyGeminiError(provider string, excerptChars int, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Provider:   provider,
			StatusCode: apiErr.Code,
			Body:       TruncateChars(apiErr.Message, excerptChars),
		}
	}

	return &RequestError{Provider: provider, Cause: err}
}
