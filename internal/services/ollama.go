package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/pdf-profiler/internal/models"
)

type ollamaService struct {
	url          string
	model        string
	timeout      time.Duration
	excerptChars int
	logger       *zap.Logger
}

func NewOllamaService(url, model string, timeout time.Duration, excerptChars int, logger *zap.Logger) LLMService {
	return &ollamaService{
		url:          url,
		model:        model,
		timeout:      timeout,
		excerptChars: excerptChars,
		logger:       logger,
	}
}

func (o *ollamaService) Name() string {
	return "Ollama"
}

// Generate implements LLMService. The fixed timeout is the only bound on the call.
func (o *ollamaService) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RequestError{Provider: o.Name(), Cause: err}
	}

	start := time.Now()
	defer func() {
		LLMRequestDuration.WithLabelValues(o.Name()).Observe(time.Since(start).Seconds())
	}()

	agent := fiber.Post(o.url).
		JSON(models.OllamaGenerateRequest{
			Model:  o.model,
			Stream: false,
			Prompt: prompt,
		}).
		Timeout(o.timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		LLMRequestsTotal.WithLabelValues(o.Name(), "request_error").Inc()
		return "", &RequestError{Provider: o.Name(), Cause: errors.Join(errs...)}
	}

	if code < 200 || code > 299 {
		LLMRequestsTotal.WithLabelValues(o.Name(), "upstream_error").Inc()
		o.logger.Warn("model server returned non-success status",
			zap.String("model", o.model),
			zap.Int("status", code))
		return "", &UpstreamError{
			Provider:   o.Name(),
			StatusCode: code,
			Body:       TruncateChars(string(body), o.excerptChars),
		}
	}

	var result models.OllamaGenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		LLMRequestsTotal.WithLabelValues(o.Name(), "decode_error").Inc()
		return "", fmt.Errorf("failed to decode %s response: %w", o.Name(), err)
	}

	LLMRequestsTotal.WithLabelValues(o.Name(), "success").Inc()
	o.logger.Debug("model reply received",
		zap.String("model", o.model),
		zap.Int("chars", CharCount(result.Response)),
		zap.Duration("latency", time.Since(start)))

	return result.Response, nil
}
