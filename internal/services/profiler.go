package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Stage is a step of a profile request. Requests only move forward.
type Stage string

const (
	StageReceived    Stage = "received"
	StageExtracted   Stage = "extracted"
	StagePrompted    Stage = "prompted"
	StageModelCalled Stage = "model-called"
	StageNormalized  Stage = "normalized"
	StageResponded   Stage = "responded"
)

type ProfileOutcome struct {
	Normalized
	RawResponse string
	Stage       Stage
}

type ProfileService interface {
	ProcessPDF(ctx context.Context, filePath string) (*ProfileOutcome, error)
}

type profileService struct {
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	llm           LLMService
	normalizer    *Normalizer
	logger        *zap.Logger
}

func NewProfileService(
	pdfParser PDFParserService,
	promptBuilder *PromptBuilder,
	llm LLMService,
	normalizer *Normalizer,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		pdfParser:     pdfParser,
		promptBuilder: promptBuilder,
		llm:           llm,
		normalizer:    normalizer,
		logger:        logger,
	}
}

// ProcessPDF extracts the document text, asks the model for a profile and
// normalizes the reply. It returns ErrEmptyDocument without calling the model
// when the document has no readable text; model failures are returned as is.
func (p *profileService) ProcessPDF(ctx context.Context, filePath string) (*ProfileOutcome, error) {
	logger := p.logger.With(zap.String("file", filePath))
	logger.Debug("profile request", zap.String("stage", string(StageReceived)))

	content, err := p.pdfParser.ExtractTextWithMetaData(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	if strings.TrimSpace(content.Text) == "" {
		logger.Info("document has no readable text", zap.Int("pages", content.PageCount))
		return nil, ErrEmptyDocument
	}
	logger.Debug("profile request",
		zap.String("stage", string(StageExtracted)),
		zap.Int("pages", content.PageCount),
		zap.Int("pages_with_text", content.PagesWithText),
		zap.Bool("truncated", content.Truncated))

	prompt := p.promptBuilder.BuildProfilePrompt(content.Text)
	logger.Debug("profile request",
		zap.String("stage", string(StagePrompted)),
		zap.Int("prompt_chars", CharCount(prompt)))

	reply, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		logger.Error("model request failed", zap.String("provider", p.llm.Name()), zap.Error(err))
		return nil, err
	}
	raw := strings.TrimSpace(reply)
	logger.Debug("profile request",
		zap.String("stage", string(StageModelCalled)),
		zap.Int("reply_chars", CharCount(raw)))

	normalized := p.normalizer.Normalize(raw)
	logger.Info("profile request",
		zap.String("stage", string(StageNormalized)),
		zap.String("layer", string(normalized.Layer)))

	return &ProfileOutcome{
		Normalized:  normalized,
		RawResponse: raw,
		Stage:       StageNormalized,
	}, nil
}
