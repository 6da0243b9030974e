package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"alfredoptarigan/pdf-profiler/internal/models"
)

// NormalizationLayer names the step that produced a normalized result.
type NormalizationLayer string

const (
	LayerDirect      NormalizationLayer = "direct"
	LayerBraceSpan   NormalizationLayer = "brace_span"
	LayerFenceStrip  NormalizationLayer = "fence_strip"
	LayerPlaceholder NormalizationLayer = "placeholder"
)

type Normalized struct {
	Result models.ProfileResult
	Layer  NormalizationLayer
	// SchemaIssues lists expected keys or value ranges the result does not
	// satisfy. Informational only; Result is never modified because of them.
	SchemaIssues []string
}

// FellBack reports whether the reply needed more than a direct parse.
func (n Normalized) FellBack() bool {
	return n.Layer != LayerDirect
}

const profileSchema = `{
	"type": "object",
	"required": ["profile", "experience", "skills", "profile_score"],
	"properties": {
		"experience": {"type": "array"},
		"skills": {"type": "array"},
		"profile_score": {"type": "number", "minimum": 0, "maximum": 100}
	}
}`

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

type Normalizer struct {
	schema *jsonschema.Schema
	logger *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{
		schema: jsonschema.MustCompileString("profile.schema.json", profileSchema),
		logger: logger,
	}
}

// Normalize turns a raw model reply into a ProfileResult. It tries a direct
// parse, then the greedy first-'{' to last-'}' span, then the reply with code
// fences removed, and finally returns the placeholder result. It never fails.
func (n *Normalizer) Normalize(raw string) Normalized {
	normalized := n.normalize(raw)
	NormalizationTotal.WithLabelValues(string(normalized.Layer)).Inc()

	if normalized.Layer != LayerPlaceholder {
		normalized.SchemaIssues = n.checkSchema(normalized.Result)
		if len(normalized.SchemaIssues) > 0 {
			SchemaIssuesTotal.Inc()
			n.logger.Warn("normalized profile does not match expected shape",
				zap.String("layer", string(normalized.Layer)),
				zap.Strings("issues", normalized.SchemaIssues))
		}
	}

	return normalized
}

func (n *Normalizer) normalize(raw string) Normalized {
	if result, err := decodeObject(raw); err == nil {
		return Normalized{Result: result, Layer: LayerDirect}
	}

	n.logger.Warn("direct JSON parsing failed, attempting extraction")

	if span, ok := braceSpan(raw); ok {
		if result, err := decodeObject(span); err == nil {
			return Normalized{Result: result, Layer: LayerBraceSpan}
		}
	}

	cleaned := strings.TrimSpace(fenceReplacer.Replace(raw))
	result, err := decodeObject(cleaned)
	if err == nil {
		return Normalized{Result: result, Layer: LayerFenceStrip}
	}

	n.logger.Error("failed to parse JSON after cleaning", zap.Error(err))

	return Normalized{
		Result: models.NewPlaceholderProfile(err.Error()),
		Layer:  LayerPlaceholder,
	}
}

func (n *Normalizer) checkSchema(result models.ProfileResult) []string {
	err := n.schema.Validate(map[string]any(result))
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	var issues []string
	collectIssues(validationErr, &issues)
	return issues
}

func collectIssues(err *jsonschema.ValidationError, issues *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*issues = append(*issues, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}

	for _, cause := range err.Causes {
		collectIssues(cause, issues)
	}
}

// braceSpan returns the text from the first '{' to the last '}', inclusive.
// Nested or multiple objects are not told apart.
func braceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return "", false
	}

	return text[start : end+1], true
}

// decodeObject parses text as exactly one JSON object. Numbers are kept as
// json.Number so they re-encode unchanged.
func decodeObject(text string) (models.ProfileResult, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unexpected end of JSON input")
		}
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", describeJSON(value))
	}

	return models.ProfileResult(object), nil
}

func describeJSON(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", value)
	}
}
