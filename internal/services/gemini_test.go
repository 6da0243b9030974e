package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"
)

func TestNewGeminiService_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "gemini-2.5-flash", 30*time.Second, 500, zaptest.NewLogger(t))

	assert.Error(t, err)
}

func TestClassifyGeminiError(t *testing.T) {
	t.Run("api error becomes upstream error", func(t *testing.T) {
		apiErr := genai.APIError{Code: 429, Message: strings.Repeat("q", 700), Status: "RESOURCE_EXHAUSTED"}

		err := classifyGeminiError("Gemini", 500, fmt.Errorf("generate: %w", apiErr))

		var upstream *UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, 429, upstream.StatusCode)
		assert.Equal(t, 500, CharCount(upstream.Body))
	})

	t.Run("other errors become request errors", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")

		err := classifyGeminiError("Gemini", 500, cause)

		var requestErr *RequestError
		require.ErrorAs(t, err, &requestErr)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "request to Gemini failed: dial tcp: connection refused", err.Error())
	})
}
