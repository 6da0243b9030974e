package models

type ProcessResponse struct {
	Summary     ProfileResult `json:"summary"`
	Warning     string        `json:"warning,omitempty"`
	RawResponse string        `json:"raw_response,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OllamaGenerateRequest is the body of a non-streaming /api/generate call.
type OllamaGenerateRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
	Prompt string `json:"prompt"`
}

type OllamaGenerateResponse struct {
	Model    string `json:"model,omitempty"`
	Response string `json:"response"`
	Done     bool   `json:"done,omitempty"`
}
