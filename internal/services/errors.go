package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument means the PDF produced no readable text.
	ErrEmptyDocument = errors.New("no readable text found in PDF")
	// ErrNotPDF means the uploaded content is not a PDF document.
	ErrNotPDF = errors.New("uploaded file is not a PDF")
)

// RequestError is a transport-level failure reaching the model server.
type RequestError struct {
	Provider string
	Cause    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Provider, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// UpstreamError is a non-success status returned by the model server.
// Body holds a truncated excerpt of the response for diagnostics.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to get response from %s: status %d", e.Provider, e.StatusCode)
}
