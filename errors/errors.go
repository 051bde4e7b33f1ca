package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure points this service actually has: the
// startup fetch, the embedding backend, and the knowledge base file.

var (
	// ErrDashboardUnavailable indicates the dashboard summary fetch failed
	ErrDashboardUnavailable = errors.New("dashboard unavailable")

	// ErrEmbeddingUnavailable indicates the embedding server gave no usable response
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrKnowledgeBase indicates the knowledge base file could not be loaded
	ErrKnowledgeBase = errors.New("knowledge base load failed")

	// ErrInvalidInput indicates invalid user or payload input
	ErrInvalidInput = errors.New("invalid input")
)

// Wrap wraps an error with a context message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsDashboardUnavailable checks if error stems from the dashboard fetch
func IsDashboardUnavailable(err error) bool {
	return errors.Is(err, ErrDashboardUnavailable)
}

// IsEmbeddingUnavailable checks if error stems from the embedding backend
func IsEmbeddingUnavailable(err error) bool {
	return errors.Is(err, ErrEmbeddingUnavailable)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
