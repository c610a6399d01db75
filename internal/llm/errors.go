package llm

import "fmt"

// MissingCredentialError indicates the Gemini API key was absent. The model
// stage fails fast without a network attempt; downstream extractors do not
// need a credential, so the pipeline still produces a record.
type MissingCredentialError struct{}

func (e *MissingCredentialError) Error() string {
	return "GEMINI_API_KEY is not set"
}

// ModelUnavailableError indicates the remote model call failed on every
// retry attempt.
type ModelUnavailableError struct {
	Attempts int
	Cause    error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model call failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// NoTextFoundError indicates the model response envelope contained no
// extractable text content in any known shape.
type NoTextFoundError struct{}

func (e *NoTextFoundError) Error() string {
	return "model response contained no textual content"
}
