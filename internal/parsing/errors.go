package parsing

import "fmt"

// BoundaryNotFoundError indicates the text contained no {...} object span.
type BoundaryNotFoundError struct{}

func (e *BoundaryNotFoundError) Error() string {
	return "could not find JSON object boundaries in text"
}

// JSONDecodeError indicates the located {...} span was not valid JSON.
// Snippet carries the offending substring for operator logs; it must never
// be returned to end users.
type JSONDecodeError struct {
	Snippet string
	Cause   error
}

func (e *JSONDecodeError) Error() string {
	return fmt.Sprintf("JSON decode error: %v (substring: %s)", e.Cause, truncate(e.Snippet, 200))
}

func (e *JSONDecodeError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError indicates a syntactically valid JSON object that does
// not look like a candidate record. Treated the same as a decode failure:
// the tolerant extractor gets the raw text instead.
type SchemaValidationError struct {
	Violations []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("object does not match candidate record schema: %v", e.Violations)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
