package parsing

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed candidate_record.json
var candidateSchemaJSON string

var candidateSchema = gojsonschema.NewStringLoader(candidateSchemaJSON)

// ValidateCandidateObject checks that a recovered JSON object is structurally
// a candidate record: known fields must have the right container types when
// present. Unknown extra fields are tolerated; a structurally alien object
// (skills as a string, education as a number) is rejected so the tolerant
// extractor can take over on the raw text.
func ValidateCandidateObject(obj map[string]any) error {
	result, err := gojsonschema.Validate(candidateSchema, gojsonschema.NewGoLoader(obj))
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return &SchemaValidationError{Violations: violations}
}
