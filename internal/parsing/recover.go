// Package parsing turns model output into candidate records. It implements a
// layered chain: strict JSON recovery first, regex-based tolerant extraction
// when the output is malformed, and a minimal regex-only fallback that cannot
// fail. Each stage produces a fully shaped CandidateRecord or a typed error
// telling the caller to try the next stage.
package parsing

import (
	"encoding/json"
	"strings"
)

// RecoverJSON extracts and strictly parses the first JSON object embedded in
// free text. Markdown code fences (with an optional language tag) are
// stripped first, then the span from the first '{' to the last '}' is parsed
// as-is. This is deliberately a single-shot strict parse: malformed JSON is
// not repaired here but handed to the tolerant extractor by the caller.
func RecoverJSON(text string) (map[string]any, error) {
	cleaned := CleanJSONBlock(text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, &BoundaryNotFoundError{}
	}
	jsonStr := cleaned[start : end+1]

	var obj map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &obj); err != nil {
		return nil, &JSONDecodeError{Snippet: jsonStr, Cause: err}
	}
	return obj, nil
}

// CleanJSONBlock removes markdown code fence wrappers from model responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a bare language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
