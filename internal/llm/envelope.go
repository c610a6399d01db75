package llm

import "strings"

// shapeReader extracts text fragments from one known envelope layout.
// Readers are fully defensive: a missing key or wrong-typed value yields no
// fragments instead of aborting, so the next shape can still be probed.
type shapeReader func(envelope map[string]any) []string

// envelopeShapes lists the known response layouts in priority order.
var envelopeShapes = []shapeReader{
	readCandidatesShape,
	readOutputsShape,
}

// ExtractText pulls the model's free-text output from a deserialized
// response envelope, probing each known shape in turn. Discovered fragments
// are joined with newlines and trimmed. Returns NoTextFoundError when no
// shape yields any text.
func ExtractText(envelope map[string]any) (string, error) {
	for _, read := range envelopeShapes {
		fragments := read(envelope)
		text := strings.TrimSpace(strings.Join(fragments, "\n"))
		if text != "" {
			return text, nil
		}
	}
	return "", &NoTextFoundError{}
}

// readCandidatesShape handles the primary generateContent layout:
// candidates[0].content.parts[*].text
func readCandidatesShape(envelope map[string]any) []string {
	candidates, ok := envelope["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return nil
	}
	first, ok := candidates[0].(map[string]any)
	if !ok {
		return nil
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return nil
	}
	return textParts(content["parts"])
}

// readOutputsShape handles the alternative layout: outputs[*].content, where
// content is either a parts list or a direct text field.
func readOutputsShape(envelope map[string]any) []string {
	outputs, ok := envelope["outputs"].([]any)
	if !ok {
		return nil
	}

	var fragments []string
	for _, item := range outputs {
		out, ok := item.(map[string]any)
		if !ok {
			continue
		}
		content, ok := out["content"].(map[string]any)
		if !ok {
			continue
		}
		if parts := textParts(content["parts"]); len(parts) > 0 {
			fragments = append(fragments, parts...)
			continue
		}
		if text, ok := content["text"].(string); ok && strings.TrimSpace(text) != "" {
			fragments = append(fragments, text)
		}
	}
	return fragments
}

// textParts collects the non-empty text fields from a parts list.
func textParts(raw any) []string {
	parts, ok := raw.([]any)
	if !ok {
		return nil
	}

	var fragments []string
	for _, item := range parts {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := p["text"].(string); ok && text != "" {
			fragments = append(fragments, text)
		}
	}
	return fragments
}
