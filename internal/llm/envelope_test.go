package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		envelope map[string]any
		expected string
	}{
		{
			name: "Candidates shape with single part",
			envelope: map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{map[string]any{"text": "hello"}},
						},
					},
				},
			},
			expected: "hello",
		},
		{
			name: "Candidates shape joins parts with newlines",
			envelope: map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{
								map[string]any{"text": "first"},
								map[string]any{"text": "second"},
							},
						},
					},
				},
			},
			expected: "first\nsecond",
		},
		{
			name: "Candidates shape trims surrounding whitespace",
			envelope: map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{map[string]any{"text": "  padded \n"}},
						},
					},
				},
			},
			expected: "padded",
		},
		{
			name: "Outputs shape with parts list",
			envelope: map[string]any{
				"outputs": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{map[string]any{"text": "from outputs"}},
						},
					},
				},
			},
			expected: "from outputs",
		},
		{
			name: "Outputs shape with direct text field",
			envelope: map[string]any{
				"outputs": []any{
					map[string]any{
						"content": map[string]any{"text": "direct text"},
					},
				},
			},
			expected: "direct text",
		},
		{
			name: "Outputs shape concatenates multiple outputs",
			envelope: map[string]any{
				"outputs": []any{
					map[string]any{"content": map[string]any{"text": "one"}},
					map[string]any{"content": map[string]any{"text": "two"}},
				},
			},
			expected: "one\ntwo",
		},
		{
			name: "Malformed candidates falls through to outputs",
			envelope: map[string]any{
				"candidates": "not a list",
				"outputs": []any{
					map[string]any{"content": map[string]any{"text": "recovered"}},
				},
			},
			expected: "recovered",
		},
		{
			name: "Candidates with empty parts falls through to outputs",
			envelope: map[string]any{
				"candidates": []any{
					map[string]any{"content": map[string]any{"parts": []any{}}},
				},
				"outputs": []any{
					map[string]any{"content": map[string]any{"text": "secondary"}},
				},
			},
			expected: "secondary",
		},
		{
			name: "Parts with wrong-typed entries skipped",
			envelope: map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{
								"bare string",
								map[string]any{"text": 42.0},
								map[string]any{"text": "valid"},
							},
						},
					},
				},
			},
			expected: "valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.envelope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtractText_NoTextFound(t *testing.T) {
	tests := []struct {
		name     string
		envelope map[string]any
	}{
		{"Empty envelope", map[string]any{}},
		{"Nil envelope", nil},
		{"Unknown keys only", map[string]any{"usage": map[string]any{"tokens": 10.0}}},
		{
			"Candidates with empty text",
			map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{map[string]any{"text": "   "}},
						},
					},
				},
			},
		},
		{
			"Outputs with non-map entries",
			map[string]any{"outputs": []any{"a", 1.0, nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.envelope)
			var noText *NoTextFoundError
			require.ErrorAs(t, err, &noText)
		})
	}
}
