package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "CandidateRecord")
	Description string        // Prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", ["string"], [{...}]
	Description string // Description for the LLM
}

// BuildExtractionPrompt constructs the model prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY a valid JSON object matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s", field.Name, typeHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("- Use null for values not present in the text, [] for empty lists.\n\n")

	sb.WriteString("Resume text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// CandidateRecordSchema returns the extraction schema for resume parsing.
func CandidateRecordSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CandidateRecord",
		Description: `You are a resume parsing engine.
Extract the candidate's details from the resume text below.`,
		Fields: []SchemaField{
			{Name: "full_name", Type: "\"string\"", Description: "Candidate's full name"},
			{Name: "email", Type: "\"string\"", Description: "Primary email address"},
			{Name: "phone", Type: "\"string\"", Description: "Primary phone number"},
			{Name: "total_experience_years", Type: "number", Description: "Total professional experience in years"},
			{Name: "current_role", Type: "\"string\"", Description: "Most recent job title"},
			{Name: "current_company", Type: "\"string\"", Description: "Most recent employer"},
			{Name: "location", Type: "\"string\"", Description: "Candidate's location"},
			{Name: "skills", Type: "[\"string\"]", Description: "Technical and professional skills"},
			{Name: "education", Type: "[{\"degree\", \"institute\", \"start_year\", \"end_year\"}]", Description: "Education history"},
			{Name: "experience", Type: "[{\"job_title\", \"company\", \"start_date\", \"end_date\", \"description\"}]", Description: "Work history"},
		},
	}
}
