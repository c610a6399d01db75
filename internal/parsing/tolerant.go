package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d[\d\-\s]{6,}\d)`)

	// "skills": [ ... ] — case-insensitive, spans newlines
	skillsRe = regexp.MustCompile(`(?is)"skills"\s*:\s*\[([^\]]*)\]`)

	// double-quoted substrings inside a bracket span
	quotedRe = regexp.MustCompile(`"([^"]+)"`)

	// "total_experience_years": <number>
	experienceYearsRe = regexp.MustCompile(`(?i)"total_experience_years"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)

	// adjacent "degree": "...", "institute": "..." pairs
	educationRe = regexp.MustCompile(`(?i)"degree"\s*:\s*"([^"]+)"\s*,\s*"institute"\s*:\s*"([^"]+)"`)
)

// TolerantExtract recovers candidate fields from malformed model output via
// pattern matching, with the original resume text as a secondary source for
// name, email, and phone. Every field extraction is independently
// best-effort: a miss yields nil/empty, never an error, so the result is
// always a fully shaped record.
//
// Known degradations of this path: skills are only found inside a bracketed
// "skills": [...] span, education entries carry no years, and experience is
// left empty.
func TolerantExtract(rawText, resumeText string) *types.CandidateRecord {
	rec := types.NewCandidateRecord()

	rec.FullName = extractStringField(rawText, "full_name")
	if rec.FullName == nil {
		rec.FullName = types.StringPtr(firstNonBlankLine(resumeText))
	}

	rec.Email = firstMatch(emailRe, rawText, resumeText)
	rec.Phone = firstMatch(phoneRe, rawText, resumeText)
	rec.Skills = extractBracketList(rawText, skillsRe)

	if m := experienceYearsRe.FindStringSubmatch(rawText); m != nil {
		if years, err := strconv.ParseFloat(m[1], 64); err == nil {
			rec.TotalExperienceYears = &years
		}
	}

	rec.CurrentRole = extractStringField(rawText, "current_role")
	rec.CurrentCompany = extractStringField(rawText, "current_company")
	rec.Location = extractStringField(rawText, "location")

	for _, m := range educationRe.FindAllStringSubmatch(rawText, -1) {
		rec.Education = append(rec.Education, types.Education{
			Degree:    types.StringPtr(m[1]),
			Institute: types.StringPtr(m[2]),
		})
	}

	// Tolerant recovery of nested experience objects is out of scope;
	// the field stays an empty list.
	return rec
}

// extractStringField finds a `"key": "value"` literal, case-insensitively.
func extractStringField(text, key string) *string {
	re := regexp.MustCompile(`(?i)"` + regexp.QuoteMeta(key) + `"\s*:\s*"([^"]+)"`)
	if m := re.FindStringSubmatch(text); m != nil {
		return types.StringPtr(strings.TrimSpace(m[1]))
	}
	return nil
}

// firstMatch returns the first match of re in primary, falling back to
// secondary.
func firstMatch(re *regexp.Regexp, primary, secondary string) *string {
	if m := re.FindString(primary); m != "" {
		return &m
	}
	if m := re.FindString(secondary); m != "" {
		return &m
	}
	return nil
}

// extractBracketList pulls list items out of a `"key": [ ... ]` span even
// when the span itself is malformed JSON. Quoted substrings are preferred;
// if there are none, the span is split on commas and each token stripped of
// quotes and whitespace. Duplicates are removed preserving first-seen order.
func extractBracketList(text string, re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return []string{}
	}
	inner := m[1]

	var items []string
	for _, q := range quotedRe.FindAllStringSubmatch(inner, -1) {
		items = append(items, q[1])
	}

	if len(items) == 0 {
		for _, token := range strings.Split(inner, ",") {
			token = strings.Trim(strings.TrimSpace(token), `" `)
			if token != "" {
				items = append(items, token)
			}
		}
	}

	return types.DedupeSkills(items)
}

// firstNonBlankLine returns the first non-blank line of text, trimmed.
func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
