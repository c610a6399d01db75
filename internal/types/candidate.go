// Package types defines the shared data structures for parsed resumes.
package types

// CandidateRecord is the canonical structured output for one parsed resume.
// Every top-level key is always present: scalar fields are nil when unknown,
// slice fields are empty but never nil so they marshal as [] rather than null.
type CandidateRecord struct {
	FullName             *string          `json:"full_name"`
	Email                *string          `json:"email"`
	Phone                *string          `json:"phone"`
	TotalExperienceYears *float64         `json:"total_experience_years"`
	CurrentRole          *string          `json:"current_role"`
	CurrentCompany       *string          `json:"current_company"`
	Location             *string          `json:"location"`
	Skills               []string         `json:"skills"`
	Education            []Education      `json:"education"`
	Experience           []map[string]any `json:"experience"`
}

// Education is a single education entry. Years are nil when the source text
// did not yield them.
type Education struct {
	Degree    *string `json:"degree"`
	Institute *string `json:"institute"`
	StartYear *int    `json:"start_year"`
	EndYear   *int    `json:"end_year"`
}

// NewCandidateRecord returns an empty record with all slice fields
// initialized. Callers fill in whatever they managed to extract.
func NewCandidateRecord() *CandidateRecord {
	return &CandidateRecord{
		Skills:     []string{},
		Education:  []Education{},
		Experience: []map[string]any{},
	}
}

// FromMap coerces a generic JSON object into a CandidateRecord. Extraction is
// best-effort per field: a missing or wrong-typed value yields nil/empty
// rather than an error, so a partially well-formed model response still
// produces a fully shaped record.
func FromMap(obj map[string]any) *CandidateRecord {
	rec := NewCandidateRecord()

	rec.FullName = stringField(obj, "full_name")
	rec.Email = stringField(obj, "email")
	rec.Phone = stringField(obj, "phone")
	rec.TotalExperienceYears = numberField(obj, "total_experience_years")
	rec.CurrentRole = stringField(obj, "current_role")
	rec.CurrentCompany = stringField(obj, "current_company")
	rec.Location = stringField(obj, "location")

	if raw, ok := obj["skills"].([]any); ok {
		skills := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				skills = append(skills, s)
			}
		}
		rec.Skills = DedupeSkills(skills)
	}

	if raw, ok := obj["education"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			rec.Education = append(rec.Education, Education{
				Degree:    stringField(entry, "degree"),
				Institute: stringField(entry, "institute"),
				StartYear: yearField(entry, "start_year"),
				EndYear:   yearField(entry, "end_year"),
			})
		}
	}

	if raw, ok := obj["experience"].([]any); ok {
		for _, item := range raw {
			if entry, ok := item.(map[string]any); ok {
				rec.Experience = append(rec.Experience, entry)
			}
		}
	}

	return rec
}

// DedupeSkills removes duplicate skills while preserving first-seen order.
func DedupeSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		result = append(result, skill)
	}
	return result
}

// StringPtr returns a pointer to s, or nil when s is empty. Used by the
// extraction stages to populate optional fields.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringField(obj map[string]any, key string) *string {
	if s, ok := obj[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func numberField(obj map[string]any, key string) *float64 {
	if f, ok := obj[key].(float64); ok {
		return &f
	}
	return nil
}

func yearField(obj map[string]any, key string) *int {
	// JSON numbers decode as float64
	if f, ok := obj[key].(float64); ok {
		year := int(f)
		return &year
	}
	return nil
}
