package parsing

import "github.com/jonathan/resume-parser/internal/types"

// FallbackExtract is the terminal, unconditionally succeeding stage. It uses
// only regular expressions over the original resume text: first email, first
// phone, first non-blank line as the name. Everything else stays null/empty.
// A regex miss yields nil for that field, never an error.
func FallbackExtract(resumeText string) *types.CandidateRecord {
	rec := types.NewCandidateRecord()

	rec.FullName = types.StringPtr(firstNonBlankLine(resumeText))
	if m := emailRe.FindString(resumeText); m != "" {
		rec.Email = &m
	}
	if m := phoneRe.FindString(resumeText); m != "" {
		rec.Phone = &m
	}

	return rec
}
