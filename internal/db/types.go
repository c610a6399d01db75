package db

import (
	"time"

	"github.com/google/uuid"
)

// Candidate represents a stored candidate row
type Candidate struct {
	ID                   uuid.UUID `json:"id"`
	FullName             *string   `json:"full_name"`
	Email                *string   `json:"email"`
	Phone                *string   `json:"phone"`
	TotalExperienceYears *float64  `json:"total_experience_years"`
	CurrentRole          *string   `json:"current_role"`
	CurrentCompany       *string   `json:"current_company"`
	Location             *string   `json:"location"`
	ResumeFileName       string    `json:"resume_file_name"`
	Skills               []string  `json:"skills"`
	CreatedAt            time.Time `json:"created_at"`
}
