// Package types provides type definitions for structured data used throughout the cover-letter-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// UserProfile represents a candidate's structured profile
type UserProfile struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name" validate:"required"`
	Email           string           `json:"email" validate:"required,email"`
	Phone           string           `json:"phone,omitempty"`
	Location        string           `json:"location,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	WorkExperience  []WorkExperience `json:"work_experience,omitempty"`
	Education       []Education      `json:"education,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	AcademicContext *AcademicContext `json:"academic_context,omitempty"`
}

// WorkExperience represents one employment entry in a profile
type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	IsOngoing   bool   `json:"is_ongoing,omitempty"`
	Description string `json:"description"`
}

// Education represents one degree entry in a profile
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationDate string `json:"graduation_date"`
	IsOngoing      bool   `json:"is_ongoing,omitempty"`
}

// Project represents one project entry in a profile
type Project struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CompletionDate string `json:"completion_date,omitempty"`
	IsOngoing      bool   `json:"is_ongoing,omitempty"`
}

// AcademicContext holds current-studies information used for educational positions
type AcademicContext struct {
	CurrentDegree      string   `json:"current_degree,omitempty"`
	University         string   `json:"university,omitempty"`
	ExpectedGraduation string   `json:"expected_graduation,omitempty"`
	RelevantCoursework []string `json:"relevant_coursework,omitempty"`
	GPA                string   `json:"gpa,omitempty"`
}
