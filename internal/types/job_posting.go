package types

// PositionType classifies a job posting
type PositionType string

// Position type constants
const (
	PositionFullTime       PositionType = "full-time"
	PositionPartTime       PositionType = "part-time"
	PositionInternship     PositionType = "internship"
	PositionPraktikum      PositionType = "praktikum"
	PositionCoOp           PositionType = "co-op"
	PositionApprenticeship PositionType = "apprenticeship"
)

// IsEducational reports whether the position type prioritizes academic
// profile sections over professional ones.
func (p PositionType) IsEducational() bool {
	switch p {
	case PositionInternship, PositionPraktikum, PositionCoOp, PositionApprenticeship:
		return true
	default:
		return false
	}
}

// JobPosting represents a structured job posting
type JobPosting struct {
	ID             string       `json:"id,omitempty"`
	JobTitle       string       `json:"job_title" validate:"required"`
	CompanyName    string       `json:"company_name" validate:"required"`
	PositionType   PositionType `json:"position_type,omitempty"`
	Description    string       `json:"description,omitempty"`
	Requirements   []string     `json:"requirements,omitempty"`
	Language       string       `json:"language,omitempty"`
	HiringManager  string       `json:"hiring_manager,omitempty"`
	Department     string       `json:"department,omitempty"`
	CompanyAddress string       `json:"company_address,omitempty"`
	Salary         string       `json:"salary,omitempty"`
	Benefits       []string     `json:"benefits,omitempty"`
	Deadline       string       `json:"deadline,omitempty"`
}
