package types

import "time"

// CoverLetter represents a generated letter with its metadata
type CoverLetter struct {
	ID              string         `json:"id"`
	JobPostingID    string         `json:"job_posting_id,omitempty"`
	Content         string         `json:"content"`
	OriginalContent string         `json:"original_content,omitempty"`
	Language        string         `json:"language"`
	Tier            GenerationTier `json:"tier"`
	JobTitle        string         `json:"job_title,omitempty"`
	CompanyName     string         `json:"company_name,omitempty"`
	PositionType    PositionType   `json:"position_type,omitempty"`
	GeneratedAt     time.Time      `json:"generated_at"`
	EditedAt        *time.Time     `json:"edited_at,omitempty"`
}
