package types

import (
	"encoding/json"
)

// FlexID is a string identifier that also accepts JSON numbers.
// LLMs frequently return requirement ids as bare integers even when the
// prompt asks for strings, so the decoder tolerates both.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler for FlexID
func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the id as a plain string
func (f FlexID) String() string { return string(f) }

// RequirementItem is one atomic skill or qualification extracted from a job
// posting, ranked by the order the poster emphasized it (1-based).
type RequirementItem struct {
	ID            FlexID `json:"id"`
	Label         string `json:"label"`
	Clarification string `json:"clarification,omitempty"`
	PriorityOrder int    `json:"priorityOrder"`
}

// SourceType identifies which profile section an evidence snippet came from
type SourceType string

// Evidence source constants
const (
	SourceWork      SourceType = "work"
	SourceProject   SourceType = "project"
	SourceEducation SourceType = "education"
	SourceSkill     SourceType = "skill"
	SourceNone      SourceType = "none"
)

// NoEvidenceText is the sentinel evidence value for requirements the profile
// does not substantiate.
const NoEvidenceText = "no evidence"

// EvidenceMapItem binds one requirement to a verifiable profile fact, or to
// the "no evidence" sentinel. The evidence map is the only channel through
// which factual claims may reach the generated letter.
type EvidenceMapItem struct {
	RequirementID    FlexID     `json:"requirementId"`
	RequirementLabel string     `json:"requirementLabel"`
	EvidenceText     string     `json:"evidenceText"`
	SourceType       SourceType `json:"sourceType"`
	SourceName       string     `json:"sourceName"`
}

// HasEvidence reports whether the item carries a real profile fact
func (e EvidenceMapItem) HasEvidence() bool {
	return e.SourceType != SourceNone && e.EvidenceText != NoEvidenceText
}

// ValidationResult is the stage-4 verdict on a generated letter.
// Violations is non-empty only when Valid is false.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
}

// Tone constants for letter generation
const (
	ToneProfessional = "professional"
	ToneEnthusiastic = "enthusiastic"
	ToneFormal       = "formal"
)

// PipelineInput is the request envelope for one pipeline run
type PipelineInput struct {
	JobPosting      JobPosting        `json:"job_posting" validate:"required"`
	UserProfile     UserProfile       `json:"user_profile" validate:"required"`
	Language        string            `json:"language,omitempty"`
	Tone            string            `json:"tone,omitempty" validate:"omitempty,oneof=professional enthusiastic formal"`
	AdditionalNotes string            `json:"additional_notes,omitempty"`
	AdditionalInfo  map[string]string `json:"additional_info,omitempty"`
	SampleLetter    string            `json:"sample_letter,omitempty"`
}

// PipelineOutput is the response envelope for one pipeline run. EvidenceMap
// and Validation are diagnostic; callers may discard them.
type PipelineOutput struct {
	Content     string            `json:"content"`
	Language    string            `json:"language"`
	EvidenceMap []EvidenceMapItem `json:"evidence_map,omitempty"`
	Validation  *ValidationResult `json:"validation,omitempty"`
}

// GenerationTier labels which fallback level produced a letter, ordered from
// strongest to weakest accuracy guarantee.
type GenerationTier string

// Generation tier constants
const (
	TierPipeline GenerationTier = "pipeline"
	TierLegacy   GenerationTier = "legacy"
	TierTemplate GenerationTier = "template"
)

// RequirementIDSet returns the set of requirement ids in a requirement list.
// Used to check evidence-map completeness.
func RequirementIDSet(reqs []RequirementItem) map[string]bool {
	ids := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		ids[r.ID.String()] = true
	}
	return ids
}
