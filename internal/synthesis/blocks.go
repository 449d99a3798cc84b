package synthesis

import (
	"fmt"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/types"
)

// JobSummary renders the short job description block for the generation prompt
func JobSummary(job types.JobPosting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s\nPosition: %s\nType: %s\nLanguage: %s",
		job.CompanyName, job.JobTitle, job.PositionType, job.Language)
	if job.HiringManager != "" {
		fmt.Fprintf(&sb, "\nHiring manager: %s", job.HiringManager)
	}
	if job.Department != "" {
		fmt.Fprintf(&sb, "\nDepartment: %s", job.Department)
	}
	if job.CompanyAddress != "" {
		fmt.Fprintf(&sb, "\nCompany address: %s", job.CompanyAddress)
	}
	return sb.String()
}

// ContactBlock renders the candidate's literal contact values. These are the
// only profile facts the generation stage is allowed to see besides the
// evidence map.
func ContactBlock(profile types.UserProfile) string {
	lines := []string{
		"Name: " + profile.Name,
		"Email: " + profile.Email,
	}
	if profile.Phone != "" {
		lines = append(lines, "Phone: "+profile.Phone)
	}
	if profile.Location != "" {
		lines = append(lines, "Address/Location: "+profile.Location)
	}
	return strings.Join(lines, "\n")
}

// EvidenceList renders the provable evidence items for the prompt, in
// requirement priority order. Items with no evidence are omitted so the model
// never sees an unprovable requirement.
func EvidenceList(items []types.EvidenceMapItem) string {
	var sb strings.Builder
	for _, item := range items {
		if !item.HasEvidence() {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s (from %s)\n", item.RequirementLabel, item.EvidenceText, item.SourceName)
	}
	text := strings.TrimRight(sb.String(), "\n")
	if text == "" {
		return "(none)"
	}
	return text
}
