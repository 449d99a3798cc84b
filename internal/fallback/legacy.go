// Package fallback provides the two degraded generation tiers used when the
// staged pipeline fails: a single-shot LLM generator with weaker
// anti-hallucination guarantees, and a fully offline template generator that
// guarantees the user always receives some letter.
package fallback

import (
	"context"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/evidence"
	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/prompts"
	"github.com/jonathan/cover-letter-agent/internal/synthesis"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// GenerateLegacyLetter produces a whole letter in one model call, directly
// from the raw profile and job posting. No evidence map, no claim
// validation: this is a degraded mode, used only after the pipeline fails.
func GenerateLegacyLetter(ctx context.Context, client llm.Client, input types.PipelineInput, date string) (string, error) {
	if client == nil {
		return "", &llm.MissingCredentialError{}
	}

	tone := input.Tone
	if tone == "" {
		tone = types.ToneProfessional
	}
	system := prompts.Format(prompts.MustGet("fallback.json", "legacy-letter-system"), map[string]string{
		"LanguageInstruction": prompts.LanguageInstruction(input.Language),
		"Tone":                tone,
	})

	notes := ""
	if input.AdditionalNotes != "" {
		notes = "\n\nAdditional notes from the candidate:\n" + input.AdditionalNotes
	}

	user := prompts.Format(prompts.MustGet("fallback.json", "legacy-letter-user"), map[string]string{
		"ProfileText":  evidence.ProfileText(input.UserProfile),
		"JobText":      jobText(input.JobPosting),
		"Date":         date,
		"NotesSection": notes,
	})

	text, err := client.GenerateContent(ctx, system, user, llm.GenerateOptions{
		Tier:        llm.TierStandard,
		Temperature: 0.2,
		MaxTokens:   1500,
	})
	if err != nil {
		return "", err
	}

	letter := strings.TrimSpace(text)
	if letter == "" {
		return "", &llm.APICallError{Message: "model returned an empty letter"}
	}
	return letter, nil
}

// jobText renders the full posting for the single-shot prompt
func jobText(job types.JobPosting) string {
	var sb strings.Builder
	sb.WriteString(synthesis.JobSummary(job))
	if job.Description != "" {
		sb.WriteString("\n\nDescription:\n")
		sb.WriteString(job.Description)
	}
	if len(job.Requirements) > 0 {
		sb.WriteString("\n\nRequirements:\n")
		for _, r := range job.Requirements {
			sb.WriteString("- " + r + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
