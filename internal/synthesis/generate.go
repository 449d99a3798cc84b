// Package synthesis implements pipeline stage 3: producing the letter text
// from the evidence map. The stage deliberately never receives the raw
// profile beyond the contact block, so it cannot leak unverified facts into
// the letter.
package synthesis

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/prompts"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// Options carries the inputs for one synthesis call
type Options struct {
	Job          types.JobPosting
	Profile      types.UserProfile
	EvidenceMap  []types.EvidenceMapItem
	Language     string
	Tone         string
	SampleLetter string
	// Date overrides the letter date. Empty means today. Tests set this.
	Date string
}

// GenerateLetter produces the cover letter text. With an empty evidence map
// the letter still gets written, restricted to generic statements of
// interest.
func GenerateLetter(ctx context.Context, client llm.Client, opts Options) (string, error) {
	system := prompts.Format(prompts.MustGet("pipeline.json", "generate-letter-system"), map[string]string{
		"LanguageInstruction": prompts.LanguageInstruction(opts.Language),
		"Tone":                opts.Tone,
	})

	date := opts.Date
	if date == "" {
		date = time.Now().Format("2 January 2006")
	}

	user := prompts.Format(prompts.MustGet("pipeline.json", "generate-letter-user"), map[string]string{
		"ContactBlock": ContactBlock(opts.Profile),
		"Date":         date,
		"JobSummary":   JobSummary(opts.Job),
		"EvidenceList": EvidenceList(opts.EvidenceMap),
	})
	if opts.SampleLetter != "" {
		user += prompts.Format(prompts.MustGet("pipeline.json", "generate-letter-sample-suffix"), map[string]string{
			"SampleLetter": opts.SampleLetter,
		})
	}

	text, err := client.GenerateContent(ctx, system, user, llm.GenerateOptions{
		Tier:        llm.TierAdvanced,
		Temperature: 0.1,
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
