// Package validation implements pipeline stage 4: checking the generated
// letter against the evidence map for unsupported claims. The verdict is
// advisory; it is returned to the caller together with the letter and never
// triggers regeneration inside the pipeline.
package validation

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/prompts"
	"github.com/jonathan/cover-letter-agent/internal/schemas"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// ValidateClaims checks every skill and experience claim in the letter
// against the provable evidence items. Entries with the "no evidence"
// sentinel are excluded from the list the checker sees.
func ValidateClaims(ctx context.Context, client llm.Client, letter string, evidenceMap []types.EvidenceMapItem) (*types.ValidationResult, error) {
	system := prompts.MustGet("pipeline.json", "validate-claims-system")
	user := prompts.Format(prompts.MustGet("pipeline.json", "validate-claims-user"), map[string]string{
		"EvidenceTexts": evidenceTexts(evidenceMap),
		"Letter":        letter,
	})

	text, err := client.GenerateJSON(ctx, system, user, llm.GenerateOptions{
		Tier:        llm.TierLite,
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	return decodeVerdict(text)
}

// decodeVerdict parses and schema-validates the raw stage-4 output
func decodeVerdict(text string) (*types.ValidationResult, error) {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, &llm.ParseError{Message: "validation verdict is not valid JSON", Cause: err}
	}

	if err := schemas.Validate(schemas.SchemaVerdict, text); err != nil {
		return nil, err
	}

	var result types.ValidationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &llm.ParseError{Message: "failed to decode validation verdict", Cause: err}
	}

	// Violations accompany only a negative verdict
	if result.Valid {
		result.Violations = nil
	}
	return &result, nil
}

// evidenceTexts renders the provable evidence snippets, one per line
func evidenceTexts(items []types.EvidenceMapItem) string {
	var lines []string
	for _, item := range items {
		if item.HasEvidence() {
			lines = append(lines, item.EvidenceText)
		}
	}
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}
