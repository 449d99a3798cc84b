// Package extraction implements pipeline stage 1: turning a job posting into
// an ordered list of requirement items via LLM extraction.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/prompts"
	"github.com/jonathan/cover-letter-agent/internal/schemas"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// requirementsEnvelope is the wire shape of the stage-1 LLM output
type requirementsEnvelope struct {
	Requirements []types.RequirementItem `json:"requirements"`
}

// ExtractRequirements extracts an ordered requirement list from a job posting.
// Ordering reflects the order requirements are emphasized in the posting
// (first-mentioned gets priorityOrder 1). Any malformed or schema-invalid
// model response fails the stage; there is no partial substitution.
func ExtractRequirements(ctx context.Context, client llm.Client, job types.JobPosting) ([]types.RequirementItem, error) {
	system := prompts.MustGet("pipeline.json", "extract-requirements-system")
	user := prompts.Format(prompts.MustGet("pipeline.json", "extract-requirements-user"), map[string]string{
		"CompanyName":      job.CompanyName,
		"JobTitle":         job.JobTitle,
		"PositionType":     string(job.PositionType),
		"Description":      job.Description,
		"RequirementsList": numberedList(job.Requirements),
	})

	text, err := client.GenerateJSON(ctx, system, user, llm.GenerateOptions{
		Tier:        llm.TierLite,
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	return decodeRequirements(text)
}

// decodeRequirements parses and schema-validates the raw stage-1 output
func decodeRequirements(text string) ([]types.RequirementItem, error) {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, &llm.ParseError{Message: "requirement list is not valid JSON", Cause: err}
	}

	if err := schemas.Validate(schemas.SchemaRequirements, text); err != nil {
		return nil, err
	}

	var envelope requirementsEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, &llm.ParseError{Message: "failed to decode requirement list", Cause: err}
	}

	items := envelope.Requirements
	// Defend the ordering invariant even if the model emits items out of
	// sequence. Ties keep their relative order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityOrder < items[j].PriorityOrder
	})
	return items, nil
}

// numberedList renders the posting's raw requirement strings for the prompt
func numberedList(items []string) string {
	if len(items) == 0 {
		return "(none listed)"
	}
	var sb strings.Builder
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(sb.String(), "\n")
}
