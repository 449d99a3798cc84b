// Package evidence implements pipeline stage 2: binding each extracted
// requirement to a verifiable profile fact or to the "no evidence" sentinel.
//
// The no-inference policy is the system's central anti-hallucination
// guarantee: a requirement with no textual counterpart in the profile is
// marked "no evidence" rather than connected to a superficially related
// entry. The evidence map produced here is the only channel through which
// factual claims may reach the generated letter.
package evidence

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

// evidenceEnvelope is the wire shape of the stage-2 LLM output
type evidenceEnvelope struct {
	Items []types.EvidenceMapItem `json:"items"`
}

// MapEvidence produces exactly one EvidenceMapItem per requirement. An empty
// requirement list yields an empty map without calling the model.
func MapEvidence(ctx context.Context, client llm.Client, reqs []types.RequirementItem, profile types.UserProfile) ([]types.EvidenceMapItem, error) {
	if len(reqs) == 0 {
		return []types.EvidenceMapItem{}, nil
	}

	system := prompts.MustGet("pipeline.json", "map-evidence-system")
	user := prompts.Format(prompts.MustGet("pipeline.json", "map-evidence-user"), map[string]string{
		"RequirementList": requirementList(reqs),
		"ProfileText":     ProfileText(profile),
	})

	text, err := client.GenerateJSON(ctx, system, user, llm.GenerateOptions{
		Tier:        llm.TierLite,
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	items, err := decodeEvidenceMap(text)
	if err != nil {
		return nil, err
	}

	if err := checkCompleteness(reqs, items); err != nil {
		return nil, err
	}

	normalize(items)
	orderByRequirements(reqs, items)
	return items, nil
}

// decodeEvidenceMap parses and schema-validates the raw stage-2 output
func decodeEvidenceMap(text string) ([]types.EvidenceMapItem, error) {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, &llm.ParseError{Message: "evidence map is not valid JSON", Cause: err}
	}

	if err := schemas.Validate(schemas.SchemaEvidenceMap, text); err != nil {
		return nil, err
	}

	var envelope evidenceEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, &llm.ParseError{Message: "failed to decode evidence map", Cause: err}
	}
	return envelope.Items, nil
}

// checkCompleteness enforces the one-item-per-requirement invariant
func checkCompleteness(reqs []types.RequirementItem, items []types.EvidenceMapItem) error {
	wanted := types.RequirementIDSet(reqs)

	seen := make(map[string]int, len(items))
	var unexpected []string
	for _, item := range items {
		id := item.RequirementID.String()
		if !wanted[id] {
			unexpected = append(unexpected, id)
			continue
		}
		seen[id]++
	}

	var missing, duplicate []string
	for id := range wanted {
		switch seen[id] {
		case 0:
			missing = append(missing, id)
		case 1:
			// exactly one, as required
		default:
			duplicate = append(duplicate, id)
		}
	}

	if len(missing) == 0 && len(unexpected) == 0 && len(duplicate) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(unexpected)
	sort.Strings(duplicate)
	return &IncompleteMapError{MissingIDs: missing, UnexpectedIDs: unexpected, DuplicateIDs: duplicate}
}

// normalize reconciles the two ways a model can spell "no evidence": sentinel
// text with a real source type, or an empty snippet with sourceType none.
func normalize(items []types.EvidenceMapItem) {
	for i := range items {
		item := &items[i]
		if strings.EqualFold(strings.TrimSpace(item.EvidenceText), types.NoEvidenceText) {
			item.EvidenceText = types.NoEvidenceText
			item.SourceType = types.SourceNone
			item.SourceName = ""
		} else if item.SourceType == types.SourceNone {
			item.EvidenceText = types.NoEvidenceText
			item.SourceName = ""
		}
	}
}

// orderByRequirements sorts the map into requirement priority order
func orderByRequirements(reqs []types.RequirementItem, items []types.EvidenceMapItem) {
	rank := make(map[string]int, len(reqs))
	for i, r := range reqs {
		rank[r.ID.String()] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank[items[i].RequirementID.String()] < rank[items[j].RequirementID.String()]
	})
}

// requirementList renders the ordered requirements for the prompt
func requirementList(reqs []types.RequirementItem) string {
	var sb strings.Builder
	for _, r := range reqs {
		fmt.Fprintf(&sb, "- %s: %s", r.ID.String(), r.Label)
		if r.Clarification != "" {
			fmt.Fprintf(&sb, " (%s)", r.Clarification)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
