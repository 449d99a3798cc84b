package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cover-letter-agent/internal/gaps"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

func TestPrintRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirements([]types.RequirementItem{
		{ID: "1", Label: "Go", Clarification: "5+ years", PriorityOrder: 1},
		{ID: "2", Label: "Kubernetes", PriorityOrder: 2},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED REQUIREMENTS")
	assert.Contains(t, output, "1. Go (5+ years)")
	assert.Contains(t, output, "2. Kubernetes")
}

func TestPrintRequirements_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirements(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRequirements_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reqs := make([]types.RequirementItem, 8)
	for i := range reqs {
		reqs[i] = types.RequirementItem{Label: "skill", PriorityOrder: i + 1}
	}

	p.PrintRequirements(reqs)

	assert.Contains(t, buf.String(), "and 3 more")
}

func TestPrintEvidenceMap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvidenceMap([]types.EvidenceMapItem{
		{RequirementLabel: "Go", EvidenceText: "Built services in Go", SourceType: types.SourceWork},
		{RequirementLabel: "leadership", EvidenceText: types.NoEvidenceText, SourceType: types.SourceNone},
	})
	output := buf.String()

	assert.Contains(t, output, "EVIDENCE MAP")
	assert.Contains(t, output, "Evidence found for 1 of 2")
	assert.Contains(t, output, "✓ Go")
	assert.Contains(t, output, "✗ leadership")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(&types.ValidationResult{Valid: true})
	assert.Contains(t, buf.String(), "All claims are backed by evidence.")

	buf.Reset()
	p.PrintValidation(&types.ValidationResult{
		Valid:      false,
		Violations: []string{"claims ten years of Rust"},
	})
	output := buf.String()
	assert.Contains(t, output, "1 unsupported claims")
	assert.Contains(t, output, "claims ten years of Rust")
}

func TestPrintValidation_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(nil)

	assert.Empty(t, buf.String())
}

func TestPrintGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGaps([]gaps.InformationGap{
		{ID: "phone", Question: "What is your phone number?", Category: gaps.CategoryRequired},
		{ID: "location", Question: "What is your location?", Category: gaps.CategoryRecommended},
	})
	output := buf.String()

	assert.Contains(t, output, "INFORMATION GAPS")
	assert.Contains(t, output, "[required] What is your phone number?")
	assert.Contains(t, output, "Required information is missing.")
}

func TestPrintLetterSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLetterSummary("Dear Hiring Manager,\n\nShort letter.", types.TierPipeline)
	output := buf.String()

	assert.Contains(t, output, "GENERATED LETTER")
	assert.Contains(t, output, "Tier:  pipeline")
	assert.Contains(t, output, "Words: 5")
}
