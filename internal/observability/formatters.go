// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/gaps"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequirements outputs the extracted requirements in priority order.
func (p *Printer) PrintRequirements(reqs []types.RequirementItem) {
	if len(reqs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d requirements:\n\n", len(reqs)))

	count := min(len(reqs), maxItemsToShow)
	for i := 0; i < count; i++ {
		req := reqs[i]
		sb.WriteString(fmt.Sprintf("%d. %s", req.PriorityOrder, req.Label))
		if req.Clarification != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", req.Clarification))
		}
		sb.WriteString("\n")
	}
	if len(reqs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(reqs)-maxItemsToShow))
	}

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvidenceMap outputs requirement-to-evidence bindings, marking
// requirements the profile could not substantiate.
func (p *Printer) PrintEvidenceMap(items []types.EvidenceMapItem) {
	if len(items) == 0 {
		return
	}

	proven := 0
	for _, item := range items {
		if item.HasEvidence() {
			proven++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Evidence found for %d of %d requirements:\n\n", proven, len(items)))

	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		if item.HasEvidence() {
			sb.WriteString(fmt.Sprintf("✓ %s\n", item.RequirementLabel))
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", item.EvidenceText, item.SourceType))
		} else {
			sb.WriteString(fmt.Sprintf("✗ %s\n", item.RequirementLabel))
		}
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(items)-maxItemsToShow))
	}

	p.printBox("EVIDENCE MAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the claim-validation verdict.
func (p *Printer) PrintValidation(result *types.ValidationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Valid {
		sb.WriteString("All claims are backed by evidence.")
	} else {
		sb.WriteString(fmt.Sprintf("%d unsupported claims:\n\n", len(result.Violations)))
		count := min(len(result.Violations), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("• %s\n", result.Violations[i]))
		}
		if len(result.Violations) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(result.Violations)-maxItemsToShow))
		}
	}

	p.printBox("CLAIM VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGaps outputs missing profile information found before generation.
func (p *Printer) PrintGaps(found []gaps.InformationGap) {
	if len(found) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d information gaps:\n\n", len(found)))

	for _, gap := range found {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", gap.Category, gap.Question))
	}
	if !gaps.CanProceed(found) {
		sb.WriteString("\nRequired information is missing.")
	}

	p.printBox("INFORMATION GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLetterSummary outputs the tier and size of a generated letter.
func (p *Printer) PrintLetterSummary(content string, tier types.GenerationTier) {
	words := len(strings.Fields(content))
	lines := strings.Count(content, "\n") + 1

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tier:  %s\n", tier))
	sb.WriteString(fmt.Sprintf("Words: %d\n", words))
	sb.WriteString(fmt.Sprintf("Lines: %d", lines))

	p.printBox("GENERATED LETTER", sb.String())
}
