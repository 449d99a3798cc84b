// Package pipeline orchestrates the four LLM-backed stages of cover letter
// generation: requirement extraction, evidence mapping, letter synthesis, and
// claim validation. The orchestrator only sequences stages and threads the
// context through them; the first stage failure propagates to the caller
// unchanged, with no retries and no caching. All intermediate artifacts are
// function-local, so concurrent runs share no state.
package pipeline

import (
	"context"

	"github.com/jonathan/cover-letter-agent/internal/evidence"
	"github.com/jonathan/cover-letter-agent/internal/extraction"
	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/synthesis"
	"github.com/jonathan/cover-letter-agent/internal/types"
	"github.com/jonathan/cover-letter-agent/internal/validation"
)

// Stage names a pipeline state for progress reporting
type Stage string

// Pipeline stages in execution order
const (
	StageNormalize   Stage = "normalize"
	StageExtract     Stage = "extract"
	StageMapEvidence Stage = "map_evidence"
	StageGenerate    Stage = "generate"
	StageValidate    Stage = "validate"
	StageDone        Stage = "done"
)

// ProgressEvent reports one stage transition during a run
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called as stages complete
type ProgressCallback func(event ProgressEvent)

// RunOptions holds per-run configuration
type RunOptions struct {
	OnProgress ProgressCallback
	// Date overrides the letter date for deterministic output. Tests set this.
	Date string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts RunOptions, stage Stage, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Message: message, Content: content})
	}
}

// Run executes the full pipeline for one request. The client is constructed
// and owned by the caller; a nil client is a configuration error surfaced
// before any stage executes.
func Run(ctx context.Context, client llm.Client, input types.PipelineInput, opts RunOptions) (*types.PipelineOutput, error) {
	if client == nil {
		return nil, &llm.MissingCredentialError{}
	}

	normalized, err := Normalize(input)
	if err != nil {
		return nil, err
	}
	emitProgress(opts, StageNormalize, "normalized request", nil)

	requirements, err := extraction.ExtractRequirements(ctx, client, normalized.JobPosting)
	if err != nil {
		return nil, err
	}
	emitProgress(opts, StageExtract, "extracted requirements", requirements)

	evidenceMap, err := evidence.MapEvidence(ctx, client, requirements, normalized.UserProfile)
	if err != nil {
		return nil, err
	}
	emitProgress(opts, StageMapEvidence, "mapped evidence", evidenceMap)

	content, err := synthesis.GenerateLetter(ctx, client, synthesis.Options{
		Job:          normalized.JobPosting,
		Profile:      normalized.UserProfile,
		EvidenceMap:  evidenceMap,
		Language:     normalized.Language,
		Tone:         normalized.Tone,
		SampleLetter: normalized.SampleLetter,
		Date:         opts.Date,
	})
	if err != nil {
		return nil, err
	}
	emitProgress(opts, StageGenerate, "generated letter", nil)

	verdict, err := validation.ValidateClaims(ctx, client, content, evidenceMap)
	if err != nil {
		return nil, err
	}
	emitProgress(opts, StageValidate, "validated claims", verdict)

	emitProgress(opts, StageDone, "pipeline complete", nil)
	return &types.PipelineOutput{
		Content:     content,
		Language:    normalized.Language,
		EvidenceMap: evidenceMap,
		Validation:  verdict,
	}, nil
}
