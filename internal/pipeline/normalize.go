package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cover-letter-agent/internal/prompts"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// validate is shared across runs; validator instances cache struct metadata
var validate = validator.New(validator.WithRequiredStructEnabled())

// InvalidInputError indicates the request envelope failed validation before
// any stage executed
type InvalidInputError struct {
	Cause error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid pipeline input: %v", e.Cause)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// Normalize fills defaults and validates the request envelope. Position type
// defaults to full-time, language to the posting's language then English,
// tone to professional.
func Normalize(input types.PipelineInput) (types.PipelineInput, error) {
	if input.JobPosting.PositionType == "" {
		input.JobPosting.PositionType = types.PositionFullTime
	}
	if input.Language == "" {
		input.Language = input.JobPosting.Language
	}
	if input.Language == "" {
		input.Language = prompts.DefaultLanguage
	}
	if input.JobPosting.Language == "" {
		input.JobPosting.Language = input.Language
	}
	if input.Tone == "" {
		input.Tone = types.ToneProfessional
	}

	if err := validate.Struct(input); err != nil {
		return input, &InvalidInputError{Cause: err}
	}
	return input, nil
}
