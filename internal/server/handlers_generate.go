package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cover-letter-agent/internal/fallback"
	"github.com/jonathan/cover-letter-agent/internal/gaps"
	"github.com/jonathan/cover-letter-agent/internal/pipeline"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// GenerateRequest represents the request body for /generate. Profile
// and posting may be supplied inline or referenced by stored ID.
type GenerateRequest struct {
	ProfileID       string             `json:"profile_id,omitempty"`
	JobPostingID    string             `json:"job_posting_id,omitempty"`
	UserProfile     *types.UserProfile `json:"user_profile,omitempty"`
	JobPosting      *types.JobPosting  `json:"job_posting,omitempty"`
	Language        string             `json:"language,omitempty"`
	Tone            string             `json:"tone,omitempty"`
	AdditionalNotes string             `json:"additional_notes,omitempty"`
	SampleLetter    string             `json:"sample_letter,omitempty"`
	// NoFallback disables the degraded tiers: a pipeline failure then
	// surfaces as an error instead of a weaker letter.
	NoFallback bool `json:"no_fallback,omitempty"`
	Save       bool `json:"save,omitempty"`
}

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	Content        string                  `json:"content"`
	Language       string                  `json:"language"`
	Tier           types.GenerationTier    `json:"tier"`
	EvidenceMap    []types.EvidenceMapItem `json:"evidence_map,omitempty"`
	Validation     *types.ValidationResult `json:"validation,omitempty"`
	FallbackReason string                  `json:"fallback_reason,omitempty"`
	LetterID       string                  `json:"letter_id,omitempty"`
}

// GapsRequest represents the request body for /gaps
type GapsRequest struct {
	JobPosting  types.JobPosting  `json:"job_posting"`
	UserProfile types.UserProfile `json:"user_profile"`
}

// GapsResponse represents the response for /gaps
type GapsResponse struct {
	Gaps       []gaps.InformationGap `json:"gaps"`
	CanProceed bool                  `json:"can_proceed"`
}

// handleGenerate produces a letter, degrading through the tiers when
// the full pipeline cannot complete.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeGenerateInput(w, r)
	if !ok {
		return
	}
	req := input.req

	result, err := s.generate(r.Context(), input.input, req.NoFallback, nil)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if req.Save && s.store != nil {
		id, err := s.store.SaveLetter(r.Context(), types.CoverLetter{
			JobPostingID: req.JobPostingID,
			Content:      result.Content,
			Language:     result.Language,
			Tier:         result.Tier,
			JobTitle:     input.input.JobPosting.JobTitle,
			CompanyName:  input.input.JobPosting.CompanyName,
			PositionType: input.input.JobPosting.PositionType,
		})
		if err != nil {
			log.Printf("Failed to save letter: %v", err)
		} else {
			result.LetterID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerateStream produces a letter while streaming stage
// progress via SSE. Fallback transitions are reported as events.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeGenerateInput(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	onProgress := func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("stage", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	result, err := s.generate(r.Context(), input.input, input.req.NoFallback, onProgress)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(result)
}

// handleGaps reports missing profile information for a posting
func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	var req GapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	found := gaps.Analyze(req.JobPosting, req.UserProfile)
	s.jsonResponse(w, http.StatusOK, GapsResponse{
		Gaps:       found,
		CanProceed: gaps.CanProceed(found),
	})
}

type generateInput struct {
	req   GenerateRequest
	input types.PipelineInput
}

// decodeGenerateInput parses the request body and resolves stored
// profile and posting references. Both loads run concurrently.
func (s *Server) decodeGenerateInput(w http.ResponseWriter, r *http.Request) (generateInput, bool) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return generateInput{}, false
	}

	input := types.PipelineInput{
		Language:        req.Language,
		Tone:            req.Tone,
		AdditionalNotes: req.AdditionalNotes,
		SampleLetter:    req.SampleLetter,
	}
	if req.UserProfile != nil {
		input.UserProfile = *req.UserProfile
	}
	if req.JobPosting != nil {
		input.JobPosting = *req.JobPosting
	}

	if req.ProfileID != "" || req.JobPostingID != "" {
		if !s.requireStore(w) {
			return generateInput{}, false
		}
		if !s.loadStoredInput(r.Context(), w, req, &input) {
			return generateInput{}, false
		}
	}

	return generateInput{req: req, input: input}, true
}

// loadStoredInput fills the pipeline input from the store. Inline
// payloads win over stored records when both are present.
func (s *Server) loadStoredInput(ctx context.Context, w http.ResponseWriter, req GenerateRequest, input *types.PipelineInput) bool {
	g, gctx := errgroup.WithContext(ctx)

	if req.ProfileID != "" && req.UserProfile == nil {
		id, err := uuid.Parse(req.ProfileID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid profile ID format")
			return false
		}
		g.Go(func() error {
			profile, err := s.store.GetProfile(gctx, id)
			if err != nil {
				return err
			}
			if profile == nil {
				return &notFoundError{what: "profile", id: req.ProfileID}
			}
			input.UserProfile = *profile
			return nil
		})
	}

	if req.JobPostingID != "" && req.JobPosting == nil {
		id, err := uuid.Parse(req.JobPostingID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid job posting ID format")
			return false
		}
		g.Go(func() error {
			job, err := s.store.GetJobPosting(gctx, id)
			if err != nil {
				return err
			}
			if job == nil {
				return &notFoundError{what: "job posting", id: req.JobPostingID}
			}
			input.JobPosting = *job
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var notFound *notFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
		} else {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		}
		return false
	}
	return true
}

// generate walks the tier chain: full pipeline, then single-shot
// legacy, then the offline template. The first two require a client;
// the template tier always succeeds.
func (s *Server) generate(ctx context.Context, input types.PipelineInput, noFallback bool, onProgress pipeline.ProgressCallback) (*GenerateResponse, error) {
	date := time.Now().Format("2 January 2006")

	output, pipelineErr := pipeline.Run(ctx, s.client, input, pipeline.RunOptions{OnProgress: onProgress})
	if pipelineErr == nil {
		return &GenerateResponse{
			Content:     output.Content,
			Language:    output.Language,
			Tier:        types.TierPipeline,
			EvidenceMap: output.EvidenceMap,
			Validation:  output.Validation,
		}, nil
	}

	// Bad input fails every tier the same way; no point degrading
	var invalidInput *pipeline.InvalidInputError
	if noFallback || ctx.Err() != nil || errors.As(pipelineErr, &invalidInput) {
		return nil, pipelineErr
	}

	log.Printf("Pipeline generation failed, trying legacy tier: %v", pipelineErr)

	content, legacyErr := fallback.GenerateLegacyLetter(ctx, s.client, input, date)
	if legacyErr == nil {
		return &GenerateResponse{
			Content:        content,
			Language:       language(input),
			Tier:           types.TierLegacy,
			FallbackReason: pipelineErr.Error(),
		}, nil
	}
	if ctx.Err() != nil {
		return nil, legacyErr
	}

	log.Printf("Legacy generation failed, using template tier: %v", legacyErr)

	return &GenerateResponse{
		Content:        fallback.GenerateTemplateLetter(input),
		Language:       "en",
		Tier:           types.TierTemplate,
		FallbackReason: legacyErr.Error(),
	}, nil
}

func language(input types.PipelineInput) string {
	if input.Language != "" {
		return input.Language
	}
	if input.JobPosting.Language != "" {
		return input.JobPosting.Language
	}
	return "en"
}
