package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/cover-letter-agent/internal/store"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

// handleSaveProfile upserts a profile keyed by email
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if profile.Name == "" || profile.Email == "" {
		s.errorResponse(w, http.StatusBadRequest, "name and email are required")
		return
	}

	id, err := s.store.SaveProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleGetProfile returns a stored profile by ID
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := s.parseID(w, r)
	if !ok {
		return
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleSaveJobPosting stores a job posting
func (s *Server) handleSaveJobPosting(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var job types.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if job.JobTitle == "" || job.CompanyName == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_title and company_name are required")
		return
	}

	id, err := s.store.SaveJobPosting(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleGetJobPosting returns a stored posting by ID
func (s *Server) handleGetJobPosting(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := s.parseID(w, r)
	if !ok {
		return
	}

	job, err := s.store.GetJobPosting(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job posting not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListJobPostings lists recent postings, optionally filtered by
// ?company=
func (s *Server) handleListJobPostings(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	jobs, err := s.store.ListJobPostings(r.Context(), r.URL.Query().Get("company"), queryLimit(r))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"job_postings": jobs})
}

// handleGetLetter returns a stored letter by ID
func (s *Server) handleGetLetter(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := s.parseID(w, r)
	if !ok {
		return
	}

	letter, err := s.store.GetLetter(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if letter == nil {
		s.errorResponse(w, http.StatusNotFound, "Letter not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, letter)
}

// handleListLetters lists recent letters with optional ?company= and
// ?tier= filters
func (s *Server) handleListLetters(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	filters := store.LetterFilters{
		Company: r.URL.Query().Get("company"),
		Tier:    types.GenerationTier(r.URL.Query().Get("tier")),
		Limit:   queryLimit(r),
	}

	letters, err := s.store.ListLetters(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"letters": letters})
}

// handleUpdateLetter replaces the editable content of a letter
func (s *Server) handleUpdateLetter(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := s.parseID(w, r)
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.Content == "" {
		s.errorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	if err := s.store.UpdateLetterContent(r.Context(), id, body.Content); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleDeleteLetter removes a letter
func (s *Server) handleDeleteLetter(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id, ok := s.parseID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteLetter(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseID extracts and parses the {id} path value
func (s *Server) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit parses the ?limit= parameter, zero when absent
func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}
