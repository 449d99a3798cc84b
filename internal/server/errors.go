package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cover-letter-agent/internal/evidence"
	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/pipeline"
	"github.com/jonathan/cover-letter-agent/internal/schemas"
)

// notFoundError indicates a referenced stored record does not exist
type notFoundError struct {
	what string
	id   string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.what, e.id)
}

// HTTPStatus maps a generation error to an HTTP status code. Input
// problems are the caller's fault; everything the model produced or
// failed to produce is a bad gateway; a missing credential means the
// service is not configured to generate at all.
func HTTPStatus(err error) int {
	var invalidInput *pipeline.InvalidInputError
	if errors.As(err, &invalidInput) {
		return http.StatusBadRequest
	}

	var missingCred *llm.MissingCredentialError
	if errors.As(err, &missingCred) {
		return http.StatusServiceUnavailable
	}

	var apiErr *llm.APICallError
	var parseErr *llm.ParseError
	var schemaErr *schemas.ValidationError
	var mapErr *evidence.IncompleteMapError
	if errors.As(err, &apiErr) || errors.As(err, &parseErr) ||
		errors.As(err, &schemaErr) || errors.As(err, &mapErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
