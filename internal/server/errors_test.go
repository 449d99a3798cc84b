package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cover-letter-agent/internal/evidence"
	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/pipeline"
	"github.com/jonathan/cover-letter-agent/internal/schemas"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &pipeline.InvalidInputError{Cause: errors.New("missing name")}, http.StatusBadRequest},
		{"missing credential", &llm.MissingCredentialError{}, http.StatusServiceUnavailable},
		{"api call", &llm.APICallError{Message: "503"}, http.StatusBadGateway},
		{"parse", &llm.ParseError{Message: "truncated"}, http.StatusBadGateway},
		{"schema validation", &schemas.ValidationError{Schema: "requirements"}, http.StatusBadGateway},
		{"incomplete map", &evidence.IncompleteMapError{MissingIDs: []string{"1"}}, http.StatusBadGateway},
		{"wrapped api call", fmt.Errorf("stage failed: %w", &llm.APICallError{Message: "503"}), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
