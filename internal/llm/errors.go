package llm

import "fmt"

// MissingCredentialError indicates the client cannot be constructed because no
// API key is configured. Surfaced before any stage executes, so callers can
// distinguish configuration problems from runtime stage failures.
type MissingCredentialError struct {
	Variable string
}

func (e *MissingCredentialError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("missing credential: %s is not set", e.Variable)
	}
	return "missing credential: API key is required"
}

// APICallError indicates the model service could not be reached or returned a
// non-success result. Never retried within a stage.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the model's text could not be parsed as JSON after
// stripping optional code-fence markers. Treated identically to APICallError:
// a stage failure.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
