package llm

import (
	"context"
	"fmt"
)

// Call records one request made to a ScriptedClient
type Call struct {
	System string
	User   string
	JSON   bool
	Opts   GenerateOptions
}

// ScriptedClient is a Client that replays canned responses in order. It is
// used by tests to drive the pipeline without network access.
type ScriptedClient struct {
	// Responses are returned one per call; a nil error entry at the same
	// index means the call succeeds.
	Responses []string
	Errs      []error
	Calls     []Call

	next int
}

var _ Client = (*ScriptedClient)(nil)

// GenerateContent returns the next scripted response
func (s *ScriptedClient) GenerateContent(ctx context.Context, system, user string, opts GenerateOptions) (string, error) {
	return s.step(ctx, system, user, false, opts)
}

// GenerateJSON returns the next scripted response with code fences stripped
func (s *ScriptedClient) GenerateJSON(ctx context.Context, system, user string, opts GenerateOptions) (string, error) {
	text, err := s.step(ctx, system, user, true, opts)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns a fixed fake model name
func (s *ScriptedClient) GetModel(tier ModelTier) string {
	return "scripted-" + string(tier)
}

// Close is a no-op
func (s *ScriptedClient) Close() error { return nil }

// CallCount returns the number of calls made so far
func (s *ScriptedClient) CallCount() int { return len(s.Calls) }

func (s *ScriptedClient) step(ctx context.Context, system, user string, isJSON bool, opts GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &APICallError{Message: "context canceled", Cause: err}
	}

	s.Calls = append(s.Calls, Call{System: system, User: user, JSON: isJSON, Opts: opts})

	i := s.next
	s.next++

	if i < len(s.Errs) && s.Errs[i] != nil {
		return "", s.Errs[i]
	}
	if i >= len(s.Responses) {
		return "", &APICallError{Message: fmt.Sprintf("scripted client exhausted after %d responses", len(s.Responses))}
	}
	return s.Responses[i], nil
}
