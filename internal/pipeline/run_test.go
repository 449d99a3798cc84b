package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

func testInput() types.PipelineInput {
	return types.PipelineInput{
		JobPosting: types.JobPosting{
			JobTitle:     "Embedded Engineer",
			CompanyName:  "Acme Corp",
			PositionType: types.PositionFullTime,
			Description:  "Looking for C++ first, Python second, leadership third.",
			Requirements: []string{"C++", "Python", "leadership"},
			Language:     "en",
		},
		UserProfile: types.UserProfile{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			WorkExperience: []types.WorkExperience{
				{Title: "Firmware Engineer", Company: "Initech", StartDate: "2021", IsOngoing: true,
					Description: "Wrote C++ firmware and Python tooling."},
			},
		},
		Language: "en",
		Tone:     types.ToneProfessional,
	}
}

// scenarioAClient scripts a run where the profile proves C++ and Python but
// not leadership.
func scenarioAClient(letter string) *llm.ScriptedClient {
	return &llm.ScriptedClient{Responses: []string{
		`{"requirements": [
			{"id": "1", "label": "C++", "priorityOrder": 1},
			{"id": "2", "label": "Python", "priorityOrder": 2},
			{"id": "3", "label": "leadership", "priorityOrder": 3}
		]}`,
		`{"items": [
			{"requirementId": "1", "requirementLabel": "C++", "evidenceText": "Wrote C++ firmware", "sourceType": "work", "sourceName": "Initech"},
			{"requirementId": "2", "requirementLabel": "Python", "evidenceText": "Python tooling", "sourceType": "work", "sourceName": "Initech"},
			{"requirementId": "3", "requirementLabel": "leadership", "evidenceText": "no evidence", "sourceType": "none", "sourceName": ""}
		]}`,
		letter,
		`{"valid": true}`,
	}}
}

func TestRun_ScenarioA_ProvableRequirementsOrderedFirst(t *testing.T) {
	letter := "Dear Hiring Manager,\n\nI wrote C++ firmware. I also built Python tooling.\n\nSincerely,\nJane Doe"
	client := scenarioAClient(letter)

	output, err := Run(context.Background(), client, testInput(), RunOptions{Date: "1 September 2026"})
	require.NoError(t, err)

	assert.Equal(t, letter, output.Content)
	assert.Equal(t, "en", output.Language)

	require.Len(t, output.EvidenceMap, 3)
	assert.True(t, output.EvidenceMap[0].HasEvidence())
	assert.True(t, output.EvidenceMap[1].HasEvidence())
	assert.False(t, output.EvidenceMap[2].HasEvidence())

	require.NotNil(t, output.Validation)
	assert.True(t, output.Validation.Valid)

	// Four LLM calls, one per stage
	require.Len(t, client.Calls, 4)

	// The generation prompt lists C++ evidence before Python evidence and
	// omits the unprovable leadership requirement entirely.
	genPrompt := client.Calls[2].User
	assert.Less(t, strings.Index(genPrompt, "C++"), strings.Index(genPrompt, "Python"))
	assert.NotContains(t, genPrompt, "leadership")

	// The validation prompt excludes the sentinel
	assert.NotContains(t, client.Calls[3].User, "no evidence")
}

func TestRun_ScenarioB_EmptyRequirements(t *testing.T) {
	input := testInput()
	input.JobPosting.Requirements = nil
	input.JobPosting.Description = "No specific requirements."

	client := &llm.ScriptedClient{Responses: []string{
		`{"requirements": []}`,
		// stage 2 is skipped for an empty list; next responses feed stages 3 and 4
		"Dear Hiring Manager,\n\nI am excited about Acme Corp.\n\nSincerely,\nJane Doe",
		`{"valid": true}`,
	}}

	output, err := Run(context.Background(), client, input, RunOptions{Date: "1 September 2026"})
	require.NoError(t, err)
	assert.Empty(t, output.EvidenceMap)
	assert.True(t, output.Validation.Valid)
	assert.NotEmpty(t, output.Content)

	// Three calls: extract, generate, validate. Evidence mapping made no call.
	assert.Len(t, client.Calls, 3)
	assert.Contains(t, client.Calls[1].User, "(none)")
}

func TestRun_ScenarioC_MalformedStageOneAbortsBeforeStageTwo(t *testing.T) {
	client := &llm.ScriptedClient{Responses: []string{
		`{"requirements": [truncated`,
		`{"items": []}`,
	}}

	_, err := Run(context.Background(), client, testInput(), RunOptions{})
	var parseErr *llm.ParseError
	require.ErrorAs(t, err, &parseErr)

	// Only stage 1 ran
	assert.Len(t, client.Calls, 1)
}

func TestRun_MissingCredential(t *testing.T) {
	_, err := Run(context.Background(), nil, testInput(), RunOptions{})
	var credErr *llm.MissingCredentialError
	require.ErrorAs(t, err, &credErr)
}

func TestRun_InvalidInput(t *testing.T) {
	input := testInput()
	input.UserProfile.Email = "not-an-email"

	client := &llm.ScriptedClient{}
	_, err := Run(context.Background(), client, input, RunOptions{})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, client.CallCount(), "validation failures must precede any stage call")
}

func TestRun_StageFailurePropagatesUnchanged(t *testing.T) {
	upstream := &llm.APICallError{Message: "service unavailable"}
	client := &llm.ScriptedClient{
		Responses: []string{`{"requirements": [{"id": "1", "label": "C++", "priorityOrder": 1}]}`},
		Errs:      []error{nil, upstream},
	}

	_, err := Run(context.Background(), client, testInput(), RunOptions{})
	assert.ErrorIs(t, err, upstream)
	assert.Len(t, client.Calls, 2)
}

func TestRun_CanceledContextAbortsRemainingStages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := scenarioAClient("letter")
	_, err := Run(ctx, client, testInput(), RunOptions{})
	require.Error(t, err)
	assert.Empty(t, client.Calls)
}

func TestRun_ProgressEvents(t *testing.T) {
	client := scenarioAClient("letter body")

	var stages []Stage
	opts := RunOptions{
		Date: "1 September 2026",
		OnProgress: func(event ProgressEvent) {
			stages = append(stages, event.Stage)
		},
	}

	_, err := Run(context.Background(), client, testInput(), opts)
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageNormalize, StageExtract, StageMapEvidence, StageGenerate, StageValidate, StageDone}, stages)
}

func TestNormalize_Defaults(t *testing.T) {
	input := types.PipelineInput{
		JobPosting: types.JobPosting{
			JobTitle:    "Engineer",
			CompanyName: "Acme",
			Language:    "de",
		},
		UserProfile: types.UserProfile{Name: "Jane", Email: "jane@example.com"},
	}

	normalized, err := Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, types.PositionFullTime, normalized.JobPosting.PositionType)
	assert.Equal(t, "de", normalized.Language, "language falls back to the posting language")
	assert.Equal(t, types.ToneProfessional, normalized.Tone)
}

func TestNormalize_EnglishWhenNoLanguageAnywhere(t *testing.T) {
	input := types.PipelineInput{
		JobPosting:  types.JobPosting{JobTitle: "Engineer", CompanyName: "Acme"},
		UserProfile: types.UserProfile{Name: "Jane", Email: "jane@example.com"},
	}

	normalized, err := Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, "en", normalized.Language)
	assert.Equal(t, "en", normalized.JobPosting.Language)
}

func TestNormalize_RejectsUnknownTone(t *testing.T) {
	input := testInput()
	input.Tone = "sarcastic"

	_, err := Normalize(input)
	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}
