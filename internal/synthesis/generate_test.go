package synthesis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

func testOptions() Options {
	return Options{
		Job: types.JobPosting{
			JobTitle:     "Embedded Engineer",
			CompanyName:  "Acme Corp",
			PositionType: types.PositionFullTime,
			Language:     "en",
		},
		Profile: types.UserProfile{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+49 151 000",
			Location: "Berlin, Germany",
			// Deliberately rich profile: none of this may reach the prompt
			Skills: []string{"C++", "Python", "React"},
			WorkExperience: []types.WorkExperience{
				{Title: "Engineer", Company: "Initech", StartDate: "2021", Description: "Secret unverified fact."},
			},
		},
		EvidenceMap: []types.EvidenceMapItem{
			{RequirementID: "1", RequirementLabel: "C++", EvidenceText: "Wrote C++ firmware", SourceType: types.SourceWork, SourceName: "Initech"},
			{RequirementID: "2", RequirementLabel: "leadership", EvidenceText: types.NoEvidenceText, SourceType: types.SourceNone},
		},
		Language: "en",
		Tone:     types.ToneProfessional,
		Date:     "1 September 2026",
	}
}

func TestGenerateLetter(t *testing.T) {
	client := &llm.ScriptedClient{Responses: []string{"Dear Hiring Manager,\n\nletter body\n\nSincerely,\nJane Doe"}}

	letter, err := GenerateLetter(context.Background(), client, testOptions())
	require.NoError(t, err)
	assert.Contains(t, letter, "Jane Doe")

	require.Len(t, client.Calls, 1)
	call := client.Calls[0]
	assert.False(t, call.JSON)
	assert.Equal(t, llm.TierAdvanced, call.Opts.Tier)

	// Contact block and evidence are present
	assert.Contains(t, call.User, "Name: Jane Doe")
	assert.Contains(t, call.User, "Date to use: 1 September 2026")
	assert.Contains(t, call.User, "- C++: Wrote C++ firmware (from Initech)")
	// Unprovable requirements are omitted
	assert.NotContains(t, call.User, "leadership")
	// The raw profile never reaches the generation prompt
	assert.NotContains(t, call.User, "Secret unverified fact")
	assert.NotContains(t, call.User, "React")
}

func TestGenerateLetter_EmptyEvidence(t *testing.T) {
	opts := testOptions()
	opts.EvidenceMap = nil

	client := &llm.ScriptedClient{Responses: []string{"generic interest letter"}}
	_, err := GenerateLetter(context.Background(), client, opts)
	require.NoError(t, err)
	assert.Contains(t, client.Calls[0].User, "(none)")
}

func TestGenerateLetter_SampleLetterAppended(t *testing.T) {
	opts := testOptions()
	opts.SampleLetter = "Dear team, this is my sample voice."

	client := &llm.ScriptedClient{Responses: []string{"letter"}}
	_, err := GenerateLetter(context.Background(), client, opts)
	require.NoError(t, err)
	assert.Contains(t, client.Calls[0].User, "this is my sample voice")
}

func TestGenerateLetter_LanguageAndTone(t *testing.T) {
	opts := testOptions()
	opts.Language = "de"
	opts.Tone = types.ToneFormal

	client := &llm.ScriptedClient{Responses: []string{"Sehr geehrte Damen und Herren"}}
	_, err := GenerateLetter(context.Background(), client, opts)
	require.NoError(t, err)
	assert.Contains(t, client.Calls[0].System, "German")
	assert.Contains(t, client.Calls[0].System, "Tone: formal")
}

func TestGenerateLetter_EmptyResponse(t *testing.T) {
	client := &llm.ScriptedClient{Responses: []string{"   \n  "}}

	_, err := GenerateLetter(context.Background(), client, testOptions())
	var apiErr *llm.APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestJobSummary_OptionalFields(t *testing.T) {
	job := types.JobPosting{
		JobTitle:       "Engineer",
		CompanyName:    "Acme",
		PositionType:   types.PositionInternship,
		Language:       "en",
		HiringManager:  "Alex Smith",
		Department:     "Platform",
		CompanyAddress: "1 Main St",
	}

	summary := JobSummary(job)
	assert.Contains(t, summary, "Hiring manager: Alex Smith")
	assert.Contains(t, summary, "Department: Platform")
	assert.Contains(t, summary, "Company address: 1 Main St")

	bare := JobSummary(types.JobPosting{JobTitle: "Engineer", CompanyName: "Acme"})
	assert.NotContains(t, bare, "Hiring manager")
	assert.NotContains(t, bare, "Company address")
}

func TestContactBlock_OmitsEmptyFields(t *testing.T) {
	block := ContactBlock(types.UserProfile{Name: "Jane", Email: "j@example.com"})
	assert.Equal(t, "Name: Jane\nEmail: j@example.com", block)
}

func TestEvidenceList_OrderPreserved(t *testing.T) {
	items := []types.EvidenceMapItem{
		{RequirementLabel: "C++", EvidenceText: "first", SourceType: types.SourceWork, SourceName: "A"},
		{RequirementLabel: "Python", EvidenceText: "second", SourceType: types.SourceProject, SourceName: "B"},
	}

	list := EvidenceList(items)
	first := "- C++: first (from A)"
	second := "- Python: second (from B)"
	assert.Contains(t, list, first)
	assert.Contains(t, list, second)
	assert.Less(t, strings.Index(list, first), strings.Index(list, second))
}
