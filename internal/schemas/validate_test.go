package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Requirements(t *testing.T) {
	tests := []struct {
		name      string
		jsonText  string
		wantError bool
	}{
		{
			name: "Valid requirement list",
			jsonText: `{"requirements": [
				{"id": "1", "label": "C++", "clarification": "embedded", "priorityOrder": 1},
				{"id": 2, "label": "Python", "priorityOrder": 2}
			]}`,
			wantError: false,
		},
		{
			name:      "Empty list is valid",
			jsonText:  `{"requirements": []}`,
			wantError: false,
		},
		{
			name:      "Missing requirements key",
			jsonText:  `{"items": []}`,
			wantError: true,
		},
		{
			name:      "Missing priorityOrder",
			jsonText:  `{"requirements": [{"id": "1", "label": "C++"}]}`,
			wantError: true,
		},
		{
			name:      "priorityOrder below one",
			jsonText:  `{"requirements": [{"id": "1", "label": "C++", "priorityOrder": 0}]}`,
			wantError: true,
		},
		{
			name:      "Empty label",
			jsonText:  `{"requirements": [{"id": "1", "label": "", "priorityOrder": 1}]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(SchemaRequirements, tt.jsonText)
			if tt.wantError {
				var ve *ValidationError
				require.Error(t, err)
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_EvidenceMap(t *testing.T) {
	tests := []struct {
		name      string
		jsonText  string
		wantError bool
	}{
		{
			name: "Valid evidence map",
			jsonText: `{"items": [
				{"requirementId": "1", "requirementLabel": "C++", "evidenceText": "Wrote C++ firmware", "sourceType": "work", "sourceName": "Acme"},
				{"requirementId": "2", "requirementLabel": "leadership", "evidenceText": "no evidence", "sourceType": "none", "sourceName": ""}
			]}`,
			wantError: false,
		},
		{
			name:      "Invalid source type",
			jsonText:  `{"items": [{"requirementId": "1", "requirementLabel": "C++", "evidenceText": "x", "sourceType": "volunteering", "sourceName": "y"}]}`,
			wantError: true,
		},
		{
			name:      "Missing sourceName",
			jsonText:  `{"items": [{"requirementId": "1", "requirementLabel": "C++", "evidenceText": "x", "sourceType": "work"}]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(SchemaEvidenceMap, tt.jsonText)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Verdict(t *testing.T) {
	assert.NoError(t, Validate(SchemaVerdict, `{"valid": true}`))
	assert.NoError(t, Validate(SchemaVerdict, `{"valid": false, "violations": ["unsupported claim"]}`))
	assert.Error(t, Validate(SchemaVerdict, `{"violations": []}`))
	assert.Error(t, Validate(SchemaVerdict, `{"valid": "yes"}`))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(SchemaVerdict, `{truncated`)
	require.Error(t, err)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.json", `{}`)
	require.Error(t, err)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(SchemaRequirements, `{"requirements": [{"id": "1"}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirements.json")
	assert.Contains(t, err.Error(), "label")
}
