package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "String id", input: `"req-1"`, expected: "req-1"},
		{name: "Integer id", input: `3`, expected: "3"},
		{name: "Numeric string", input: `"42"`, expected: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id FlexID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.expected, id.String())
		})
	}
}

func TestFlexID_UnmarshalJSON_Invalid(t *testing.T) {
	var id FlexID
	assert.Error(t, json.Unmarshal([]byte(`{"nested": true}`), &id))
}

func TestRequirementItem_Decode(t *testing.T) {
	jsonText := `{"id": 1, "label": "C++", "clarification": "embedded systems", "priorityOrder": 1}`

	var item RequirementItem
	require.NoError(t, json.Unmarshal([]byte(jsonText), &item))
	assert.Equal(t, "1", item.ID.String())
	assert.Equal(t, "C++", item.Label)
	assert.Equal(t, "embedded systems", item.Clarification)
	assert.Equal(t, 1, item.PriorityOrder)
}

func TestEvidenceMapItem_HasEvidence(t *testing.T) {
	tests := []struct {
		name string
		item EvidenceMapItem
		want bool
	}{
		{
			name: "Work evidence",
			item: EvidenceMapItem{EvidenceText: "Built services in Go", SourceType: SourceWork, SourceName: "Acme"},
			want: true,
		},
		{
			name: "No evidence sentinel",
			item: EvidenceMapItem{EvidenceText: NoEvidenceText, SourceType: SourceNone},
			want: false,
		},
		{
			name: "Sentinel text with non-none source still rejected",
			item: EvidenceMapItem{EvidenceText: NoEvidenceText, SourceType: SourceSkill},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.HasEvidence())
		})
	}
}

func TestPositionType_IsEducational(t *testing.T) {
	assert.True(t, PositionInternship.IsEducational())
	assert.True(t, PositionPraktikum.IsEducational())
	assert.True(t, PositionCoOp.IsEducational())
	assert.True(t, PositionApprenticeship.IsEducational())
	assert.False(t, PositionFullTime.IsEducational())
	assert.False(t, PositionPartTime.IsEducational())
	assert.False(t, PositionType("").IsEducational())
}

func TestRequirementIDSet(t *testing.T) {
	reqs := []RequirementItem{
		{ID: "1", Label: "C++", PriorityOrder: 1},
		{ID: "2", Label: "Python", PriorityOrder: 2},
	}

	ids := RequirementIDSet(reqs)
	assert.Len(t, ids, 2)
	assert.True(t, ids["1"])
	assert.True(t, ids["2"])
	assert.False(t, ids["3"])
}
