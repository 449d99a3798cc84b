package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"profiles", "job_postings", "letters"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	// schema must stay idempotent for startup migration
	assert.NotContains(t, strings.ToUpper(schemaSQL), "DROP TABLE")
}

func TestLetterFiltersDefaults(t *testing.T) {
	filters := LetterFilters{}
	assert.Empty(t, filters.Company)
	assert.Empty(t, filters.Tier)
	assert.Zero(t, filters.Limit)
}
