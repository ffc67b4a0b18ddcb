// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanLabel = "Nutrition Facts Serving Size 1 cup Calories 250 Total Fat 10g " +
	"Saturated Fat 2g Sodium 300mg Dietary Fiber 5g Total Sugars 8g Protein 12g"

func TestParseCleanLabel(t *testing.T) {
	record := NewParser().Parse(cleanLabel)
	require.NotNil(t, record)

	require.NotNil(t, record.Calories)
	assert.Equal(t, 250.0, *record.Calories)

	require.NotNil(t, record.TotalFat)
	assert.Equal(t, 10.0, *record.TotalFat)

	require.NotNil(t, record.SaturatedFat)
	assert.Equal(t, 2.0, *record.SaturatedFat)

	require.NotNil(t, record.Sodium)
	assert.Equal(t, 300.0, *record.Sodium)

	require.NotNil(t, record.DietaryFiber)
	assert.Equal(t, 5.0, *record.DietaryFiber)

	require.NotNil(t, record.TotalSugars)
	assert.Equal(t, 8.0, *record.TotalSugars)

	require.NotNil(t, record.Protein)
	assert.Equal(t, 12.0, *record.Protein)

	assert.Empty(t, record.Warnings)
}

func TestParseSpecificPhrasingWinsContest(t *testing.T) {
	// Bare "fat" also matches inside "saturated fat"; the weighted "total
	// fat" phrasing must win the total-fat contest.
	record := NewParser().Parse(cleanLabel)
	require.NotNil(t, record)
	require.NotNil(t, record.TotalFat)
	assert.Equal(t, 10.0, *record.TotalFat, "total fat should not pick up the saturated fat value")
}

func TestParseReturnsNil(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "too short", in: "Calories"},
		{name: "no nutrient matches", in: "the quick brown fox jumped over the lazy sleeping dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, NewParser().Parse(tt.in))
		})
	}
}

func TestParseSaltConvertsToMilligrams(t *testing.T) {
	record := NewParser().Parse("nutrition facts per serving salt 1.2g daily value shown")
	require.NotNil(t, record)
	require.NotNil(t, record.Sodium)
	assert.Equal(t, 1200.0, *record.Sodium)
}

func TestParseConsistencyWarnings(t *testing.T) {
	record := NewParser().Parse("Nutrition Facts Calories 2500 Sodium 2500mg Total Fat 150g")
	require.NotNil(t, record)

	assert.Contains(t, record.Warnings, "very high calorie content")
	assert.Contains(t, record.Warnings, "very high sodium content")
	assert.Contains(t, record.Warnings, "unusually high fat content")
}

func TestParseDeterministic(t *testing.T) {
	p := NewParser()
	first := p.Parse(cleanLabel)
	second := p.Parse(cleanLabel)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first, second)
}

func TestParseFieldCount(t *testing.T) {
	record := NewParser().Parse(cleanLabel)
	require.NotNil(t, record)
	assert.Equal(t, 7, record.FieldCount())
}

func TestMatchConfidenceBounds(t *testing.T) {
	// Confidence never exceeds 1 no matter how much context piles up.
	text := "nutrition facts serving daily value % total fat 10g nutrition facts serving daily value %"
	conf := matchConfidence(`total\s*fat`, text, 30, 45, 10)
	assert.LessOrEqual(t, conf, 1.0)
	assert.GreaterOrEqual(t, conf, baseConfidence)
}
