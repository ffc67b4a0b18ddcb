// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nutriscan/pkg/types"
)

const ingredientList = "Ingredients: Water, High Fructose Corn Syrup, BHA, Red 40, Sodium Benzoate"

func TestDetectIngredientList(t *testing.T) {
	found := NewDetector().Detect(ingredientList)

	names := make(map[string]types.ChemicalInfo, len(found))
	for _, c := range found {
		names[c.Name] = c
	}

	require.GreaterOrEqual(t, len(found), 4)
	assert.Contains(t, names, "High Fructose Corn Syrup")
	assert.Contains(t, names, "BHA")
	assert.Contains(t, names, "Red 40")
	assert.Contains(t, names, "Sodium Benzoate")

	assert.Equal(t, types.RiskHigh, names["High Fructose Corn Syrup"].RiskLevel)
	assert.Equal(t, types.CategoryArtificialColor, names["Red 40"].Category)
}

func TestDetectNoDuplicateIdentities(t *testing.T) {
	// The same additive named three ways: E number, full name, and alias.
	text := "contains E211, sodium benzoate (benzoate of soda) as preservative"
	found := NewDetector().Detect(text)

	count := 0
	for _, c := range found {
		if c.Name == "Sodium Benzoate" {
			count++
		}
	}
	assert.Equal(t, 1, count, "one chemical identity must appear once")
}

func TestDetectENumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "tartrazine code", text: "ingredients include e102 colouring", want: "Yellow 5"},
		{name: "spaced code", text: "colour E 129 added", want: "Red 40"},
		{name: "aspartame code", text: "sweetened with e951", want: "Aspartame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := NewDetector().Detect(tt.text)
			var names []string
			for _, c := range found {
				names = append(names, c.Name)
			}
			assert.Contains(t, names, tt.want)
		})
	}
}

func TestDetectColorCodeVariants(t *testing.T) {
	for _, text := range []string{
		"contains red 40",
		"contains FD&C Red #40",
		"contains red dye 40",
	} {
		found := NewDetector().Detect(text)
		var names []string
		for _, c := range found {
			names = append(names, c.Name)
		}
		assert.Contains(t, names, "Red 40", "input %q", text)
	}
}

func TestDetectMisspellings(t *testing.T) {
	// OCR-corrupted spellings resolve through the fuzzy pass.
	found := NewDetector().Detect("sweetened with asparteme and monosodium glutamat flavouring")

	var names []string
	for _, c := range found {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Aspartame")
	assert.Contains(t, names, "Monosodium Glutamate")
}

func TestDetectEmptyInput(t *testing.T) {
	assert.Empty(t, NewDetector().Detect(""))
	assert.Empty(t, NewDetector().Detect("   \n\t  "))
	assert.Empty(t, NewDetector().Detect("water, flour, cane sugar, sea salt"))
}

func TestDetectStableOrdering(t *testing.T) {
	first := NewDetector().Detect(ingredientList)
	second := NewDetector().Detect(ingredientList)
	assert.Equal(t, first, second)
}

func TestDedupeKeepsHighestConfidence(t *testing.T) {
	matches := []match{
		{id: BHA, confidence: confMisspell, position: 40, span: "bba"},
		{id: BHA, confidence: confKeyword, position: 10, span: "bha"},
		{id: Red40, confidence: confPattern, position: 5, span: "red 40"},
	}

	out := dedupe(matches)
	require.Len(t, out, 2)
	// Ordered by position: red 40 at 5, then bha at 10.
	assert.Equal(t, Red40, out[0].id)
	assert.Equal(t, BHA, out[1].id)
	assert.Equal(t, confKeyword, out[1].confidence)
}
