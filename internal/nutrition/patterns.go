// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nutrition

import (
	"regexp"

	"github.com/pdiddy/nutriscan/pkg/types"
)

// nutrientSpec binds one nutrient key to its ordered pattern list (most
// specific first) and to the record field it populates.
type nutrientSpec struct {
	key      string
	patterns []*regexp.Regexp
	assign   func(r *types.NutritionRecord, v float64)
}

// Label text is lexically ambiguous: bare "fat" also appears inside
// "saturated fat", "sugars" inside "added sugars". Ordering the specific
// phrasing first and weighting it higher lets the per-field confidence
// contest pick the right match instead of the first one.
var nutrientSpecs = []nutrientSpec{
	{
		key: "calories",
		patterns: compile(
			`calories?\s*:?\s*(\d+(?:\.\d+)?)`,
			`energy\s*(\d+(?:\.\d+)?)\s*kcal`,
			`(\d+(?:\.\d+)?)\s*cal(?:ories?)?\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Calories = &v },
	},
	{
		key: "total_fat",
		patterns: compile(
			`total\s*fat\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`total\s*fat\s*:?\s*(\d+(?:\.\d+)?)`,
			`\bfat\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.TotalFat = &v },
	},
	{
		key: "saturated_fat",
		patterns: compile(
			`saturated\s*fat\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`saturated\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.SaturatedFat = &v },
	},
	{
		key: "trans_fat",
		patterns: compile(
			`trans\s*fat\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`trans\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.TransFat = &v },
	},
	{
		key: "cholesterol",
		patterns: compile(
			`cholesterol\s*:?\s*(\d+(?:\.\d+)?)\s*mg\b`,
			`cholesterol\s*:?\s*(\d+(?:\.\d+)?)`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Cholesterol = &v },
	},
	{
		key: "sodium",
		patterns: compile(
			`sodium\s*:?\s*(\d+(?:\.\d+)?)\s*mg\b`,
			`sodium\s*:?\s*(\d+(?:\.\d+)?)`,
			`salt\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Sodium = &v },
	},
	{
		key: "total_carbohydrates",
		patterns: compile(
			`total\s*carbohydrates?\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`carbohydrates?\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`carbs\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.TotalCarbohydrates = &v },
	},
	{
		key: "dietary_fiber",
		patterns: compile(
			`dietary\s*fib(?:er|re)\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`fib(?:er|re)\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.DietaryFiber = &v },
	},
	{
		key: "total_sugars",
		patterns: compile(
			`total\s*sugars?\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`\bsugars?\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.TotalSugars = &v },
	},
	{
		key: "added_sugars",
		patterns: compile(
			`added\s*sugars?\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`includes\s*(\d+(?:\.\d+)?)\s*g\s*added\s*sugars?`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.AddedSugars = &v },
	},
	{
		key: "protein",
		patterns: compile(
			`protein\s*:?\s*(\d+(?:\.\d+)?)\s*g\b`,
			`protein\s*:?\s*(\d+(?:\.\d+)?)`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Protein = &v },
	},
	{
		key: "vitamin_d",
		patterns: compile(
			`vitamin\s*d\s*:?\s*(\d+(?:\.\d+)?)\s*(?:mcg|iu)\b`,
			`vitamin\s*d\s*:?\s*(\d+(?:\.\d+)?)`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.VitaminD = &v },
	},
	{
		key: "calcium",
		patterns: compile(
			`calcium\s*:?\s*(\d+(?:\.\d+)?)\s*mg\b`,
			`calcium\s*:?\s*(\d+(?:\.\d+)?)`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Calcium = &v },
	},
	{
		key: "iron",
		patterns: compile(
			`iron\s*:?\s*(\d+(?:\.\d+)?)\s*mg\b`,
			`iron\s*:?\s*(\d+(?:\.\d+)?)`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Iron = &v },
	},
	{
		key: "potassium",
		patterns: compile(
			`potassium\s*:?\s*(\d+(?:\.\d+)?)\s*mg\b`,
			`potassium\s*:?\s*(\d+(?:\.\d+)?)`,
		),
		assign: func(r *types.NutritionRecord, v float64) { r.Potassium = &v },
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return out
}
