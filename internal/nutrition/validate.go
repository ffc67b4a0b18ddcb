// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nutrition

import "github.com/pdiddy/nutriscan/pkg/types"

// validate checks a parsed record for internal consistency and implausible
// magnitudes. Findings come back as warnings attached to the record, not as
// errors: a contradictory label scan is still worth analyzing, just with
// less trust.
func validate(r *types.NutritionRecord) []string {
	var warnings []string

	if r.SaturatedFat != nil && r.TotalFat != nil && *r.SaturatedFat > *r.TotalFat {
		warnings = append(warnings, "saturated fat exceeds total fat")
	}
	if r.AddedSugars != nil && r.TotalSugars != nil && *r.AddedSugars > *r.TotalSugars {
		warnings = append(warnings, "added sugars exceed total sugars")
	}

	if r.Calories != nil && *r.Calories > 2000 {
		warnings = append(warnings, "very high calorie content")
	}
	if r.Sodium != nil && *r.Sodium > 2000 {
		warnings = append(warnings, "very high sodium content")
	}
	if r.TotalFat != nil && *r.TotalFat > 100 {
		warnings = append(warnings, "unusually high fat content")
	}

	return warnings
}
