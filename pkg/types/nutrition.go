// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NutritionRecord holds the nutrient values parsed from a label. Every field
// is optional: a nil pointer means the nutrient was not found in the text,
// which is distinct from a declared value of zero.
//
// Canonical units: kcal for Calories; grams for fats, carbohydrates, fiber,
// sugars, and protein; milligrams for cholesterol, sodium, calcium, iron,
// and potassium; micrograms for vitamin D.
type NutritionRecord struct {
	Calories           *float64 `json:"calories,omitempty" yaml:"calories,omitempty"`
	TotalFat           *float64 `json:"total_fat,omitempty" yaml:"total_fat,omitempty"`
	SaturatedFat       *float64 `json:"saturated_fat,omitempty" yaml:"saturated_fat,omitempty"`
	TransFat           *float64 `json:"trans_fat,omitempty" yaml:"trans_fat,omitempty"`
	Cholesterol        *float64 `json:"cholesterol,omitempty" yaml:"cholesterol,omitempty"`
	Sodium             *float64 `json:"sodium,omitempty" yaml:"sodium,omitempty"`
	TotalCarbohydrates *float64 `json:"total_carbohydrates,omitempty" yaml:"total_carbohydrates,omitempty"`
	DietaryFiber       *float64 `json:"dietary_fiber,omitempty" yaml:"dietary_fiber,omitempty"`
	TotalSugars        *float64 `json:"total_sugars,omitempty" yaml:"total_sugars,omitempty"`
	AddedSugars        *float64 `json:"added_sugars,omitempty" yaml:"added_sugars,omitempty"`
	Protein            *float64 `json:"protein,omitempty" yaml:"protein,omitempty"`
	VitaminD           *float64 `json:"vitamin_d,omitempty" yaml:"vitamin_d,omitempty"`
	Calcium            *float64 `json:"calcium,omitempty" yaml:"calcium,omitempty"`
	Iron               *float64 `json:"iron,omitempty" yaml:"iron,omitempty"`
	Potassium          *float64 `json:"potassium,omitempty" yaml:"potassium,omitempty"`

	// Warnings lists consistency findings from validation (for example
	// saturated fat exceeding total fat). A record with warnings is still
	// usable; warnings are advisory, not errors.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FieldCount returns how many nutrient fields carry a value. Warnings are
// not counted.
func (n *NutritionRecord) FieldCount() int {
	if n == nil {
		return 0
	}
	count := 0
	for _, v := range []*float64{
		n.Calories, n.TotalFat, n.SaturatedFat, n.TransFat, n.Cholesterol,
		n.Sodium, n.TotalCarbohydrates, n.DietaryFiber, n.TotalSugars,
		n.AddedSugars, n.Protein, n.VitaminD, n.Calcium, n.Iron, n.Potassium,
	} {
		if v != nil {
			count++
		}
	}
	return count
}
