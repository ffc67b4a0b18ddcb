// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis fuses nutrition records and chemical findings into
// scored, personalized assessments. Scoring is deterministic policy: fixed
// baselines, configurable thresholds, clamped ranges. The only
// non-deterministic step is the optional language-model enrichment, which
// always degrades to a fixed fallback.
package analysis

import (
	"fmt"
	"strings"

	"github.com/pdiddy/nutriscan/pkg/types"
)

// NOVI adjustment thresholds. The NOVI index uses stricter cut-offs than
// the 0-10 nutrition score.
const (
	noviFiberBonusG   = 5.0
	noviProteinBonusG = 15.0
	noviSodiumLimitMg = 800.0
	noviSugarLimitG   = 20.0
)

// Scorer applies the scoring policy.
type Scorer struct {
	cfg types.ScoringConfig
}

// NewScorer builds a scorer, filling zero-valued thresholds with defaults.
func NewScorer(cfg types.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg.WithDefaults()}
}

// NutritionScore rates the nutrient profile on [0,10], higher is better.
// A nil record scores the neutral 5.0.
func (s *Scorer) NutritionScore(n *types.NutritionRecord) float64 {
	if n == nil {
		return 5.0
	}

	score := 7.0

	if n.Sodium != nil && *n.Sodium > s.cfg.SodiumLimitMg {
		score -= 1.0
	}
	if n.TotalSugars != nil && *n.TotalSugars > s.cfg.SugarLimitG {
		score -= 1.0
	}
	if n.SaturatedFat != nil && *n.SaturatedFat > s.cfg.SaturatedFatLimitG {
		score -= 0.5
	}
	if n.TransFat != nil && *n.TransFat > 0 {
		score -= 2.0
	}

	if n.DietaryFiber != nil && *n.DietaryFiber > s.cfg.FiberBonusG {
		score += 0.5
	}
	if n.Protein != nil && *n.Protein > s.cfg.ProteinBonusG {
		score += 0.5
	}

	return clamp(score, 0, 10)
}

// NoviScore computes the 0-100 nutrition-quality index, combining nutrient
// adjustments with a penalty for the overall chemical risk level.
func (s *Scorer) NoviScore(n *types.NutritionRecord, overallRisk types.RiskLevel) float64 {
	score := 50.0

	if n != nil {
		if n.DietaryFiber != nil && *n.DietaryFiber > noviFiberBonusG {
			score += 10
		}
		if n.Protein != nil && *n.Protein > noviProteinBonusG {
			score += 10
		}
		if n.Sodium != nil && *n.Sodium > noviSodiumLimitMg {
			score -= 15
		}
		if n.TotalSugars != nil && *n.TotalSugars > noviSugarLimitG {
			score -= 15
		}
	}

	switch overallRisk {
	case types.RiskMedium:
		score -= 5
	case types.RiskHigh:
		score -= 15
	case types.RiskCritical:
		score -= 25
	}

	return clamp(score, 0, 100)
}

// OverallRisk is the maximum severity among detected chemicals; an empty
// list means low.
func OverallRisk(chemicals []types.ChemicalInfo) types.RiskLevel {
	overall := types.RiskLow
	for _, c := range chemicals {
		if c.RiskLevel.Severity() > overall.Severity() {
			overall = c.RiskLevel
		}
	}
	return overall
}

// SafetyScore rates chemical safety on [0,10], higher is safer: 9.0 with
// no detections, otherwise 8.0 minus a severity-weighted penalty per
// chemical.
func SafetyScore(chemicals []types.ChemicalInfo) float64 {
	if len(chemicals) == 0 {
		return 9.0
	}

	score := 8.0
	for _, c := range chemicals {
		switch c.RiskLevel {
		case types.RiskLow:
			score -= 0.5
		case types.RiskMedium:
			score -= 1.0
		case types.RiskHigh:
			score -= 2.0
		case types.RiskCritical:
			score -= 3.0
		}
	}
	return clamp(score, 0, 10)
}

// RiskSummary counts detections per risk level. Every level appears in the
// map, including zero counts.
func RiskSummary(chemicals []types.ChemicalInfo) map[types.RiskLevel]int {
	summary := map[types.RiskLevel]int{
		types.RiskLow: 0, types.RiskMedium: 0, types.RiskHigh: 0, types.RiskCritical: 0,
	}
	for _, c := range chemicals {
		summary[c.RiskLevel]++
	}
	return summary
}

// Recommendation maps the nutrition score and chemical risk onto the
// consume/limit/avoid verdict. Fixed decision boundaries, not learned.
func (s *Scorer) Recommendation(nutritionScore float64, risk types.RiskLevel) types.RecommendationType {
	switch {
	case risk == types.RiskCritical || nutritionScore < 3:
		return types.RecommendAvoid
	case risk == types.RiskHigh || nutritionScore < 5:
		return types.RecommendLimit
	default:
		return types.RecommendConsume
	}
}

// AllergenWarnings reports profile allergens appearing anywhere in the
// extracted text, case-insensitively.
func AllergenWarnings(text string, profile *types.HealthProfile) []string {
	if profile == nil {
		return nil
	}

	lower := strings.ToLower(text)
	var warnings []string
	for _, allergen := range profile.Normalized().Allergies {
		if strings.Contains(lower, allergen) {
			warnings = append(warnings, fmt.Sprintf("Contains %s - matches your allergy profile", allergen))
		}
	}
	return warnings
}

// ConditionWarnings applies the fixed per-condition rule table against the
// nutrition record.
func (s *Scorer) ConditionWarnings(n *types.NutritionRecord, profile *types.HealthProfile) []string {
	if profile == nil || n == nil {
		return nil
	}

	conditions := make(map[string]bool)
	for _, c := range profile.Normalized().HealthConditions {
		conditions[c] = true
	}

	var warnings []string

	if conditions["diabetes"] {
		if n.TotalSugars != nil && *n.TotalSugars > s.cfg.SugarLimitG {
			warnings = append(warnings, "High sugar content - monitor blood glucose")
		}
		if n.TotalCarbohydrates != nil && *n.TotalCarbohydrates > 30 {
			warnings = append(warnings, "High carbohydrate content - consider portion size")
		}
	}

	if conditions["hypertension"] || conditions["high blood pressure"] {
		if n.Sodium != nil && *n.Sodium > 400 {
			warnings = append(warnings, "High sodium content - may affect blood pressure")
		}
	}

	if conditions["heart disease"] {
		if n.SaturatedFat != nil && *n.SaturatedFat > 3 {
			warnings = append(warnings, "High saturated fat - consider heart-healthy alternatives")
		}
		if n.TransFat != nil && *n.TransFat > 0 {
			warnings = append(warnings, "Contains trans fat - avoid for heart health")
		}
	}

	return warnings
}

// ChemicalAdvice produces category-level advisory lines for the chemical
// report.
func ChemicalAdvice(chemicals []types.ChemicalInfo) []string {
	if len(chemicals) == 0 {
		return []string{"No concerning chemicals detected"}
	}

	var advice []string

	for _, c := range chemicals {
		if c.RiskLevel == types.RiskHigh || c.RiskLevel == types.RiskCritical {
			advice = append(advice,
				"Contains high-risk chemical additives - consider alternatives",
				"Limit consumption frequency")
			break
		}
	}

	seen := map[types.ChemicalCategory]bool{}
	for _, c := range chemicals {
		seen[c.Category] = true
	}
	if seen[types.CategoryPreservative] {
		advice = append(advice, "Contains preservatives - check expiration dates")
	}
	if seen[types.CategoryArtificialColor] {
		advice = append(advice, "Contains artificial colors - may cause reactions in sensitive individuals")
	}

	return advice
}

// Confidence averages three independent signals: extracted-text adequacy,
// nutrition field coverage, and whether any chemicals were found.
func Confidence(text string, n *types.NutritionRecord, chemicals []types.ChemicalInfo) float64 {
	var textFactor float64
	switch {
	case len(text) > 100:
		textFactor = 0.8
	case len(text) > 50:
		textFactor = 0.6
	default:
		textFactor = 0.3
	}

	nutritionFactor := 0.2
	if n != nil {
		nutritionFactor = min(float64(n.FieldCount())/10.0, 1.0)
	}

	chemicalFactor := 0.7
	if len(chemicals) > 0 {
		chemicalFactor = 0.9
	}

	return (textFactor + nutritionFactor + chemicalFactor) / 3.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
