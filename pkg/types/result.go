// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the plain data structures shared across pipeline
// stages: nutrition records, chemical findings, health profiles, analysis
// results, and stage configuration.
package types

import "time"

// ExtractionResult is the output of the text extraction engine: the best
// text found across all preprocessing and recognizer configurations.
// Immutable once produced.
type ExtractionResult struct {
	Text string `json:"text" yaml:"text"`

	// Confidence is the mean per-token recognizer confidence of the
	// winning trial, normalized to [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// MethodUsed names the winning variant and recognizer configuration,
	// e.g. "adaptive_threshold/nutrition_whitelist".
	MethodUsed string `json:"method_used" yaml:"method_used"`

	ProcessingTimeMs int64 `json:"processing_time_ms" yaml:"processing_time_ms"`

	// ImageFingerprint is a sha256 content hash of the source bitmap,
	// usable by callers for caching and deduplication.
	ImageFingerprint string `json:"image_fingerprint" yaml:"image_fingerprint"`

	// PreprocessingSteps lists the transforms applied to the winning
	// variant, in order.
	PreprocessingSteps []string `json:"preprocessing_steps" yaml:"preprocessing_steps"`
}

// RecommendationType is the consumption verdict for a product.
type RecommendationType string

const (
	RecommendConsume RecommendationType = "consume"
	RecommendLimit   RecommendationType = "limit"
	RecommendAvoid   RecommendationType = "avoid"
)

// Tier returns the ordering of a verdict: consume < limit < avoid.
func (r RecommendationType) Tier() int {
	switch r {
	case RecommendConsume:
		return 1
	case RecommendLimit:
		return 2
	case RecommendAvoid:
		return 3
	}
	return 0
}

// Qualitative holds the prose guidance attached to an analysis. Populated
// by the language-model enrichment step when available, otherwise from the
// fixed fallback set.
type Qualitative struct {
	Benefits     []string `json:"benefits" yaml:"benefits"`
	Risks        []string `json:"risks" yaml:"risks"`
	Alternatives []string `json:"alternatives" yaml:"alternatives"`
	Tips         []string `json:"tips" yaml:"tips"`
	PortionSize  string   `json:"portion_size" yaml:"portion_size"`
	Frequency    string   `json:"frequency" yaml:"frequency"`
}

// AnalysisResult is the complete output for one analysis request. It is
// created once per request and never mutated afterwards; callers that
// persist or transport it serialize a copy.
type AnalysisResult struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	ExtractedText string  `json:"extracted_text" yaml:"extracted_text"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty" yaml:"ocr_confidence,omitempty"`

	Nutrition *NutritionRecord `json:"nutrition,omitempty" yaml:"nutrition,omitempty"`
	Chemicals []ChemicalInfo   `json:"chemicals" yaml:"chemicals"`

	// RiskSummary counts detected chemicals per risk level.
	RiskSummary      map[RiskLevel]int `json:"risk_summary" yaml:"risk_summary"`
	OverallRiskLevel RiskLevel         `json:"overall_risk_level" yaml:"overall_risk_level"`
	SafetyScore      float64           `json:"safety_score" yaml:"safety_score"`
	ChemicalAdvice   []string          `json:"chemical_advice,omitempty" yaml:"chemical_advice,omitempty"`

	HealthScore    float64            `json:"health_score" yaml:"health_score"`
	NoviScore      float64            `json:"novi_score" yaml:"novi_score"`
	Recommendation RecommendationType `json:"recommendation" yaml:"recommendation"`

	AllergenWarnings        []string `json:"allergen_warnings,omitempty" yaml:"allergen_warnings,omitempty"`
	HealthConditionWarnings []string `json:"health_condition_warnings,omitempty" yaml:"health_condition_warnings,omitempty"`

	Qualitative Qualitative `json:"qualitative" yaml:"qualitative"`

	// ConfidenceScore aggregates text quality, nutrition field coverage,
	// and chemical detection into one [0,1] estimate.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	ProcessingTimeMs int64  `json:"processing_time_ms" yaml:"processing_time_ms"`
	EngineVersion    string `json:"engine_version" yaml:"engine_version"`
}
