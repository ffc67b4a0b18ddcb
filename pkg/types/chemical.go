// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RiskLevel classifies how concerning a detected additive is.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity returns the ordering of a risk level: low < medium < high < critical.
// Unknown levels rank below low.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	}
	return 0
}

// ChemicalCategory groups additives by function on the label.
type ChemicalCategory string

const (
	CategoryPreservative    ChemicalCategory = "preservatives"
	CategoryArtificialColor ChemicalCategory = "artificial_colors"
	CategorySweetener       ChemicalCategory = "sweeteners"
	CategoryFlavorEnhancer  ChemicalCategory = "flavor_enhancers"
	CategoryEmulsifier      ChemicalCategory = "emulsifiers"
)

// ChemicalInfo describes one additive detected in ingredient text. Entries
// are unique per canonical chemical identity within a single analysis.
type ChemicalInfo struct {
	Name          string           `json:"name" yaml:"name"`
	Category      ChemicalCategory `json:"category" yaml:"category"`
	RiskLevel     RiskLevel        `json:"risk_level" yaml:"risk_level"`
	Description   string           `json:"description" yaml:"description"`
	HealthEffects []string         `json:"health_effects,omitempty" yaml:"health_effects,omitempty"`
	Alternatives  []string         `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}
