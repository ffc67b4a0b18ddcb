// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// AgeGroup is a coarse age bracket used to personalize recommendations.
type AgeGroup string

const (
	AgeChild  AgeGroup = "child"
	AgeTeen   AgeGroup = "teen"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
)

// ActivityLevel describes the consumer's typical physical activity.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// HealthProfile is the caller-supplied description of a consumer. The
// pipeline only reads it; list entries are free text.
type HealthProfile struct {
	Allergies           []string      `json:"allergies,omitempty" yaml:"allergies,omitempty"`
	DietaryRestrictions []string      `json:"dietary_restrictions,omitempty" yaml:"dietary_restrictions,omitempty"`
	HealthConditions    []string      `json:"health_conditions,omitempty" yaml:"health_conditions,omitempty"`
	AgeGroup            AgeGroup      `json:"age_group,omitempty" yaml:"age_group,omitempty"`
	ActivityLevel       ActivityLevel `json:"activity_level,omitempty" yaml:"activity_level,omitempty"`
}

// Normalized returns a copy with every list entry lower-cased and trimmed,
// and blank entries dropped.
func (p HealthProfile) Normalized() HealthProfile {
	p.Allergies = normalizeList(p.Allergies)
	p.DietaryRestrictions = normalizeList(p.DietaryRestrictions)
	p.HealthConditions = normalizeList(p.HealthConditions)
	return p
}

func normalizeList(items []string) []string {
	var out []string
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
