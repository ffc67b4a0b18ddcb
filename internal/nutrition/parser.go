// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nutrition parses nutrition facts out of noisy extracted text.
// Every nutrient runs its own confidence contest across candidate matches;
// only the best match per nutrient makes it into the record.
package nutrition

import (
	"strconv"
	"strings"

	"github.com/pdiddy/nutriscan/pkg/types"
)

const (
	// minTextLength is the shortest text worth parsing.
	minTextLength = 10

	baseConfidence = 0.7

	// sanityCeiling marks values no nutrient plausibly reaches.
	sanityCeiling = 10000
)

// contextKeywords mark nutrition-facts surroundings; each one found within
// the context window raises a match's confidence.
var contextKeywords = []string{"nutrition", "facts", "serving", "daily", "value", "%"}

// contextWindow is how many runes around a match count as its context.
const contextWindow = 50

// candidate is one scored pattern match for a nutrient.
type candidate struct {
	value      float64
	confidence float64
	matched    string
}

// Parser extracts a NutritionRecord from free text.
type Parser struct{}

// NewParser returns a ready parser. Patterns are package-level and
// compiled once.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the structured record, or nil when the text is empty, too
// short, or yields no confident nutrient match. A nil return is expected
// for non-label text and is not an error. Parsing is deterministic: the
// same text always yields the same record.
func (p *Parser) Parse(text string) *types.NutritionRecord {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil
	}

	normalized := strings.Join(strings.Fields(text), " ")

	record := &types.NutritionRecord{}
	found := 0

	for _, spec := range nutrientSpecs {
		if best := bestMatch(normalized, spec); best != nil {
			spec.assign(record, canonicalValue(spec.key, best))
			found++
		}
	}

	if found == 0 {
		return nil
	}

	record.Warnings = validate(record)
	return record
}

// bestMatch runs the confidence contest for one nutrient: every pattern,
// every occurrence, highest confidence wins.
func bestMatch(text string, spec nutrientSpec) *candidate {
	var best *candidate

	for _, re := range spec.patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			// loc[2:4] is the first capture group.
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			value, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			if err != nil {
				continue
			}

			conf := matchConfidence(re.String(), text, loc[0], loc[1], value)
			if best == nil || conf > best.confidence {
				best = &candidate{
					value:      value,
					confidence: conf,
					matched:    text[loc[0]:loc[1]],
				}
			}
		}
	}

	return best
}

// matchConfidence scores one occurrence: pattern specificity, surrounding
// nutrition-context keywords, and magnitude plausibility.
func matchConfidence(pattern, text string, start, end int, value float64) float64 {
	conf := baseConfidence

	lowered := strings.ToLower(pattern)
	if strings.Contains(lowered, "total") {
		conf += 0.1
	}
	if strings.Contains(lowered, "dietary") {
		conf += 0.1
	}

	ctxStart := max(0, start-contextWindow)
	ctxEnd := min(len(text), end+contextWindow)
	context := strings.ToLower(text[ctxStart:ctxEnd])
	for _, kw := range contextKeywords {
		if strings.Contains(context, kw) {
			conf += 0.05
		}
	}

	if value > sanityCeiling {
		conf -= 0.2
	} else if value == 0 {
		conf -= 0.1
	}

	return min(conf, 1.0)
}

// canonicalValue converts a matched value to the nutrient's canonical unit.
// Sodium declared in grams (the "salt Ng" phrasing) rescales to milligrams.
func canonicalValue(key string, c *candidate) float64 {
	if key == "sodium" && strings.Contains(strings.ToLower(c.matched), "salt") {
		return c.value * 1000
	}
	return c.value
}
