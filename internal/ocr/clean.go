// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"regexp"
	"strings"
)

// Common recognizer misreads on nutrition labels: "mg" degrades to "rng"
// or "rag", and a trailing unit "g" after a number degrades to "9".
var (
	reMisreadMgRng  = regexp.MustCompile(`(\d+)\s*rng\b`)
	reMisreadMgRag  = regexp.MustCompile(`(\d+)\s*rag\b`)
	reMisreadGram   = regexp.MustCompile(`(\d+)\s*9\b`)
	rePercentSpace  = regexp.MustCompile(`(\d+)\s+%`)
	reCaloriesLabel = regexp.MustCompile(`(?i)calories?\s*(\d+)`)
)

// Clean normalizes raw recognizer output: collapses whitespace and repairs
// the known unit-suffix corruptions.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.Join(strings.Fields(text), " ")

	text = reMisreadMgRng.ReplaceAllString(text, "${1}mg")
	text = reMisreadMgRag.ReplaceAllString(text, "${1}mg")
	text = reMisreadGram.ReplaceAllString(text, "${1}g")
	text = rePercentSpace.ReplaceAllString(text, "${1}%")
	text = reCaloriesLabel.ReplaceAllString(text, "Calories ${1}")

	return strings.TrimSpace(text)
}

// ValidationReport describes how label-like a piece of extracted text is.
type ValidationReport struct {
	Valid       bool     `json:"valid" yaml:"valid"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
	Issues      []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

var labelKeywords = []string{
	"calories", "fat", "protein", "carbohydrate", "sodium", "sugar",
	"vitamin", "mineral", "serving", "nutrition", "facts",
}

var reDigits = regexp.MustCompile(`\d+`)

// Validate reports whether extracted text plausibly came from a nutrition
// label: enough length, enough label vocabulary, enough numbers.
func Validate(text string) ValidationReport {
	report := ValidationReport{}

	if len(strings.TrimSpace(text)) < 10 {
		report.Issues = append(report.Issues, "text too short")
		report.Suggestions = append(report.Suggestions, "try a clearer image")
		return report
	}

	lower := strings.ToLower(text)
	found := 0
	for _, kw := range labelKeywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}

	if found >= 3 {
		report.Valid = true
		report.Confidence = min(float64(found)/float64(len(labelKeywords)), 1.0)
	} else {
		report.Issues = append(report.Issues, "few nutrition-related terms found")
		report.Suggestions = append(report.Suggestions, "ensure the image shows the nutrition facts panel")
	}

	if len(reDigits.FindAllString(text, -1)) < 5 {
		report.Issues = append(report.Issues, "few numeric values detected")
		report.Suggestions = append(report.Suggestions, "ensure nutrient values are clearly visible")
	}

	return report
}
