// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemical

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/nutriscan/pkg/types"
)

// Technique confidence tiers. Structural and canonical-name evidence is
// strong; trade-name aliases slightly weaker; misspellings weakest. On a
// dedup conflict the higher tier wins.
const (
	confPattern  = 0.9
	confKeyword  = 0.95
	confAlias    = 0.8
	confMisspell = 0.7
)

// match is one detection before deduplication. Ephemeral: consumed
// immediately into the per-ID contest.
type match struct {
	id         ID
	confidence float64
	position   int
	span       string
}

// Structural patterns: regulatory codes and named chemical classes. Each
// resolves to a canonical ID, so a code and a spelled-out name of the same
// additive deduplicate together.
var (
	reENumber     = regexp.MustCompile(`\be\s*(\d{3,4})\b`)
	reSaltClass   = regexp.MustCompile(`\b(?:sodium|potassium|calcium)\s+(benzoate|sorbate|nitrite|nitrate)\b`)
	reAntioxidant = regexp.MustCompile(`\b(bha|bht|tbhq)\b`)
	reColorCode   = regexp.MustCompile(`\b(?:fd&c\s+|fdc\s+)?(red|yellow|blue)\s+(?:dye\s+)?#?\s*(\d+)\b`)
	reCaramel     = regexp.MustCompile(`\bcaramel\s+colou?r\b`)
	reSweetener   = regexp.MustCompile(`\b(aspartame|sucralose|acesulfame\s+k|saccharin|cyclamate)\b`)
	reHFCS        = regexp.MustCompile(`\bhigh\s+fructose\s+corn\s+syrup\b`)
	reMSG         = regexp.MustCompile(`\bmonosodium\s+glutamate\b|\bmsg\b`)
)

// saltClassIndex resolves the salt-class patterns to IDs. Only the
// sodium/potassium forms present in the knowledge base resolve.
var saltClassIndex = map[string]ID{
	"benzoate": SodiumBenzoate,
	"sorbate":  PotassiumSorbate,
	"nitrite":  SodiumNitrite,
	"nitrate":  SodiumNitrate,
}

var antioxidantIndex = map[string]ID{
	"bha":  BHA,
	"bht":  BHT,
	"tbhq": TBHQ,
}

var sweetenerIndex = map[string]ID{
	"aspartame":    Aspartame,
	"sucralose":    Sucralose,
	"acesulfame k": AcesulfameK,
	"saccharin":    Saccharin,
	"cyclamate":    Cyclamate,
}

// Detector finds knowledge-base chemicals in free text.
type Detector struct{}

// NewDetector returns a ready detector. The knowledge base and patterns
// are package-level and immutable.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect runs the three techniques, deduplicates by canonical ID keeping
// the highest-confidence match, and resolves survivors against the
// knowledge base. It never fails: unusable input yields an empty slice. No
// two returned entries share a chemical identity.
func (d *Detector) Detect(text string) []types.ChemicalInfo {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	normalized := normalize(text)

	var matches []match
	matches = append(matches, patternPass(normalized)...)
	matches = append(matches, keywordPass(normalized)...)
	matches = append(matches, fuzzyPass(normalized)...)

	var out []types.ChemicalInfo
	for _, m := range dedupe(matches) {
		if info, ok := Info(m.id); ok {
			out = append(out, info)
		}
	}
	return out
}

// normalize lowercases and flattens list punctuation so ingredient lists
// read as plain space-separated phrases.
func normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.NewReplacer(",", " ", ";", " ", ":", " ").Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// patternPass matches structural forms: additive codes, color numbering,
// named preservative and sweetener classes.
func patternPass(text string) []match {
	var out []match

	add := func(id ID, loc []int) {
		if _, ok := knowledgeBase[id]; ok {
			out = append(out, match{id: id, confidence: confPattern, position: loc[0], span: text[loc[0]:loc[1]]})
		}
	}

	for _, loc := range reENumber.FindAllStringSubmatchIndex(text, -1) {
		code := "e" + text[loc[2]:loc[3]]
		if id, ok := eNumberIndex[code]; ok {
			add(id, loc)
		}
	}
	for _, loc := range reSaltClass.FindAllStringSubmatchIndex(text, -1) {
		if id, ok := saltClassIndex[text[loc[2]:loc[3]]]; ok {
			add(id, loc)
		}
	}
	for _, loc := range reAntioxidant.FindAllStringSubmatchIndex(text, -1) {
		if id, ok := antioxidantIndex[text[loc[2]:loc[3]]]; ok {
			add(id, loc)
		}
	}
	for _, loc := range reColorCode.FindAllStringSubmatchIndex(text, -1) {
		id := ID(fmt.Sprintf("%s_%s", text[loc[2]:loc[3]], text[loc[4]:loc[5]]))
		add(id, loc)
	}
	for _, loc := range reCaramel.FindAllStringIndex(text, -1) {
		add(CaramelColor, loc)
	}
	for _, loc := range reSweetener.FindAllStringSubmatchIndex(text, -1) {
		key := strings.Join(strings.Fields(text[loc[2]:loc[3]]), " ")
		if id, ok := sweetenerIndex[key]; ok {
			add(id, loc)
		}
	}
	for _, loc := range reHFCS.FindAllStringIndex(text, -1) {
		add(HighFructoseCornSyrup, loc)
	}
	for _, loc := range reMSG.FindAllStringIndex(text, -1) {
		add(MSG, loc)
	}

	return out
}

// keywordPass matches canonical names and known aliases literally.
func keywordPass(text string) []match {
	var out []match
	for id, rec := range knowledgeBase {
		name := strings.ToLower(rec.Name)
		if pos := strings.Index(text, name); pos >= 0 {
			out = append(out, match{id: id, confidence: confKeyword, position: pos, span: name})
		}
		for _, alias := range rec.Aliases {
			if pos := strings.Index(text, alias); pos >= 0 {
				out = append(out, match{id: id, confidence: confAlias, position: pos, span: alias})
			}
		}
	}
	return out
}

// fuzzyPass matches the curated misspelling table, covering OCR corruption
// the literal passes miss.
func fuzzyPass(text string) []match {
	var out []match
	for id, rec := range knowledgeBase {
		for _, variant := range rec.Misspellings {
			if pos := strings.Index(text, variant); pos >= 0 {
				out = append(out, match{id: id, confidence: confMisspell, position: pos, span: variant})
			}
		}
	}
	return out
}

// dedupe keeps the single highest-confidence match per canonical ID. The
// survivors come back ordered by text position for stable output.
func dedupe(matches []match) []match {
	best := make(map[ID]match)
	for _, m := range matches {
		cur, seen := best[m.id]
		if !seen || m.confidence > cur.confidence {
			best[m.id] = m
		}
	}

	out := make([]match, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].position != out[j].position {
			return out[i].position < out[j].position
		}
		return out[i].id < out[j].id
	})
	return out
}
