// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/nutriscan/pkg/types"
)

// LLMClient abstracts the language-model service used for qualitative
// enrichment. It is injected at construction; the engine carries no
// ambient client state and never probes for availability at use time.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// enrichmentPromptTmpl asks the model for qualitative guidance as a strict
// JSON object. Any response that does not parse as that object is
// discarded in favor of the fallback.
var enrichmentPromptTmpl = template.Must(template.New("enrichment").Parse(`You are a professional nutritionist and food safety expert. Analyze this food product and provide consumption guidance.

Extracted label text:
{{.Text}}

Parsed nutrition data:
{{.Nutrition}}

Detected additives:
{{.Chemicals}}

Consumer health profile:
{{.Profile}}

Respond with a JSON object containing exactly these fields:
{"benefits": ["..."], "risks": ["..."], "alternatives": ["..."], "tips": ["..."], "portion_size": "...", "frequency": "..."}

Consider the consumer's allergies, conditions, and restrictions. Be specific about portion sizes and frequency. Return only the JSON object, no surrounding text.
`))

// promptTextLimit truncates the extracted text included in the prompt.
const promptTextLimit = 1000

// enrichmentResponse is the declared schema for the model's reply.
type enrichmentResponse struct {
	Benefits     []string `json:"benefits"`
	Risks        []string `json:"risks"`
	Alternatives []string `json:"alternatives"`
	Tips         []string `json:"tips"`
	PortionSize  string   `json:"portion_size"`
	Frequency    string   `json:"frequency"`
}

// Enricher produces the qualitative section of an analysis.
type Enricher struct {
	client  LLMClient
	timeout time.Duration
}

// NewEnricher wires an enricher to a client. A nil client disables the
// model call entirely; every enrichment then uses the fallback.
func NewEnricher(client LLMClient, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Enricher{client: client, timeout: timeout}
}

// Enrich returns the qualitative guidance and whether it came from the
// model. Every failure mode - no client, timeout, transport error,
// malformed reply - resolves to the rule-based fallback; enrichment can
// never fail an analysis.
func (e *Enricher) Enrich(ctx context.Context, text string, n *types.NutritionRecord, chemicals []types.ChemicalInfo, profile *types.HealthProfile, risk types.RiskLevel) (types.Qualitative, bool) {
	fallback := fallbackQualitative(n, risk)

	if e.client == nil {
		return fallback, false
	}

	prompt, err := renderPrompt(text, n, chemicals, profile)
	if err != nil {
		return fallback, false
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.Complete(cctx, prompt)
	if err != nil {
		return fallback, false
	}

	var resp enrichmentResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &resp); err != nil {
		return fallback, false
	}
	if len(resp.Benefits) == 0 && len(resp.Risks) == 0 && len(resp.Tips) == 0 {
		return fallback, false
	}

	q := types.Qualitative{
		Benefits:     resp.Benefits,
		Risks:        resp.Risks,
		Alternatives: resp.Alternatives,
		Tips:         resp.Tips,
		PortionSize:  resp.PortionSize,
		Frequency:    resp.Frequency,
	}

	// Keep the result usable even when the model leaves sections blank.
	if len(q.Benefits) == 0 {
		q.Benefits = fallback.Benefits
	}
	if len(q.Risks) == 0 {
		q.Risks = fallback.Risks
	}
	if len(q.Alternatives) == 0 {
		q.Alternatives = fallback.Alternatives
	}
	if len(q.Tips) == 0 {
		q.Tips = fallback.Tips
	}
	if q.PortionSize == "" {
		q.PortionSize = fallback.PortionSize
	}
	if q.Frequency == "" {
		q.Frequency = fallback.Frequency
	}

	return q, true
}

// renderPrompt serializes the analysis inputs into the prompt template.
func renderPrompt(text string, n *types.NutritionRecord, chemicals []types.ChemicalInfo, profile *types.HealthProfile) (string, error) {
	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	data := struct {
		Text, Nutrition, Chemicals, Profile string
	}{
		Text:      text,
		Nutrition: "Not available",
		Chemicals: "None detected",
		Profile:   "Not provided",
	}

	if n != nil {
		if b, err := json.Marshal(n); err == nil {
			data.Nutrition = string(b)
		}
	}
	if len(chemicals) > 0 {
		if b, err := json.Marshal(chemicals); err == nil {
			data.Chemicals = string(b)
		}
	}
	if profile != nil {
		if b, err := json.Marshal(profile.Normalized()); err == nil {
			data.Profile = string(b)
		}
	}

	var buf bytes.Buffer
	if err := enrichmentPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fallbackQualitative is the fixed guidance used when the model is
// unavailable, augmented with rule-based lines from the deterministic
// analysis.
func fallbackQualitative(n *types.NutritionRecord, risk types.RiskLevel) types.Qualitative {
	q := types.Qualitative{
		Benefits:     []string{"Check nutrition label for specific benefits"},
		Risks:        []string{"Consume as part of a balanced diet"},
		Alternatives: []string{"Consider whole food alternatives"},
		Tips:         []string{"Read ingredient list carefully"},
		PortionSize:  "Follow serving size on label",
		Frequency:    "In moderation",
	}

	if risk == types.RiskHigh || risk == types.RiskCritical {
		q.Risks = append(q.Risks, "Contains high-risk chemical additives")
		q.Frequency = "Rarely or avoid"
	}
	if n != nil && n.Sodium != nil && *n.Sodium > 600 {
		q.Risks = append(q.Risks, "High sodium content")
		q.Tips = append(q.Tips, "Drink plenty of water")
	}

	return q
}
