// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"context"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nutriscan/internal/ocr"
	"github.com/pdiddy/nutriscan/pkg/types"
)

const labelText = "Nutrition Facts Calories 250 Total Fat 10g Saturated Fat 2g " +
	"Sodium 700mg Dietary Fiber 5g Total Sugars 8g Protein 12g " +
	"Ingredients: water, high fructose corn syrup, BHA, red 40, peanuts"

func newTestService(llm LLMClient) *Service {
	return NewService(nil, llm, types.PipelineConfig{}, nil)
}

func TestAnalyzeText(t *testing.T) {
	svc := newTestService(nil)

	result, err := svc.AnalyzeText(context.Background(), labelText, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, EngineVersion, result.EngineVersion)
	assert.Equal(t, labelText, result.ExtractedText)

	require.NotNil(t, result.Nutrition)
	assert.Equal(t, 250.0, *result.Nutrition.Calories)

	assert.GreaterOrEqual(t, len(result.Chemicals), 3)
	assert.Equal(t, types.RiskHigh, result.OverallRiskLevel)
	assert.Equal(t, types.RecommendLimit, result.Recommendation)

	assert.Greater(t, result.SafetyScore, 0.0)
	assert.Greater(t, result.NoviScore, 0.0)
	assert.Greater(t, result.ConfidenceScore, 0.5)
	assert.Len(t, result.RiskSummary, 4)

	// No profile, no personalized warnings.
	assert.Empty(t, result.AllergenWarnings)
	assert.Empty(t, result.HealthConditionWarnings)

	// Enrichment disabled, so guidance comes from the fallback.
	assert.NotEmpty(t, result.Qualitative.Benefits)
	assert.NotEmpty(t, result.Qualitative.Frequency)
}

func TestAnalyzeTextWithProfile(t *testing.T) {
	svc := newTestService(nil)
	profile := &types.HealthProfile{
		Allergies:        []string{"peanuts"},
		HealthConditions: []string{"hypertension"},
	}

	result, err := svc.AnalyzeText(context.Background(), labelText, profile)
	require.NoError(t, err)

	require.Len(t, result.AllergenWarnings, 1)
	assert.Contains(t, result.AllergenWarnings[0], "peanuts")

	require.Len(t, result.HealthConditionWarnings, 1)
	assert.Contains(t, result.HealthConditionWarnings[0], "sodium")
}

func TestAnalyzeTextEmptyInput(t *testing.T) {
	svc := newTestService(nil)

	// Unusable input degrades to a low-confidence result, never an error.
	result, err := svc.AnalyzeText(context.Background(), "", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Nil(t, result.Nutrition)
	assert.Empty(t, result.Chemicals)
	assert.Less(t, result.ConfidenceScore, 0.5)
	assert.NotEmpty(t, result.Recommendation)
	assert.NotEmpty(t, result.Qualitative.Tips)
}

func TestAnalyzeTextCancelled(t *testing.T) {
	svc := newTestService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeText(ctx, labelText, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeTextEnrichmentFailureFallsBack(t *testing.T) {
	var log bytes.Buffer
	svc := NewService(nil, &mockLLM{reply: "not valid json"}, types.PipelineConfig{}, &log)

	result, err := svc.AnalyzeText(context.Background(), labelText, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Qualitative.Benefits)
	assert.Contains(t, log.String(), "enrichment unavailable")
}

func TestAnalyzeTextEnriched(t *testing.T) {
	svc := newTestService(&mockLLM{reply: goodReply})

	result, err := svc.AnalyzeText(context.Background(), labelText, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Good source of fiber"}, result.Qualitative.Benefits)
}

// serviceRecognizer drives AnalyzeImage without Tesseract.
type serviceRecognizer struct {
	text string
}

func (s *serviceRecognizer) Recognize(ctx context.Context, png []byte, cfg ocr.Config) (ocr.Observation, error) {
	return ocr.Observation{Text: s.text, TokenConfidences: []float64{85}}, nil
}

func TestAnalyzeImage(t *testing.T) {
	rec := &serviceRecognizer{text: labelText}
	svc := NewService(rec, nil, types.PipelineConfig{}, nil)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	result, err := svc.AnalyzeImage(context.Background(), img, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.85, result.OCRConfidence, 0.001)
	require.NotNil(t, result.Nutrition)
	assert.Equal(t, 250.0, *result.Nutrition.Calories)
	assert.True(t, strings.Contains(result.ExtractedText, "Calories 250"))
}

func TestAnalyzeImageWithoutRecognizer(t *testing.T) {
	svc := newTestService(nil)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	_, err := svc.AnalyzeImage(context.Background(), img, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognizer")
}
