// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nutriscan/pkg/types"
)

// mockRecognizer dispatches on the configuration so tests can shape the
// trial matrix without a real OCR engine.
type mockRecognizer struct {
	fn func(cfg Config) (Observation, error)
}

func (m *mockRecognizer) Recognize(ctx context.Context, png []byte, cfg Config) (Observation, error) {
	select {
	case <-ctx.Done():
		return Observation{}, ctx.Err()
	default:
	}
	return m.fn(cfg)
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func TestExtractPicksHighestConfidence(t *testing.T) {
	rec := &mockRecognizer{fn: func(cfg Config) (Observation, error) {
		if cfg.Name == "single_line" {
			return Observation{Text: "Calories 250", TokenConfidences: []float64{92, 88}}, nil
		}
		return Observation{Text: "garbled", TokenConfidences: []float64{20}}, nil
	}}

	engine := NewEngine(rec, types.OCRConfig{Workers: 2})
	result, err := engine.Extract(context.Background(), testImage())
	require.NoError(t, err)

	assert.Equal(t, "Calories 250", result.Text)
	assert.InDelta(t, 0.90, result.Confidence, 0.001)
	assert.True(t, strings.HasSuffix(result.MethodUsed, "/single_line"), "method was %s", result.MethodUsed)
	assert.NotEmpty(t, result.ImageFingerprint)
	assert.NotEmpty(t, result.PreprocessingSteps)
}

func TestExtractTieBreaksByConfigOrder(t *testing.T) {
	// Every trial reports the same confidence; the winner must come from
	// the first configuration in declared order.
	rec := &mockRecognizer{fn: func(cfg Config) (Observation, error) {
		return Observation{Text: "Sodium 300mg", TokenConfidences: []float64{75}}, nil
	}}

	engine := NewEngine(rec, types.OCRConfig{})
	result, err := engine.Extract(context.Background(), testImage())
	require.NoError(t, err)

	first := Configs()[0].Name
	assert.True(t, strings.HasSuffix(result.MethodUsed, "/"+first),
		"tie should prefer %s, got %s", first, result.MethodUsed)
}

func TestExtractDefaultConfidenceWithoutTokens(t *testing.T) {
	rec := &mockRecognizer{fn: func(cfg Config) (Observation, error) {
		return Observation{Text: "Protein 12g"}, nil
	}}

	engine := NewEngine(rec, types.OCRConfig{})
	result, err := engine.Extract(context.Background(), testImage())
	require.NoError(t, err)

	assert.InDelta(t, defaultConfidence, result.Confidence, 0.001)
}

func TestExtractAllTrialsEmpty(t *testing.T) {
	rec := &mockRecognizer{fn: func(cfg Config) (Observation, error) {
		return Observation{Text: "   "}, nil
	}}

	engine := NewEngine(rec, types.OCRConfig{})
	_, err := engine.Extract(context.Background(), testImage())

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Greater(t, extractErr.Trials, 0)
}

func TestExtractSurvivesPartialFailures(t *testing.T) {
	// Most trials fail outright; one succeeds. The engine must still
	// return the surviving result.
	rec := &mockRecognizer{fn: func(cfg Config) (Observation, error) {
		if cfg.Name != "default" {
			return Observation{}, fmt.Errorf("recognizer crashed")
		}
		return Observation{Text: "Total Fat 10g", TokenConfidences: []float64{60}}, nil
	}}

	engine := NewEngine(rec, types.OCRConfig{})
	result, err := engine.Extract(context.Background(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "Total Fat 10g", result.Text)
}

func TestExtractContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &mockRecognizer{fn: func(cfg Config) (Observation, error) {
		return Observation{Text: "Calories 100"}, nil
	}}

	engine := NewEngine(rec, types.OCRConfig{})
	_, err := engine.Extract(ctx, testImage())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeanConfidence(t *testing.T) {
	tests := []struct {
		name   string
		tokens []float64
		want   float64
	}{
		{name: "no tokens uses default", tokens: nil, want: defaultConfidence},
		{name: "averages and normalizes", tokens: []float64{80, 90, 100}, want: 0.9},
		{name: "clamps above one", tokens: []float64{150}, want: 1.0},
		{name: "clamps below zero", tokens: []float64{-40}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, meanConfidence(tt.tokens), 0.001)
		})
	}
}

func TestFingerprintStable(t *testing.T) {
	data := []byte("same bytes")
	assert.Equal(t, Fingerprint(data), Fingerprint(data))
	assert.NotEqual(t, Fingerprint(data), Fingerprint([]byte("other bytes")))
	assert.Len(t, Fingerprint(data), 64)
}
