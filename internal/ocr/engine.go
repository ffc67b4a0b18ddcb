// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/nutriscan/internal/preprocess"
	"github.com/pdiddy/nutriscan/pkg/types"
)

// defaultConfidence is used when the recognizer reports no per-token
// confidences for a non-empty result.
const defaultConfidence = 0.5

// ExtractionError reports that no trial in the preprocessing/configuration
// matrix produced any text. It is the only fatal failure of the pipeline.
type ExtractionError struct {
	Trials int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no text extracted from image after %d trials", e.Trials)
}

// Engine drives the extraction matrix over one recognizer.
type Engine struct {
	rec Recognizer
	cfg types.OCRConfig
}

// NewEngine builds an engine. Zero-valued config fields take defaults:
// 4 workers, minimum text length 1.
func NewEngine(rec Recognizer, cfg types.OCRConfig) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = 1
	}
	return &Engine{rec: rec, cfg: cfg}
}

// trial is one (variant, configuration) outcome.
type trial struct {
	text       string
	confidence float64
	method     string
	steps      []string
}

// Extract runs the full matrix and returns the highest-confidence result.
// All trials run to completion before selection: confidence comparison
// needs every candidate, so there is no early exit. Trials are independent
// and evaluated concurrently, bounded by the configured worker count.
// Cancelling ctx aborts in-flight trials.
func (e *Engine) Extract(ctx context.Context, img image.Image) (types.ExtractionResult, error) {
	start := time.Now()

	variants := preprocess.Variants(img)
	configs := Configs()

	encoded := make([][]byte, len(variants))
	for i, v := range variants {
		data, err := preprocess.EncodePNG(v.Image)
		if err != nil {
			return types.ExtractionResult{}, fmt.Errorf("encoding variant %s: %w", v.Name, err)
		}
		encoded[i] = data
	}

	// One slot per (variant, config) pair; each goroutine writes only its
	// own slot, so no lock is needed.
	trials := make([]*trial, len(variants)*len(configs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for vi := range variants {
		for ci := range configs {
			vi, ci := vi, ci
			g.Go(func() error {
				obs, err := e.rec.Recognize(gctx, encoded[vi], configs[ci])
				if err != nil {
					// A failed trial is not fatal; the rest of the
					// matrix may still succeed.
					if gctx.Err() != nil {
						return gctx.Err()
					}
					return nil
				}

				text := Clean(obs.Text)
				if len(text) < e.cfg.MinTextLength {
					return nil
				}

				trials[vi*len(configs)+ci] = &trial{
					text:       text,
					confidence: meanConfidence(obs.TokenConfidences),
					method:     variants[vi].Name + "/" + configs[ci].Name,
					steps:      variants[vi].Steps,
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return types.ExtractionResult{}, err
	}

	best := selectBest(trials, len(configs))
	if best == nil {
		return types.ExtractionResult{}, &ExtractionError{Trials: len(trials)}
	}

	return types.ExtractionResult{
		Text:               best.text,
		Confidence:         best.confidence,
		MethodUsed:         best.method,
		ProcessingTimeMs:   time.Since(start).Milliseconds(),
		ImageFingerprint:   Fingerprint(encoded[0]),
		PreprocessingSteps: best.steps,
	}, nil
}

// selectBest returns the trial with the highest confidence. Slot order
// encodes the tie-break: within a variant, configurations appear in their
// declared preference order, and iterating slots ascending keeps the first
// (most preferred) of any tied pair.
func selectBest(trials []*trial, configsPerVariant int) *trial {
	var best *trial
	for ci := 0; ci < configsPerVariant; ci++ {
		for idx := ci; idx < len(trials); idx += configsPerVariant {
			t := trials[idx]
			if t == nil {
				continue
			}
			if best == nil || t.confidence > best.confidence {
				best = t
			}
		}
	}
	return best
}

// meanConfidence averages per-token confidences (0-100 scale) into [0,1].
func meanConfidence(tokens []float64) float64 {
	if len(tokens) == 0 {
		return defaultConfidence
	}
	var sum float64
	for _, c := range tokens {
		sum += c
	}
	mean := sum / float64(len(tokens)) / 100.0
	if mean < 0 {
		return 0
	}
	if mean > 1 {
		return 1
	}
	return mean
}

// Fingerprint returns the sha256 content hash of an encoded bitmap, used by
// callers for caching and deduplication.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
