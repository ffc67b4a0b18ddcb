// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer runs Tesseract through gosseract. Each call uses a
// fresh client: gosseract clients are not safe for concurrent reuse and the
// trial matrix runs trials in parallel.
type TesseractRecognizer struct {
	// Language is the Tesseract language code; empty means "eng".
	Language string
}

// Recognize performs one OCR pass over an encoded bitmap.
func (t *TesseractRecognizer) Recognize(ctx context.Context, png []byte, cfg Config) (Observation, error) {
	if err := ctx.Err(); err != nil {
		return Observation{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	lang := t.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return Observation{}, fmt.Errorf("setting language %q: %w", lang, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
		return Observation{}, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if cfg.Whitelist != "" {
		if err := client.SetWhitelist(cfg.Whitelist); err != nil {
			return Observation{}, fmt.Errorf("setting character whitelist: %w", err)
		}
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return Observation{}, fmt.Errorf("setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Observation{}, fmt.Errorf("recognizing text: %w", err)
	}

	obs := Observation{Text: text}

	// Word-level boxes carry per-token confidences. Failure here is
	// non-fatal; the engine falls back to its default confidence.
	if boxes, boxErr := client.GetBoundingBoxes(gosseract.RIL_WORD); boxErr == nil {
		for _, box := range boxes {
			if box.Confidence > 0 {
				obs.TokenConfidences = append(obs.TokenConfidences, box.Confidence)
			}
		}
	}

	return obs, nil
}
