// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr extracts text from label photographs. It runs an external
// recognizer against every preprocessed variant under several recognition
// configurations and keeps the single highest-confidence result; the
// breadth of the trial matrix is the retry strategy.
package ocr

import "context"

// Config is one recognition-mode configuration for a trial. Configs lists
// them in preference order; ties on confidence resolve to the earlier entry.
type Config struct {
	// Name identifies the configuration in ExtractionResult.MethodUsed.
	Name string

	// PageSegMode is the Tesseract page segmentation mode.
	PageSegMode int

	// Whitelist restricts recognized characters when non-empty.
	Whitelist string
}

// Tesseract page segmentation modes used by the trial matrix.
const (
	psmAuto        = 3
	psmSingleBlock = 6
	psmSingleLine  = 7
)

// nutritionWhitelist covers the character set of US nutrition labels:
// letters, digits, units, percentages, and list punctuation.
const nutritionWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,()%:-+ "

// Configs returns the fixed recognition configurations in preference order.
func Configs() []Config {
	return []Config{
		{Name: "nutrition_whitelist", PageSegMode: psmSingleBlock, Whitelist: nutritionWhitelist},
		{Name: "single_block", PageSegMode: psmSingleBlock},
		{Name: "single_line", PageSegMode: psmSingleLine},
		{Name: "default", PageSegMode: psmAuto},
	}
}

// Observation is the raw output of one recognizer invocation.
type Observation struct {
	Text string

	// TokenConfidences holds per-word recognizer confidences on a 0-100
	// scale. May be empty when the recognizer cannot report them.
	TokenConfidences []float64
}

// Recognizer abstracts the OCR engine so tests can supply a mock. The
// production implementation binds Tesseract via gosseract.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte, cfg Config) (Observation, error)
}
