package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that call external services.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nutriscan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OCRConfig holds settings for the text extraction stage.
type OCRConfig struct {
	// Language is the Tesseract language code (default "eng").
	Language string `json:"language" yaml:"language"`

	// Workers bounds how many variant/configuration trials run
	// concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// MinTextLength is the minimum cleaned-text length for a trial to
	// count as non-empty (default 1).
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`
}

// AIConfig holds shared settings for the language-model enrichment step.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds one enrichment call; on expiry the analysis falls
	// back to rule-based guidance (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retry attempts on rate limiting (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Enabled resolves availability once at construction; when false the
	// enrichment step is skipped without probing the service.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// ScoringConfig holds the heuristic thresholds for the scoring engine.
// These are configurable policy, not clinical guidance; defaults mirror the
// declared decision boundaries.
type ScoringConfig struct {
	// SodiumLimitMg penalizes the nutrition score above this sodium level
	// (default 600).
	SodiumLimitMg float64 `json:"sodium_limit_mg" yaml:"sodium_limit_mg"`

	// SugarLimitG penalizes the nutrition score above this total sugar
	// level (default 15).
	SugarLimitG float64 `json:"sugar_limit_g" yaml:"sugar_limit_g"`

	// SaturatedFatLimitG penalizes the nutrition score above this
	// saturated fat level (default 5).
	SaturatedFatLimitG float64 `json:"saturated_fat_limit_g" yaml:"saturated_fat_limit_g"`

	// FiberBonusG rewards fiber above this level (default 3).
	FiberBonusG float64 `json:"fiber_bonus_g" yaml:"fiber_bonus_g"`

	// ProteinBonusG rewards protein above this level (default 10).
	ProteinBonusG float64 `json:"protein_bonus_g" yaml:"protein_bonus_g"`
}

// WithDefaults fills zero-valued thresholds with the standard policy.
func (c ScoringConfig) WithDefaults() ScoringConfig {
	if c.SodiumLimitMg <= 0 {
		c.SodiumLimitMg = 600
	}
	if c.SugarLimitG <= 0 {
		c.SugarLimitG = 15
	}
	if c.SaturatedFatLimitG <= 0 {
		c.SaturatedFatLimitG = 5
	}
	if c.FiberBonusG <= 0 {
		c.FiberBonusG = 3
	}
	if c.ProteinBonusG <= 0 {
		c.ProteinBonusG = 10
	}
	return c
}

// HistoryConfig holds settings for the analysis history store.
type HistoryConfig struct {
	// DataDir is the directory holding the SQLite database and exports.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of listed analyses (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ProductConfig holds settings for the product lookup stage.
type ProductConfig struct {
	HTTPConfig `yaml:",inline"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	OCR     OCRConfig     `json:"ocr" yaml:"ocr"`
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	History HistoryConfig `json:"history" yaml:"history"`
	Product ProductConfig `json:"product" yaml:"product"`
}
