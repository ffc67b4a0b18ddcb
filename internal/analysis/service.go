// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/nutriscan/internal/chemical"
	"github.com/pdiddy/nutriscan/internal/nutrition"
	"github.com/pdiddy/nutriscan/internal/ocr"
	"github.com/pdiddy/nutriscan/pkg/types"
)

// EngineVersion is stamped into every AnalysisResult.
const EngineVersion = "0.1.0"

// Service composes the four pipeline stages behind the two public entry
// points. One Service may serve many requests; it holds no per-request
// state.
type Service struct {
	engine   *ocr.Engine
	parser   *nutrition.Parser
	detector *chemical.Detector
	scorer   *Scorer
	enricher *Enricher
	log      io.Writer
}

// NewService wires the pipeline. rec may be nil when only AnalyzeText is
// used; llm may be nil to disable enrichment. Progress lines go to w
// (io.Discard when nil).
func NewService(rec ocr.Recognizer, llm LLMClient, cfg types.PipelineConfig, w io.Writer) *Service {
	if w == nil {
		w = io.Discard
	}
	var engine *ocr.Engine
	if rec != nil {
		engine = ocr.NewEngine(rec, cfg.OCR)
	}
	return &Service{
		engine:   engine,
		parser:   nutrition.NewParser(),
		detector: chemical.NewDetector(),
		scorer:   NewScorer(cfg.Scoring),
		enricher: NewEnricher(llm, cfg.AI.Timeout),
		log:      w,
	}
}

// AnalyzeImage extracts text from a label photograph and analyzes it. The
// only fatal failure is extraction yielding nothing usable; every later
// stage degrades into a lower-confidence result instead of erroring.
func (s *Service) AnalyzeImage(ctx context.Context, img image.Image, profile *types.HealthProfile) (types.AnalysisResult, error) {
	if s.engine == nil {
		return types.AnalysisResult{}, fmt.Errorf("no recognizer configured")
	}

	extraction, err := s.engine.Extract(ctx, img)
	if err != nil {
		return types.AnalysisResult{}, err
	}
	fmt.Fprintf(s.log, "extracted %d chars via %s (confidence %.2f)\n",
		len(extraction.Text), extraction.MethodUsed, extraction.Confidence)

	result, err := s.AnalyzeText(ctx, extraction.Text, profile)
	if err != nil {
		return types.AnalysisResult{}, err
	}
	result.OCRConfidence = extraction.Confidence
	return result, nil
}

// AnalyzeText runs parsing, detection, scoring, and enrichment over
// already-extracted text. It always returns a complete result, even for
// empty or garbage input; degradation shows up as low confidence, never as
// a partial result.
func (s *Service) AnalyzeText(ctx context.Context, text string, profile *types.HealthProfile) (types.AnalysisResult, error) {
	start := time.Now()

	// Parsing and detection read the same immutable text and share no
	// state, so they run concurrently.
	var (
		record    *types.NutritionRecord
		chemicals []types.ChemicalInfo
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		record = s.parser.Parse(text)
	}()
	go func() {
		defer wg.Done()
		chemicals = s.detector.Detect(text)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return types.AnalysisResult{}, err
	}

	fmt.Fprintf(s.log, "parsed %d nutrition fields, detected %d chemicals\n",
		record.FieldCount(), len(chemicals))

	risk := OverallRisk(chemicals)
	healthScore := s.scorer.NutritionScore(record)

	qualitative, enriched := s.enricher.Enrich(ctx, text, record, chemicals, profile, risk)
	if !enriched {
		fmt.Fprintln(s.log, "enrichment unavailable, using rule-based guidance")
	}

	return types.AnalysisResult{
		SessionID:               uuid.NewString(),
		Timestamp:               time.Now().UTC(),
		ExtractedText:           text,
		Nutrition:               record,
		Chemicals:               chemicals,
		RiskSummary:             RiskSummary(chemicals),
		OverallRiskLevel:        risk,
		SafetyScore:             SafetyScore(chemicals),
		ChemicalAdvice:          ChemicalAdvice(chemicals),
		HealthScore:             healthScore,
		NoviScore:               s.scorer.NoviScore(record, risk),
		Recommendation:          s.scorer.Recommendation(healthScore, risk),
		AllergenWarnings:        AllergenWarnings(text, profile),
		HealthConditionWarnings: s.scorer.ConditionWarnings(record, profile),
		Qualitative:             qualitative,
		ConfidenceScore:         Confidence(text, record, chemicals),
		ProcessingTimeMs:        time.Since(start).Milliseconds(),
		EngineVersion:           EngineVersion,
	}, nil
}
