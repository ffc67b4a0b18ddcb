// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nutriscan/internal/analysis"
	"github.com/pdiddy/nutriscan/internal/history"
	"github.com/pdiddy/nutriscan/internal/ocr"
	"github.com/pdiddy/nutriscan/internal/secrets"
	"github.com/pdiddy/nutriscan/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [image]",
	Short: "Analyze a photographed food label",
	Long: `Analyze runs the full pipeline on a label photograph: preprocessing and
OCR across multiple image variants, nutrition parsing, chemical additive
detection, scoring, and qualitative guidance. The health profile flags
personalize allergen and condition warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	img, err := imaging.Open(args[0], imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("opening image %s: %w", args[0], err)
	}

	cfg := pipelineConfigFromFlags(cmd)
	rec := &ocr.TesseractRecognizer{Language: cfg.OCR.Language}
	llm := analysis.NewAnthropicClient(cfg.AI)
	svc := analysis.NewService(rec, llm, cfg, os.Stderr)

	result, err := svc.AnalyzeImage(context.Background(), img, profileFromFlags(cmd))
	if err != nil {
		return err
	}

	if err := maybeSave(cmd, cfg, result); err != nil {
		return err
	}
	return formatResult(cmd, result)
}

func init() {
	addPipelineFlags(analyzeCmd)
	addProfileFlags(analyzeCmd)
	addOutputFlags(analyzeCmd)

	analyzeCmd.Flags().String("language", "eng", "Tesseract language code")
	analyzeCmd.Flags().Int("workers", 4, "concurrent OCR trials")

	rootCmd.AddCommand(analyzeCmd)
}

// --- shared flag wiring ---

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", "claude-sonnet-4-5-20250929", "AI model identifier for qualitative guidance")
	cmd.Flags().Bool("no-ai", false, "skip model enrichment, use rule-based guidance only")
	cmd.Flags().Duration("ai-timeout", 30*time.Second, "timeout for one enrichment call")
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("allergies", nil, "consumer allergies (e.g. peanuts,milk)")
	cmd.Flags().StringSlice("conditions", nil, "health conditions (e.g. diabetes,hypertension)")
	cmd.Flags().StringSlice("restrictions", nil, "dietary restrictions (e.g. vegan,gluten-free)")
	cmd.Flags().String("age-group", "", "age group: child, teen, adult, senior")
	cmd.Flags().String("activity", "", "activity level: sedentary, light, moderate, active, very_active")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output the full result as JSON")
	cmd.Flags().Bool("save", false, "save the result to the local analysis history")
	cmd.Flags().String("data-dir", "data", "directory for the analysis history database")
}

func pipelineConfigFromFlags(cmd *cobra.Command) types.PipelineConfig {
	language, _ := cmd.Flags().GetString("language")
	workers, _ := cmd.Flags().GetInt("workers")
	model, _ := cmd.Flags().GetString("model")
	noAI, _ := cmd.Flags().GetBool("no-ai")
	aiTimeout, _ := cmd.Flags().GetDuration("ai-timeout")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	apiKey := secretDefault(secrets.AnthropicAPIKey, viper.GetString("ai.api_key"))

	return types.PipelineConfig{
		OCR: types.OCRConfig{
			Language: language,
			Workers:  workers,
		},
		AI: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			Timeout:    aiTimeout,
			MaxRetries: viper.GetInt("ai.max_retries"),
			Enabled:    !noAI && apiKey != "",
		},
		Scoring: types.ScoringConfig{
			SodiumLimitMg:      viper.GetFloat64("scoring.sodium_limit_mg"),
			SugarLimitG:        viper.GetFloat64("scoring.sugar_limit_g"),
			SaturatedFatLimitG: viper.GetFloat64("scoring.saturated_fat_limit_g"),
			FiberBonusG:        viper.GetFloat64("scoring.fiber_bonus_g"),
			ProteinBonusG:      viper.GetFloat64("scoring.protein_bonus_g"),
		},
		History: types.HistoryConfig{
			DataDir:    dataDir,
			MaxResults: viper.GetInt("history.max_results"),
		},
	}
}

func profileFromFlags(cmd *cobra.Command) *types.HealthProfile {
	allergies, _ := cmd.Flags().GetStringSlice("allergies")
	conditions, _ := cmd.Flags().GetStringSlice("conditions")
	restrictions, _ := cmd.Flags().GetStringSlice("restrictions")
	ageGroup, _ := cmd.Flags().GetString("age-group")
	activity, _ := cmd.Flags().GetString("activity")

	if len(allergies) == 0 && len(conditions) == 0 && len(restrictions) == 0 &&
		ageGroup == "" && activity == "" {
		return nil
	}

	return &types.HealthProfile{
		Allergies:           allergies,
		HealthConditions:    conditions,
		DietaryRestrictions: restrictions,
		AgeGroup:            types.AgeGroup(ageGroup),
		ActivityLevel:       types.ActivityLevel(activity),
	}
}

func maybeSave(cmd *cobra.Command, cfg types.PipelineConfig, result types.AnalysisResult) error {
	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(context.Background(), result); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved analysis %s\n", result.SessionID)
	return nil
}

// --- result rendering ---

func formatResult(cmd *cobra.Command, result types.AnalysisResult) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Recommendation: %s\n", strings.ToUpper(string(result.Recommendation)))
	fmt.Printf("Health score:   %.1f/10    NOVI: %.0f/100    Safety: %.1f/10\n",
		result.HealthScore, result.NoviScore, result.SafetyScore)
	fmt.Printf("Overall risk:   %s    Confidence: %.2f\n",
		result.OverallRiskLevel, result.ConfidenceScore)

	if result.Nutrition != nil {
		fmt.Printf("\nNutrition (%d fields parsed):\n", result.Nutrition.FieldCount())
		printNutrient("Calories", result.Nutrition.Calories, "")
		printNutrient("Total fat", result.Nutrition.TotalFat, "g")
		printNutrient("Saturated fat", result.Nutrition.SaturatedFat, "g")
		printNutrient("Trans fat", result.Nutrition.TransFat, "g")
		printNutrient("Cholesterol", result.Nutrition.Cholesterol, "mg")
		printNutrient("Sodium", result.Nutrition.Sodium, "mg")
		printNutrient("Carbohydrates", result.Nutrition.TotalCarbohydrates, "g")
		printNutrient("Dietary fiber", result.Nutrition.DietaryFiber, "g")
		printNutrient("Total sugars", result.Nutrition.TotalSugars, "g")
		printNutrient("Added sugars", result.Nutrition.AddedSugars, "g")
		printNutrient("Protein", result.Nutrition.Protein, "g")
		for _, w := range result.Nutrition.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	if len(result.Chemicals) > 0 {
		fmt.Printf("\nDetected additives (%d):\n", len(result.Chemicals))
		for _, c := range result.Chemicals {
			fmt.Printf("  %-28s  %-18s  %s\n", c.Name, c.Category, c.RiskLevel)
		}
	}
	for _, advice := range result.ChemicalAdvice {
		fmt.Printf("  - %s\n", advice)
	}

	for _, w := range result.AllergenWarnings {
		fmt.Printf("\nALLERGEN: %s\n", w)
	}
	for _, w := range result.HealthConditionWarnings {
		fmt.Printf("CONDITION: %s\n", w)
	}

	fmt.Println("\nGuidance:")
	for _, b := range result.Qualitative.Benefits {
		fmt.Printf("  + %s\n", b)
	}
	for _, r := range result.Qualitative.Risks {
		fmt.Printf("  - %s\n", r)
	}
	for _, t := range result.Qualitative.Tips {
		fmt.Printf("  * %s\n", t)
	}
	fmt.Printf("  Portion: %s    Frequency: %s\n",
		result.Qualitative.PortionSize, result.Qualitative.Frequency)

	fmt.Printf("\nSession %s completed in %d ms (engine %s)\n",
		result.SessionID, result.ProcessingTimeMs, result.EngineVersion)
	return nil
}

func printNutrient(label string, v *float64, unit string) {
	if v == nil {
		return
	}
	fmt.Printf("  %-16s %.1f%s\n", label, *v, unit)
}
