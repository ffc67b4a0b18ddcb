// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nutriscan/internal/analysis"
	"github.com/pdiddy/nutriscan/internal/product"
	"github.com/pdiddy/nutriscan/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [barcode]",
	Short: "Look up a product by barcode in Open Food Facts",
	Long: `Lookup fetches a packaged product from the Open Food Facts database by
its barcode. With --analyze the product's ingredient text is fed through
the analysis pipeline, which is useful when no usable label photograph
is available.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	client := product.NewClient(types.ProductConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout},
	})

	p, err := client.Lookup(context.Background(), args[0])
	if err != nil {
		return err
	}

	if analyze, _ := cmd.Flags().GetBool("analyze"); analyze {
		cfg := pipelineConfigFromFlags(cmd)
		llm := analysis.NewAnthropicClient(cfg.AI)
		svc := analysis.NewService(nil, llm, cfg, os.Stderr)

		result, err := svc.AnalyzeText(context.Background(), p.AnalysisText(), profileFromFlags(cmd))
		if err != nil {
			return err
		}
		if err := maybeSave(cmd, cfg, result); err != nil {
			return err
		}
		return formatResult(cmd, result)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Printf("%s", p.Name)
	if p.Brands != "" {
		fmt.Printf(" (%s)", p.Brands)
	}
	fmt.Printf("  [%s]\n", p.Barcode)
	if p.NutriScore != "" {
		fmt.Printf("Nutri-Score: %s\n", strings.ToUpper(p.NutriScore))
	}
	if p.IngredientText != "" {
		fmt.Printf("\nIngredients: %s\n", p.IngredientText)
	}
	if len(p.Allergens) > 0 {
		fmt.Printf("\nAllergens: %s\n", strings.Join(p.Allergens, ", "))
	}
	return nil
}

func init() {
	addPipelineFlags(lookupCmd)
	addProfileFlags(lookupCmd)
	addOutputFlags(lookupCmd)

	lookupCmd.Flags().Duration("timeout", 15*time.Second, "HTTP timeout for the lookup")
	lookupCmd.Flags().Bool("analyze", false, "run the analysis pipeline on the product's ingredient text")

	rootCmd.AddCommand(lookupCmd)
}
