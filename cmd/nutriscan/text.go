// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nutriscan/internal/analysis"
	"github.com/pdiddy/nutriscan/internal/ocr"
)

var textCmd = &cobra.Command{
	Use:   "text [label text]",
	Short: "Analyze already-extracted label text",
	Long: `Text runs the analysis pipeline on label text that has already been
extracted, skipping preprocessing and OCR. Pass the text as arguments or
pipe it on stdin with "-". Use --validate to print an assessment of
whether the text looks like a nutrition label before analysis.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runText,
}

func runText(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	text = ocr.Clean(text)

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		printValidation(ocr.Validate(text))
	}

	cfg := pipelineConfigFromFlags(cmd)
	llm := analysis.NewAnthropicClient(cfg.AI)
	svc := analysis.NewService(nil, llm, cfg, os.Stderr)

	result, err := svc.AnalyzeText(context.Background(), text, profileFromFlags(cmd))
	if err != nil {
		return err
	}

	if err := maybeSave(cmd, cfg, result); err != nil {
		return err
	}
	return formatResult(cmd, result)
}

func printValidation(report ocr.ValidationReport) {
	status := "does not look like"
	if report.Valid {
		status = "looks like"
	}
	fmt.Fprintf(os.Stderr, "Input %s a nutrition label (confidence %.2f)\n", status, report.Confidence)
	for _, issue := range report.Issues {
		fmt.Fprintf(os.Stderr, "  issue: %s\n", issue)
	}
	for _, s := range report.Suggestions {
		fmt.Fprintf(os.Stderr, "  suggestion: %s\n", s)
	}
}

func init() {
	addPipelineFlags(textCmd)
	addProfileFlags(textCmd)
	addOutputFlags(textCmd)

	textCmd.Flags().Bool("validate", false, "report whether the input looks like a nutrition label")

	rootCmd.AddCommand(textCmd)
}
