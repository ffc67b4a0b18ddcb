// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nutriscan/internal/history"
	"github.com/pdiddy/nutriscan/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local analysis history (list, show, export)",
	Long: `History manages the local SQLite database of saved analyses. Use
subcommands to list recent scans, show one in full, or export everything.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListRecent(context.Background(), historyOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No saved analyses.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %-6s  %-6s  %-8s  %s\n",
		"Session", "When", "Rec", "Health", "NOVI", "Risk", "Chemicals")
	fmt.Println(strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Printf("%-36s  %-20s  %-8s  %-6.1f  %-6.0f  %-8s  %d\n",
			e.SessionID, e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Recommendation, e.HealthScore, e.NoviScore, e.OverallRisk, e.ChemicalCount)
	}
	fmt.Printf("\n%d analyses\n", len(entries))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show one saved analysis in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the analysis history to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := historyConfig(cmd)
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := historyOptsFromFlags(cmd)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", cfg.DataDir)
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", cfg.DataDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = "data"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("history.max_results")
	}
	return types.HistoryConfig{DataDir: dataDir, MaxResults: maxResults}
}

func historyOptsFromFlags(cmd *cobra.Command) history.QueryOptions {
	recommendation, _ := cmd.Flags().GetString("recommendation")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.QueryOptions{
		Recommendation: types.RecommendationType(recommendation),
		MaxResults:     limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("data-dir", "data", "directory for the analysis history database")
	historyCmd.PersistentFlags().Int("max-results", 20, "maximum number of listed analyses")

	historyListCmd.Flags().String("recommendation", "", "filter by recommendation: consume, limit, avoid")
	historyListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("recommendation", "", "filter by recommendation for partial export")
	historyExportCmd.Flags().Int("limit", 0, "maximum analyses to export (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
