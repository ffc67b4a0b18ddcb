// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nutriscan/internal/chemical"
)

var chemicalsCmd = &cobra.Command{
	Use:   "chemicals [id]",
	Short: "Browse the chemical additive knowledge base",
	Long: `Chemicals lists the additives the detector knows about, with category
and risk level. Pass an ID (e.g. sodium_benzoate) for the full entry
including health effects and safer alternatives.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChemicals,
}

func runChemicals(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return printChemicalDetail(args[0])
	}

	entries := chemical.All()
	ids := make([]chemical.ID, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		out := make(map[string]any, len(ids))
		for _, id := range ids {
			if info, ok := chemical.Info(id); ok {
				out[string(id)] = info
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%-26s  %-28s  %-18s  %s\n", "ID", "Name", "Category", "Risk")
	fmt.Println(strings.Repeat("-", 86))
	for _, id := range ids {
		rec := entries[id]
		fmt.Printf("%-26s  %-28s  %-18s  %s\n", id, rec.Name, rec.Category, rec.Risk)
	}
	fmt.Printf("\n%d additives\n", len(ids))
	return nil
}

func printChemicalDetail(arg string) error {
	id := chemical.ID(strings.ToLower(strings.TrimSpace(arg)))
	rec, ok := chemical.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown chemical %q: run without arguments to list IDs", arg)
	}

	fmt.Printf("%s (%s)\n", rec.Name, id)
	fmt.Printf("Category: %s    Risk: %s\n", rec.Category, rec.Risk)
	if rec.Description != "" {
		fmt.Printf("\n%s\n", rec.Description)
	}
	if len(rec.HealthEffects) > 0 {
		fmt.Println("\nHealth effects:")
		for _, e := range rec.HealthEffects {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(rec.Alternatives) > 0 {
		fmt.Println("\nSafer alternatives:")
		for _, a := range rec.Alternatives {
			fmt.Printf("  - %s\n", a)
		}
	}
	if len(rec.Aliases) > 0 {
		fmt.Printf("\nAlso appears as: %s\n", strings.Join(rec.Aliases, ", "))
	}
	return nil
}

func init() {
	chemicalsCmd.Flags().Bool("json", false, "output the knowledge base as JSON")

	rootCmd.AddCommand(chemicalsCmd)
}
