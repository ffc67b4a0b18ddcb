// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nutriscan/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the full stored history to dataDir/export.yaml. It
// supports the same filters as ListRecent.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, "export.yaml")
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the full stored history to dataDir/export.json. It
// supports the same filters as ListRecent.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, "export.json")
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportResults(ctx context.Context, opts QueryOptions) ([]types.AnalysisResult, error) {
	opts.MaxResults = exportLimit
	entries, err := s.ListRecent(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	results := make([]types.AnalysisResult, 0, len(entries))
	for _, e := range entries {
		result, err := s.Get(ctx, e.SessionID)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
