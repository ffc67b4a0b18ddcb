// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nutriscan/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(id string, rec types.RecommendationType, ts time.Time) types.AnalysisResult {
	return types.AnalysisResult{
		SessionID:        id,
		Timestamp:        ts,
		ExtractedText:    "Calories 250 Sodium 300mg",
		Chemicals:        []types.ChemicalInfo{{Name: "Red 40", RiskLevel: types.RiskMedium}},
		OverallRiskLevel: types.RiskMedium,
		SafetyScore:      7.0,
		HealthScore:      6.5,
		NoviScore:        45,
		Recommendation:   rec,
		ConfidenceScore:  0.8,
		EngineVersion:    "0.1.0",
	}
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleResult("session-1", types.RecommendLimit, time.Now().UTC())
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)

	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.ExtractedText, got.ExtractedText)
	assert.Equal(t, want.Recommendation, got.Recommendation)
	assert.Equal(t, want.HealthScore, got.HealthScore)
	require.Len(t, got.Chemicals, 1)
	assert.Equal(t, "Red 40", got.Chemicals[0].Name)
}

func TestGetUnknownSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analysis")
}

func TestSaveIsIdempotentPerSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleResult("session-1", types.RecommendConsume, time.Now().UTC())
	require.NoError(t, store.Save(ctx, first))

	updated := first
	updated.Recommendation = types.RecommendAvoid
	require.NoError(t, store.Save(ctx, updated))

	entries, err := store.ListRecent(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.RecommendAvoid, entries[0].Recommendation)
}

func TestListRecentOrderingAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := types.RecommendConsume
		if i%2 == 1 {
			rec = types.RecommendAvoid
		}
		result := sampleResult(fmt.Sprintf("session-%d", i), rec, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Save(ctx, result))
	}

	// Newest first.
	entries, err := store.ListRecent(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "session-4", entries[0].SessionID)
	assert.Equal(t, "session-0", entries[4].SessionID)

	// Recommendation filter.
	avoided, err := store.ListRecent(ctx, QueryOptions{Recommendation: types.RecommendAvoid})
	require.NoError(t, err)
	require.Len(t, avoided, 2)
	for _, e := range avoided {
		assert.Equal(t, types.RecommendAvoid, e.Recommendation)
	}

	// Limit.
	limited, err := store.ListRecent(ctx, QueryOptions{MaxResults: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListRecentDefaultLimit(t *testing.T) {
	store, err := NewStore(types.HistoryConfig{DataDir: t.TempDir(), MaxResults: 3})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		result := sampleResult(fmt.Sprintf("session-%d", i), types.RecommendConsume, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Save(ctx, result))
	}

	entries, err := store.ListRecent(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExport(t *testing.T) {
	dataDir := t.TempDir()
	store, err := NewStore(types.HistoryConfig{DataDir: dataDir})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleResult("session-1", types.RecommendLimit, time.Now().UTC())))
	require.NoError(t, store.Save(ctx, sampleResult("session-2", types.RecommendConsume, time.Now().UTC().Add(time.Minute))))

	require.NoError(t, store.ExportYAML(ctx, QueryOptions{}))
	require.NoError(t, store.ExportJSON(ctx, QueryOptions{}))

	yamlData, err := os.ReadFile(filepath.Join(dataDir, "export.yaml"))
	require.NoError(t, err)
	var fromYAML []types.AnalysisResult
	require.NoError(t, yaml.Unmarshal(yamlData, &fromYAML))
	assert.Len(t, fromYAML, 2)

	jsonData, err := os.ReadFile(filepath.Join(dataDir, "export.json"))
	require.NoError(t, err)
	var fromJSON []types.AnalysisResult
	require.NoError(t, json.Unmarshal(jsonData, &fromJSON))
	assert.Len(t, fromJSON, 2)
	assert.Equal(t, "session-2", fromJSON[0].SessionID)
}
