// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists analysis results in a local SQLite database so
// past scans can be listed, re-read, and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nutriscan/pkg/types"
)

const dbFile = "nutriscan.db"

// Store manages the analysis history SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the history database at dataDir/nutriscan.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dataDir: cfg.DataDir, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			session_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			recommendation TEXT,
			health_score REAL,
			novi_score REAL,
			safety_score REAL,
			overall_risk TEXT,
			confidence REAL,
			chemical_count INTEGER,
			result TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_recommendation ON analyses(recommendation)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts one analysis result. The full result is stored as JSON
// alongside the indexed summary columns.
func (s *Store) Save(ctx context.Context, result types.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses
			(session_id, created_at, recommendation, health_score, novi_score,
			 safety_score, overall_risk, confidence, chemical_count, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.SessionID,
		result.Timestamp.UTC().Format(time.RFC3339Nano),
		string(result.Recommendation),
		result.HealthScore,
		result.NoviScore,
		result.SafetyScore,
		string(result.OverallRiskLevel),
		result.ConfidenceScore,
		len(result.Chemicals),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting analysis %s: %w", result.SessionID, err)
	}
	return nil
}

// Entry is one stored analysis summary.
type Entry struct {
	SessionID      string
	CreatedAt      time.Time
	Recommendation types.RecommendationType
	HealthScore    float64
	NoviScore      float64
	SafetyScore    float64
	OverallRisk    types.RiskLevel
	Confidence     float64
	ChemicalCount  int
}

// QueryOptions filters history queries. Zero values mean no filter.
type QueryOptions struct {
	Recommendation types.RecommendationType
	MaxResults     int
}

// ListRecent returns stored analyses newest first, up to the configured
// maximum (overridable via opts.MaxResults).
func (s *Store) ListRecent(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT session_id, created_at, recommendation, health_score, novi_score,
			safety_score, overall_risk, confidence, chemical_count
		FROM analyses`
	args := []any{}
	if opts.Recommendation != "" {
		query += ` WHERE recommendation = ?`
		args = append(args, string(opts.Recommendation))
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt string
			rec, risk string
		)
		if err := rows.Scan(&e.SessionID, &createdAt, &rec, &e.HealthScore,
			&e.NoviScore, &e.SafetyScore, &risk, &e.Confidence, &e.ChemicalCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Recommendation = types.RecommendationType(rec)
		e.OverallRisk = types.RiskLevel(risk)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the full stored result for one session.
func (s *Store) Get(ctx context.Context, sessionID string) (*types.AnalysisResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT result FROM analyses WHERE session_id = ?`, sessionID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no analysis with session id %s", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying analysis: %w", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("parsing stored result: %w", err)
	}
	return &result, nil
}
