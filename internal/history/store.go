// ============================================================================
// pcomb - Parser-Combinator Engine
// ============================================================================
//
// Package:     history
// Description: SQLite store for parse runs: what was parsed, how it ended
//              and the resulting AST as JSON
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
	"github.com/msto63/pcomb/foundation/combinator/parser"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
)

// Run is one recorded parse
type Run struct {
	ID             string            `json:"id" yaml:"id"`
	Timestamp      time.Time         `json:"timestamp" yaml:"timestamp"`
	Source         string            `json:"source" yaml:"source"`
	Grammar        string            `json:"grammar" yaml:"grammar"`
	GrammarVersion string            `json:"grammar_version" yaml:"grammar_version"`
	Status         string            `json:"status" yaml:"status"`
	InputLength    int               `json:"input_length" yaml:"input_length"`
	MatchedLength  int               `json:"matched_length" yaml:"matched_length"`
	RestLength     int               `json:"rest_length" yaml:"rest_length"`
	ErrorCode      string            `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Error          string            `json:"error,omitempty" yaml:"error,omitempty"`
	Steps          int               `json:"steps" yaml:"steps"`
	DurationMs     float64           `json:"duration_ms" yaml:"duration_ms"`
	Fragments      []mdwast.Fragment `json:"fragments,omitempty" yaml:"fragments,omitempty"`
}

// NewRun creates a run record from a parse result
func NewRun(source, grammar, grammarVersion string, inputLength int, result parser.Result) *Run {
	run := &Run{
		ID:             uuid.New().String(),
		Timestamp:      time.Now(),
		Source:         source,
		Grammar:        grammar,
		GrammarVersion: grammarVersion,
		Status:         result.Status.String(),
		InputLength:    inputLength,
	}
	if result.IsSuccess() {
		run.MatchedLength = len(result.Matched)
		run.RestLength = len(result.Rest)
		run.Fragments = result.Results
	} else {
		run.ErrorCode = string(result.Code)
		run.Error = result.Error
	}
	return run
}

// Filter restricts List
type Filter struct {
	Source string
	Status string
	Since  time.Time
	Limit  int
}

// Config holds configuration for the store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{Path: "./data/history.db"}
}

// Store persists parse runs in SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the history database
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, storageError(err, "failed to create directory", "history.Open")
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError(err, "failed to open database", "history.Open")
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "history.Open")
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		grammar TEXT NOT NULL,
		grammar_version TEXT NOT NULL,
		status TEXT NOT NULL,
		input_length INTEGER NOT NULL,
		matched_length INTEGER NOT NULL,
		rest_length INTEGER NOT NULL,
		error_code TEXT,
		error TEXT,
		steps INTEGER NOT NULL,
		duration_ms REAL NOT NULL,
		ast TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

func storageError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithOperation(operation)
}

// Save records a run
func (s *Store) Save(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}

	var astJSON []byte
	if run.Fragments != nil {
		var err error
		if astJSON, err = mdwast.ToJSON(run.Fragments); err != nil {
			return storageError(err, "failed to encode AST", "history.Save")
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, timestamp, source, grammar, grammar_version, status,
			input_length, matched_length, rest_length, error_code, error, steps, duration_ms, ast)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Timestamp.UTC(), run.Source, run.Grammar, run.GrammarVersion, run.Status,
		run.InputLength, run.MatchedLength, run.RestLength, nullable(run.ErrorCode), nullable(run.Error),
		run.Steps, run.DurationMs, nullableBytes(astJSON))
	if err != nil {
		return storageError(err, "failed to insert run", "history.Save")
	}
	return nil
}

// List returns runs, newest first, without their AST
func (s *Store) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, source, grammar, grammar_version, status, input_length,
		matched_length, rest_length, error_code, error, steps, duration_ms FROM runs WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query runs", "history.List")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, storageError(err, "failed to scan run", "history.List")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read runs", "history.List")
	}
	return runs, nil
}

// Get returns one run with its AST. id may be a unique prefix.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, timestamp, source, grammar, grammar_version, status,
		input_length, matched_length, rest_length, error_code, error, steps, duration_ms, ast
		FROM runs WHERE id LIKE ? ORDER BY timestamp DESC LIMIT 2`, id+"%")
	if err != nil {
		return nil, storageError(err, "failed to query run", "history.Get")
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows, true)
		if err != nil {
			return nil, storageError(err, "failed to scan run", "history.Get")
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read run", "history.Get")
	}

	switch len(found) {
	case 0:
		return nil, mdwerror.Newf("run %q not found", id).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("history.Get")
	case 1:
		return found[0], nil
	default:
		return nil, mdwerror.Newf("run id prefix %q is ambiguous", id).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("history.Get")
	}
}

// Prune removes runs older than the specified duration
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, storageError(err, "failed to prune runs", "history.Prune")
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner, withAST bool) (*Run, error) {
	var (
		run       Run
		errorCode sql.NullString
		errorMsg  sql.NullString
		astJSON   sql.NullString
	)
	dest := []interface{}{&run.ID, &run.Timestamp, &run.Source, &run.Grammar, &run.GrammarVersion,
		&run.Status, &run.InputLength, &run.MatchedLength, &run.RestLength, &errorCode, &errorMsg,
		&run.Steps, &run.DurationMs}
	if withAST {
		dest = append(dest, &astJSON)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	run.ErrorCode = errorCode.String
	run.Error = errorMsg.String
	if astJSON.Valid && astJSON.String != "" {
		fragments, err := mdwast.FromJSON([]byte(astJSON.String))
		if err != nil {
			return nil, errors.Join(errors.New("corrupt AST column"), err)
		}
		run.Fragments = fragments
	}
	return &run, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
