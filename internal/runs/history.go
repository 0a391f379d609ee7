package runs

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"glottisdale/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the history database was written by another
// schema version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Record is one completed run.
type Record struct {
	ID                string
	Name              string
	Dir               string
	Seed              int64
	Sources           []string
	SelectedSyllables int
	TotalSyllables    int
	Duration          float64
	CreatedAt         time.Time
}

// History persists run records in SQLite.
type History struct {
	db   *sql.DB
	path string
}

// OpenHistory opens or creates the history database at path.
func OpenHistory(ctx context.Context, path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	h := &History{db: db, path: path}
	if err := h.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

// Path returns the database location.
func (h *History) Path() string { return h.path }

// Close closes the database.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

func (h *History) initSchema(ctx context.Context) error {
	var tableExists int
	err := h.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := h.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := h.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has v%d, expected v%d; remove %s to reset history",
			ErrSchemaMismatch, version, schemaVersion, h.path)
	}
	return nil
}

// Add stores rec. A missing ID is filled with a new UUID and a zero
// CreatedAt with the current time.
func (h *History) Add(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	sources, err := json.Marshal(rec.Sources)
	if err != nil {
		return Record{}, fmt.Errorf("marshal sources: %w", err)
	}
	_, err = h.db.ExecContext(ctx,
		`INSERT INTO runs (
            id, name, dir, seed, sources_json, selected_syllables,
            total_syllables, duration_seconds, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Name,
		rec.Dir,
		rec.Seed,
		string(sources),
		rec.SelectedSyllables,
		rec.TotalSyllables,
		rec.Duration,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

const recordColumns = "id, name, dir, seed, sources_json, selected_syllables, total_syllables, duration_seconds, created_at"

// List returns up to limit records, newest first. A limit of 0 returns all.
func (h *History) List(ctx context.Context, limit int) ([]Record, error) {
	query := "SELECT " + recordColumns + " FROM runs ORDER BY created_at DESC, name DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns the record for a run name.
func (h *History) Get(ctx context.Context, name string) (Record, error) {
	row := h.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM runs WHERE name = ?", name)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, services.Wrap(services.ErrNotFound, "runs", "show", fmt.Sprintf("no run named %q", name), nil)
	}
	return rec, err
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		rec        Record
		sourcesRaw string
		createdRaw string
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Dir,
		&rec.Seed,
		&sourcesRaw,
		&rec.SelectedSyllables,
		&rec.TotalSyllables,
		&rec.Duration,
		&createdRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(sourcesRaw), &rec.Sources); err != nil {
		return Record{}, fmt.Errorf("decode sources for %s: %w", rec.Name, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		rec.CreatedAt = ts
	}
	return rec, nil
}
