// Package journal persists a SQLite record of every run, disc, and track
// decision so past classifications stay auditable, dry runs included.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes; an old journal is
// reported rather than silently migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the journal was written by an incompatible version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create journal schema: %w", err)
	}
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: journal has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Run is one journaled invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Finished   bool
	DryRun     bool
	DiscCount  int
	TrackCount int
}

// DiscRecord describes one processed disc.
type DiscRecord struct {
	SourceDir     string
	Display       string
	Category      string
	Series        string
	Season        int
	HasSeason     bool
	DiscNumber    int
	HasDiscNumber bool
	SizeFallback  bool
	TrackFallback bool
}

// DecisionRecord describes one track decision within a disc.
type DecisionRecord struct {
	Position   int
	SourcePath string
	DestPath   string
	Kind       string
	Episode    int
	EpisodeEnd int
	Ordinal    int
	Moved      bool
	Error      string
}

// BeginRun inserts a new run row and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, dryRun bool) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, dry_run) VALUES (?, ?, ?)`,
		id, now, boolInt(dryRun),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's end time and totals.
func (s *Store) FinishRun(ctx context.Context, runID string, discCount, trackCount int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, disc_count = ?, track_count = ? WHERE id = ?`,
		now, discCount, trackCount, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordDisc stores one disc and its decisions in a single transaction.
func (s *Store) RecordDisc(ctx context.Context, runID string, disc DiscRecord, decisions []DecisionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin disc tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO discs (
            run_id, source_dir, display, category, series, season,
            disc_number, size_fallback, track_fallback, processed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		disc.SourceDir,
		disc.Display,
		disc.Category,
		nullableString(disc.Series),
		nullableInt(disc.Season, disc.HasSeason),
		nullableInt(disc.DiscNumber, disc.HasDiscNumber),
		boolInt(disc.SizeFallback),
		boolInt(disc.TrackFallback),
		now,
	)
	if err != nil {
		return fmt.Errorf("insert disc: %w", err)
	}
	discID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("disc insert id: %w", err)
	}

	for _, dec := range decisions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO decisions (
                disc_id, position, source_path, dest_path, kind,
                episode, episode_end, ordinal, moved, error
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			discID,
			dec.Position,
			dec.SourcePath,
			nullableString(dec.DestPath),
			dec.Kind,
			nullableInt(dec.Episode, dec.Episode > 0),
			nullableInt(dec.EpisodeEnd, dec.EpisodeEnd > 0),
			nullableInt(dec.Ordinal, dec.Ordinal > 0),
			boolInt(dec.Moved),
			nullableString(dec.Error),
		)
		if err != nil {
			return fmt.Errorf("insert decision: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit disc: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, dry_run, disc_count, track_count
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt sql.NullString
			dryRun     int
		)
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &dryRun, &run.DiscCount, &run.TrackCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		if finishedAt.Valid {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt.String)
			run.Finished = true
		}
		run.DryRun = dryRun != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DecisionsForRun returns every decision journaled for one run in disc
// and track order.
func (s *Store) DecisionsForRun(ctx context.Context, runID string) ([]DecisionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.position, d.source_path, d.dest_path, d.kind,
                d.episode, d.episode_end, d.ordinal, d.moved, d.error
         FROM decisions d
         JOIN discs ON discs.id = d.disc_id
         WHERE discs.run_id = ?
         ORDER BY discs.id, d.position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []DecisionRecord
	for rows.Next() {
		var (
			dec      DecisionRecord
			destPath sql.NullString
			episode  sql.NullInt64
			epEnd    sql.NullInt64
			ordinal  sql.NullInt64
			moved    int
			errText  sql.NullString
		)
		if err := rows.Scan(&dec.Position, &dec.SourcePath, &destPath, &dec.Kind,
			&episode, &epEnd, &ordinal, &moved, &errText); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		dec.DestPath = destPath.String
		dec.Episode = int(episode.Int64)
		dec.EpisodeEnd = int(epEnd.Int64)
		dec.Ordinal = int(ordinal.Int64)
		dec.Moved = moved != 0
		dec.Error = errText.String
		decisions = append(decisions, dec)
	}
	return decisions, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int, ok bool) any {
	if !ok {
		return nil
	}
	return n
}
