package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"lyrasync/internal/config"
	"lyrasync/internal/logging"
	"lyrasync/internal/timing"
)

//go:embed schema.sql
var schemaSQL string

// savedAtLayout is RFC 3339 with fixed-width nanoseconds so the TEXT column
// sorts chronologically.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Track is one cached timeline.
type Track struct {
	TrackID string
	Title   string
	Lines   []timing.LineTiming
	SavedAt time.Time
}

// Store manages timeline persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the timeline database in the cache
// directory and ensures the schema exists.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "timelines.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   dbPath,
		lock:   flock.New(filepath.Join(cfg.Paths.CacheDir, "timelines.lock")),
		logger: logging.NewComponentLogger(logger, "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts a timeline by track ID. Saving the same track again replaces
// the previous timeline and refreshes its save time.
func (s *Store) Save(ctx context.Context, trackID, title string, lines []timing.LineTiming) error {
	trackID = strings.TrimSpace(trackID)
	if trackID == "" {
		return errors.New("track ID cannot be empty")
	}

	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO timelines (track_id, title, lines_json, saved_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(track_id) DO UPDATE SET
             title = excluded.title,
             lines_json = excluded.lines_json,
             saved_at = excluded.saved_at`,
		trackID,
		nullableString(title),
		string(linesJSON),
		time.Now().UTC().Format(savedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("save timeline: %w", err)
	}

	s.logger.Debug("saved timeline",
		logging.String(logging.FieldTrackID, trackID),
		logging.Int("line_count", len(lines)))
	return nil
}

// Lookup fetches a cached timeline by track ID. Returns nil when absent.
func (s *Store) Lookup(ctx context.Context, trackID string) (*Track, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT track_id, title, lines_json, saved_at FROM timelines WHERE track_id = ?`,
		strings.TrimSpace(trackID),
	)
	track, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup timeline: %w", err)
	}
	return track, nil
}

// Invalidate deletes a cached timeline. Reports whether one was removed.
func (s *Store) Invalidate(ctx context.Context, trackID string) (bool, error) {
	unlock, err := s.acquireMaintenanceLock()
	if err != nil {
		return false, err
	}
	defer unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM timelines WHERE track_id = ?`, strings.TrimSpace(trackID))
	if err != nil {
		return false, fmt.Errorf("invalidate timeline: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Prune keeps the max most recently saved tracks and removes the rest.
// Returns the number of removed tracks.
func (s *Store) Prune(ctx context.Context, max int) (int64, error) {
	if max < 0 {
		max = 0
	}
	unlock, err := s.acquireMaintenanceLock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM timelines WHERE track_id NOT IN (
             SELECT track_id FROM timelines ORDER BY saved_at DESC, rowid DESC LIMIT ?
         )`,
		max,
	)
	if err != nil {
		return 0, fmt.Errorf("prune timelines: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if removed > 0 {
		s.logger.Debug("pruned timelines", logging.Int("removed", int(removed)), logging.Int("kept_max", max))
	}
	return removed, nil
}

// List returns all cached tracks, newest first.
func (s *Store) List(ctx context.Context) ([]*Track, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT track_id, title, lines_json, saved_at FROM timelines ORDER BY saved_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list timelines: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// Count returns the number of cached tracks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM timelines`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count timelines: %w", err)
	}
	return count, nil
}

// acquireMaintenanceLock serializes destructive operations across processes
// sharing the cache directory.
func (s *Store) acquireMaintenanceLock() (func(), error) {
	locked, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire maintenance lock: %w", err)
	}
	if !locked {
		return nil, errors.New("cache is busy: another maintenance operation is running")
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func scanTrack(scanner interface{ Scan(dest ...any) error }) (*Track, error) {
	var (
		trackID  string
		title    sql.NullString
		linesRaw string
		savedRaw string
	)
	if err := scanner.Scan(&trackID, &title, &linesRaw, &savedRaw); err != nil {
		return nil, err
	}

	track := &Track{TrackID: trackID, Title: title.String}
	if err := json.Unmarshal([]byte(linesRaw), &track.Lines); err != nil {
		return nil, fmt.Errorf("parse timeline %s: %w", trackID, err)
	}
	if saved, err := time.Parse(time.RFC3339Nano, savedRaw); err == nil {
		track.SavedAt = saved
	}
	return track, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
