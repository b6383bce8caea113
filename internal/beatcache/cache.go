package beatcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cuemark/internal/beats"
)

// Store manages cached analysis results backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the cache database. The database file is
// guarded by a sibling lock file so concurrent invocations serialize access.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS beat_analysis (
    file_path       TEXT    NOT NULL,
    file_size       INTEGER NOT NULL,
    modified_at     TEXT    NOT NULL,
    engine          TEXT    NOT NULL,
    window_start    REAL    NOT NULL,
    window_duration REAL    NOT NULL,
    events_json     TEXT    NOT NULL,
    cached_at       TEXT    NOT NULL,
    PRIMARY KEY (file_path, file_size, modified_at, engine, window_start, window_duration)
)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Key identifies one analysis result. Size and modification time invalidate
// entries when the source file changes in place.
type Key struct {
	FilePath       string
	FileSize       int64
	ModifiedAt     time.Time
	Engine         string
	WindowStart    float64
	WindowDuration float64
}

// KeyFor builds a cache key from the file on disk and the analysis request.
// A nil window denotes whole-file analysis.
func KeyFor(path, engine string, window *beats.Window) (Key, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Key{}, fmt.Errorf("stat source file: %w", err)
	}
	key := Key{
		FilePath:       path,
		FileSize:       info.Size(),
		ModifiedAt:     info.ModTime().UTC(),
		Engine:         engine,
		WindowDuration: -1,
	}
	if window != nil {
		key.WindowStart = window.StartSeconds
		key.WindowDuration = window.DurationSeconds
	}
	return key, nil
}

// Lookup returns the cached events for the key if present.
func (s *Store) Lookup(ctx context.Context, key Key) ([]beats.Event, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT events_json FROM beat_analysis
         WHERE file_path = ? AND file_size = ? AND modified_at = ? AND engine = ?
           AND window_start = ? AND window_duration = ?`,
		key.FilePath, key.FileSize, key.ModifiedAt.Format(time.RFC3339Nano), key.Engine,
		key.WindowStart, key.WindowDuration,
	)

	var eventsJSON string
	if err := row.Scan(&eventsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	var events []beats.Event
	if err := json.Unmarshal([]byte(eventsJSON), &events); err != nil {
		return nil, false, fmt.Errorf("decode cached events: %w", err)
	}
	return events, true, nil
}

// Store saves the events for the key, replacing any previous entry.
func (s *Store) Store(ctx context.Context, key Key, events []beats.Event) error {
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO beat_analysis (
            file_path, file_size, modified_at, engine,
            window_start, window_duration, events_json, cached_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key.FilePath, key.FileSize, key.ModifiedAt.Format(time.RFC3339Nano), key.Engine,
		key.WindowStart, key.WindowDuration, string(eventsJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}
	return nil
}

// Prune removes entries older than the retention window.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `DELETE FROM beat_analysis WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}
