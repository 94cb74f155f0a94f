// Package sqlite implements ports.TaskJournal on a local SQLite database.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// dsnPragmas are applied by the driver to every pooled connection
const dsnPragmas = "?_pragma=journal_mode(WAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_pragma=temp_store(MEMORY)"

// DefaultRetention is how many tasks are kept per index
const DefaultRetention = 500

// Journal implements ports.TaskJournal using SQLite
type Journal struct {
	db        *sql.DB
	dbPath    string
	retention int
}

// Ensure Journal implements TaskJournal
var _ ports.TaskJournal = (*Journal)(nil)

// Open opens (or creates) the journal database at path
func Open(path string) (*Journal, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			uid INTEGER PRIMARY KEY,
			index_uid TEXT NOT NULL,
			status TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			enqueued_at INTEGER NOT NULL DEFAULT 0,
			finished_at INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_index ON tasks(index_uid, uid);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`,
		schemaVersion,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Journal{db: db, dbPath: path, retention: DefaultRetention}, nil
}

// Path returns the database file location
func (j *Journal) Path() string {
	return j.dbPath
}

// SetRetention changes how many tasks are kept per index. Values below 1
// disable pruning.
func (j *Journal) SetRetention(n int) {
	j.retention = n
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record stores a freshly enqueued task and prunes old entries of its index
func (j *Journal) Record(ctx context.Context, task domain.Task) error {
	tx, err := j.begin(ctx)
	if err != nil {
		return err
	}

	if err := tx.upsertTask(ctx, task); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record task %d: %w", task.UID, err)
	}
	if j.retention > 0 {
		if err := tx.pruneIndex(ctx, task.IndexUID, j.retention); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to prune journal: %w", err)
		}
	}
	return tx.Commit()
}

// UpdateStatus refreshes the status of a recorded task
func (j *Journal) UpdateStatus(ctx context.Context, task domain.Task) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = ?, finished_at = ?, error = ?
		WHERE uid = ?
	`, string(task.Status), toUnix(task.FinishedAt), task.Error, task.UID)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", task.UID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", task.UID, ports.ErrNotFound)
	}
	return nil
}

// Recent returns the newest tasks first, optionally restricted to one index
func (j *Journal) Recent(ctx context.Context, indexUID string, limit int) ([]domain.Task, error) {
	query := `SELECT uid, index_uid, status, type, enqueued_at, finished_at, error FROM tasks`
	args := []any{}
	if indexUID != "" {
		query += ` WHERE index_uid = ?`
		args = append(args, indexUID)
	}
	query += ` ORDER BY uid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var status string
		var enqueued, finished int64
		if err := rows.Scan(&t.UID, &t.IndexUID, &status, &t.Type, &enqueued, &finished, &t.Error); err != nil {
			return nil, err
		}
		t.Status = domain.TaskStatus(status)
		t.EnqueuedAt = fromUnix(enqueued)
		t.FinishedAt = fromUnix(finished)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get returns a single recorded task
func (j *Journal) Get(ctx context.Context, uid int64) (*domain.Task, error) {
	var t domain.Task
	var status string
	var enqueued, finished int64

	err := j.db.QueryRowContext(ctx, `
		SELECT uid, index_uid, status, type, enqueued_at, finished_at, error
		FROM tasks WHERE uid = ?
	`, uid).Scan(&t.UID, &t.IndexUID, &status, &t.Type, &enqueued, &finished, &t.Error)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(status)
	t.EnqueuedAt = fromUnix(enqueued)
	t.FinishedAt = fromUnix(finished)
	return &t, nil
}

func (j *Journal) begin(ctx context.Context) (*journalTx, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &journalTx{tx: tx}, nil
}

// DefaultPath returns the journal location for an engine host. Each host
// gets its own file since task uids are only unique per engine.
func DefaultPath(host string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "indexdesk", hashHost(host)+".db")
}

// hashHost returns a short hash of the host URL
func hashHost(host string) string {
	h := sha256.Sum256([]byte(host))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnix(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
