package sqlite

import (
	"context"
	"database/sql"

	"indexdesk/internal/domain"
)

// journalTx groups the writes of a single Record call
type journalTx struct {
	tx *sql.Tx
}

// upsertTask inserts or replaces a task row
func (t *journalTx) upsertTask(ctx context.Context, task domain.Task) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks (uid, index_uid, status, type, enqueued_at, finished_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, task.UID, task.IndexUID, string(task.Status), task.Type,
		toUnix(task.EnqueuedAt), toUnix(task.FinishedAt), task.Error)
	return err
}

// pruneIndex keeps only the newest keep tasks of an index
func (t *journalTx) pruneIndex(ctx context.Context, indexUID string, keep int) error {
	_, err := t.tx.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE index_uid = ? AND uid NOT IN (
			SELECT uid FROM tasks WHERE index_uid = ? ORDER BY uid DESC LIMIT ?
		)
	`, indexUID, indexUID, keep)
	return err
}

// Commit commits the transaction
func (t *journalTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *journalTx) Rollback() error {
	return t.tx.Rollback()
}
