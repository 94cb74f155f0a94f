package ports

import (
	"context"

	"indexdesk/internal/domain"
)

// TaskJournal keeps a local record of the tasks this console enqueued
type TaskJournal interface {
	Record(ctx context.Context, task domain.Task) error
	UpdateStatus(ctx context.Context, task domain.Task) error

	// Recent returns the newest tasks first. An empty indexUID means all indexes.
	Recent(ctx context.Context, indexUID string, limit int) ([]domain.Task, error)

	Close() error
}
