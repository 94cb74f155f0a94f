package ports

import (
	"context"
	"errors"

	"indexdesk/internal/domain"
)

// ErrNotFound is returned when the engine has no such index, document or task
var ErrNotFound = errors.New("not found")

// SearchEngine defines the remote search-engine operations the console relies on.
// Mutating calls are asynchronous on the engine side and return a task handle.
type SearchEngine interface {
	// Index metadata
	ListIndexes(ctx context.Context, offset, limit int) ([]domain.IndexInfo, int64, error)
	FetchIndex(ctx context.Context, uid string) (*domain.IndexInfo, error)

	// Search
	Search(ctx context.Context, uid string, req domain.SearchRequest) (*domain.SearchResult, error)

	// Document mutations
	AddDocuments(ctx context.Context, uid string, docs []domain.Document) (*domain.Task, error)
	UpdateDocuments(ctx context.Context, uid string, docs []domain.Document) (*domain.Task, error)
	DeleteDocuments(ctx context.Context, uid string, ids []string) (*domain.Task, error)

	// Tasks
	GetTask(ctx context.Context, taskUID int64) (*domain.Task, error)
}
