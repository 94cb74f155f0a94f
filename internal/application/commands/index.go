package commands

import (
	"context"
	"fmt"

	"indexdesk/internal/application"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// FetchIndexCommand reads the raw metadata of an index, mainly to learn
// its primary key field
type FetchIndexCommand struct {
	engine   ports.SearchEngine
	IndexUID string
}

// NewFetchIndexCommand creates a new FetchIndexCommand
func NewFetchIndexCommand(engine ports.SearchEngine, indexUID string) *FetchIndexCommand {
	return &FetchIndexCommand{engine: engine, IndexUID: indexUID}
}

// Execute runs the fetch index command
func (c *FetchIndexCommand) Execute(ctx context.Context) (*domain.IndexInfo, error) {
	if err := application.ValidateRequired("indexUID", c.IndexUID); err != nil {
		return nil, err
	}

	info, err := c.engine.FetchIndex(ctx, c.IndexUID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index %s: %w", c.IndexUID, err)
	}
	return info, nil
}

// ListIndexesResult contains one page of indexes
type ListIndexesResult struct {
	Indexes []domain.IndexInfo
	Total   int64
}

// ListIndexesCommand lists the indexes of the engine
type ListIndexesCommand struct {
	engine ports.SearchEngine
	Offset int
	Limit  int
}

// NewListIndexesCommand creates a new ListIndexesCommand
func NewListIndexesCommand(engine ports.SearchEngine, offset, limit int) *ListIndexesCommand {
	return &ListIndexesCommand{engine: engine, Offset: offset, Limit: limit}
}

// Execute runs the list indexes command
func (c *ListIndexesCommand) Execute(ctx context.Context) (*ListIndexesResult, error) {
	if c.Offset < 0 || c.Limit < 0 {
		return nil, &application.ValidationError{
			Field:   "limit",
			Message: "offset and limit must not be negative",
		}
	}

	indexes, total, err := c.engine.ListIndexes(ctx, c.Offset, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	return &ListIndexesResult{Indexes: indexes, Total: total}, nil
}
