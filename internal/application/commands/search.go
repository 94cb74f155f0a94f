package commands

import (
	"context"
	"fmt"

	"indexdesk/internal/application"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// SearchCommand runs a query against one index
type SearchCommand struct {
	engine   ports.SearchEngine
	IndexUID string
	Query    domain.SearchQuery
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(engine ports.SearchEngine, indexUID string, query domain.SearchQuery) *SearchCommand {
	return &SearchCommand{
		engine:   engine,
		IndexUID: indexUID,
		Query:    query,
	}
}

// Validate checks the index and the pagination bounds
func (c *SearchCommand) Validate() error {
	if err := application.ValidateRequired("indexUID", c.IndexUID); err != nil {
		return err
	}
	return application.ValidateSearchQuery(c.Query)
}

// Execute forwards the query to the engine and returns the page of hits
func (c *SearchCommand) Execute(ctx context.Context) (*domain.SearchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result, err := c.engine.Search(ctx, c.IndexUID, c.Query.Request())
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", c.IndexUID, err)
	}
	return result, nil
}
