package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"indexdesk/internal/application"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
	"indexdesk/internal/ports/fakes"
)

func TestSearchCommand_ForwardsRequest(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "movies", PrimaryKey: "id"})
	engine.Result = &domain.SearchResult{
		Hits:               []domain.Document{{"id": "1"}, {"id": "2"}},
		EstimatedTotalHits: 42,
		ProcessingTimeMs:   3,
	}

	q := domain.SearchQuery{
		Query:  "star",
		Offset: 20,
		Limit:  10,
		Filter: "genre = scifi",
		Sort:   "a:asc, b:desc",
	}
	result, err := NewSearchCommand(engine, "movies", q).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Hits) != 2 || result.EstimatedTotalHits != 42 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(engine.SearchCalls) != 1 {
		t.Fatalf("expected 1 search call, got %d", len(engine.SearchCalls))
	}

	want := domain.SearchRequest{
		Query:  "star",
		Offset: 20,
		Limit:  10,
		Filter: "genre = scifi",
		Sort:   []string{"a:asc", "b:desc"},
	}
	if !reflect.DeepEqual(engine.SearchCalls[0], want) {
		t.Errorf("request = %+v, want %+v", engine.SearchCalls[0], want)
	}
}

func TestSearchCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		indexUID string
		limit    int
		errMsg   string
	}{
		{"valid", "movies", 20, ""},
		{"missing index", "", 20, "index UID is required"},
		{"limit too large", "movies", 500, "limit should be less than 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakes.NewEngine(domain.IndexInfo{UID: "movies"})
			q := domain.SearchQuery{Limit: tt.limit}

			_, err := NewSearchCommand(engine, tt.indexUID, q).Execute(context.Background())
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("expected %q, got %v", tt.errMsg, err)
			}
			if engine.SearchCount() != 0 {
				t.Errorf("engine should not be called on validation failure, got %d calls", engine.SearchCount())
			}
		})
	}
}

func TestSearchCommand_EngineError(t *testing.T) {
	engine := fakes.NewEngine()

	_, err := NewSearchCommand(engine, "missing", domain.DefaultSearchQuery()).Execute(context.Background())
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if application.IsValidation(err) {
		t.Error("engine errors should not be reported as validation errors")
	}
}

func TestFetchIndexCommand(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "books", PrimaryKey: "isbn"})

	info, err := NewFetchIndexCommand(engine, "books").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.PrimaryKey != "isbn" {
		t.Errorf("primary key = %q, want isbn", info.PrimaryKey)
	}

	if _, err := NewFetchIndexCommand(engine, "").Execute(context.Background()); err == nil {
		t.Error("expected error for empty index UID")
	}
}

func TestListIndexesCommand(t *testing.T) {
	engine := fakes.NewEngine(
		domain.IndexInfo{UID: "a"},
		domain.IndexInfo{UID: "b"},
		domain.IndexInfo{UID: "c"},
	)

	result, err := NewListIndexesCommand(engine, 1, 1).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 3 || len(result.Indexes) != 1 || result.Indexes[0].UID != "b" {
		t.Errorf("unexpected page: %+v", result)
	}

	if _, err := NewListIndexesCommand(engine, -1, 10).Execute(context.Background()); err == nil {
		t.Error("expected error for negative offset")
	}
}
