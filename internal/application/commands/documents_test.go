package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"indexdesk/internal/application"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports/fakes"
)

func TestAddDocumentsCommand(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "movies"})
	journal := &fakes.Journal{}
	docs := []domain.Document{{"id": "1"}, {"id": "2"}}

	result, err := NewAddDocumentsCommand(engine, journal, "movies", docs).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(engine.AddCalls) != 1 || len(engine.AddCalls[0]) != 2 {
		t.Fatalf("expected one add call with 2 documents, got %v", engine.AddCalls)
	}
	if result.Task == nil || result.Task.UID != 1 {
		t.Errorf("unexpected task: %+v", result.Task)
	}
	if !strings.Contains(result.Message, "#1") {
		t.Errorf("message should name the task, got %q", result.Message)
	}
	if len(journal.Tasks) != 1 || journal.Tasks[0].IndexUID != "movies" {
		t.Errorf("task should be journaled, got %+v", journal.Tasks)
	}
}

func TestAddDocumentsCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		indexUID string
		docs     []domain.Document
		errMsg   string
	}{
		{"valid", "movies", []domain.Document{{"id": 1}}, ""},
		{"empty batch", "movies", nil, "Added documents should be JSON Array whose length > 0"},
		{"missing index", "", []domain.Document{{"id": 1}}, "index UID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AddDocumentsCommand{IndexUID: tt.indexUID, Documents: tt.docs}
			err := cmd.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("expected %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestAddDocumentsCommand_EngineFailure(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "movies"})
	engine.Err = fakes.ErrUnavailable
	journal := &fakes.Journal{}

	_, err := NewAddDocumentsCommand(engine, journal, "movies", []domain.Document{{"id": 1}}).Execute(context.Background())
	if !errors.Is(err, fakes.ErrUnavailable) {
		t.Fatalf("expected wrapped engine error, got %v", err)
	}
	if len(journal.Tasks) != 0 {
		t.Error("failed mutations must not be journaled")
	}
}

func TestAddDocumentsCommand_JournalFailureIsIgnored(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "movies"})
	journal := &fakes.Journal{Err: errors.New("disk full")}

	if _, err := NewAddDocumentsCommand(engine, journal, "movies", []domain.Document{{"id": 1}}).Execute(context.Background()); err != nil {
		t.Fatalf("journal errors should not fail the mutation: %v", err)
	}
}

func TestUpdateDocumentsCommand(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "movies"})
	doc := domain.Document{"id": "7", "title": "Alien"}

	result, err := NewUpdateDocumentsCommand(engine, nil, "movies", doc).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(engine.UpdateCalls) != 1 || len(engine.UpdateCalls[0]) != 1 {
		t.Fatalf("expected one update call with one document, got %v", engine.UpdateCalls)
	}
	if engine.UpdateCalls[0][0]["title"] != "Alien" {
		t.Errorf("unexpected document forwarded: %v", engine.UpdateCalls[0][0])
	}
	if !strings.HasPrefix(result.Message, "Update document task") {
		t.Errorf("unexpected message %q", result.Message)
	}

	_, err = NewUpdateDocumentsCommand(engine, nil, "movies", domain.Document{}).Execute(context.Background())
	if err == nil || err.Error() != application.MsgInvalidDocument {
		t.Errorf("expected %q, got %v", application.MsgInvalidDocument, err)
	}
}

func TestDeleteDocumentCommand(t *testing.T) {
	tests := []struct {
		name       string
		primaryKey string
		doc        domain.Document
		wantID     string
		wantErr    error
		wantValErr bool
	}{
		{
			name:       "deletes by primary key",
			primaryKey: "id",
			doc:        domain.Document{"id": "abc", "title": "x"},
			wantID:     "abc",
		},
		{
			name:       "numeric primary key",
			primaryKey: "sku",
			doc:        domain.Document{"sku": float64(1200)},
			wantID:     "1200",
		},
		{
			name:       "index without primary key",
			primaryKey: "",
			doc:        domain.Document{"id": "abc"},
			wantErr:    application.ErrNoPrimaryKey,
		},
		{
			name:       "document missing primary key field",
			primaryKey: "id",
			doc:        domain.Document{"title": "x"},
			wantValErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakes.NewEngine(domain.IndexInfo{UID: "movies", PrimaryKey: tt.primaryKey})

			_, err := NewDeleteDocumentCommand(engine, nil, "movies", tt.primaryKey, tt.doc).Execute(context.Background())

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(engine.DeleteCalls) != 0 {
					t.Error("delete endpoint must not be called")
				}
			case tt.wantValErr:
				if !application.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if len(engine.DeleteCalls) != 0 {
					t.Error("delete endpoint must not be called")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(engine.DeleteCalls) != 1 || engine.DeleteCalls[0][0] != tt.wantID {
					t.Errorf("delete calls = %v, want [[%s]]", engine.DeleteCalls, tt.wantID)
				}
			}
		})
	}
}

func TestDeleteDocumentsCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr bool
	}{
		{"single id", []string{"1"}, false},
		{"several ids", []string{"1", "2"}, false},
		{"no ids", nil, true},
		{"blank id", []string{"1", " "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&DeleteDocumentsCommand{IndexUID: "movies", IDs: tt.ids}).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
