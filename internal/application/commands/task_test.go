package commands

import (
	"context"
	"errors"
	"testing"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
	"indexdesk/internal/ports/fakes"
)

func TestTaskStatusCommand_UpdatesJournal(t *testing.T) {
	engine := fakes.NewEngine(domain.IndexInfo{UID: "movies"})
	journal := &fakes.Journal{}
	ctx := context.Background()

	added, err := NewAddDocumentsCommand(engine, journal, "movies", []domain.Document{{"id": 1}}).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	engine.TaskStatuses[added.Task.UID] = domain.TaskSucceeded

	task, err := NewTaskStatusCommand(engine, journal, added.Task.UID).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.TaskSucceeded {
		t.Errorf("status = %s, want succeeded", task.Status)
	}
	if journal.Tasks[0].Status != domain.TaskSucceeded {
		t.Errorf("journal status = %s, want succeeded", journal.Tasks[0].Status)
	}
}

func TestTaskStatusCommand_UnknownTask(t *testing.T) {
	engine := fakes.NewEngine()

	_, err := NewTaskStatusCommand(engine, nil, 99).Execute(context.Background())
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := NewTaskStatusCommand(engine, nil, -1).Execute(context.Background()); err == nil {
		t.Error("expected error for negative task UID")
	}
}

func TestListTasksCommand(t *testing.T) {
	journal := &fakes.Journal{Tasks: []domain.Task{
		{UID: 1, IndexUID: "movies"},
		{UID: 2, IndexUID: "books"},
		{UID: 3, IndexUID: "movies"},
	}}

	tasks, err := NewListTasksCommand(journal, "movies", 0).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].UID != 3 || tasks[1].UID != 1 {
		t.Errorf("unexpected tasks: %+v", tasks)
	}

	if _, err := NewListTasksCommand(nil, "", 10).Execute(context.Background()); err == nil {
		t.Error("expected error without journal")
	}
}
