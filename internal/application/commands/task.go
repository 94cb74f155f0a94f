package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"indexdesk/internal/application"
	"indexdesk/internal/domain"
	"indexdesk/internal/logger"
	"indexdesk/internal/ports"
)

// TaskStatusCommand fetches the current state of an engine task and
// refreshes the journal entry for it
type TaskStatusCommand struct {
	engine  ports.SearchEngine
	journal ports.TaskJournal
	TaskUID int64
}

// NewTaskStatusCommand creates a new TaskStatusCommand. journal may be nil.
func NewTaskStatusCommand(engine ports.SearchEngine, journal ports.TaskJournal, taskUID int64) *TaskStatusCommand {
	return &TaskStatusCommand{engine: engine, journal: journal, TaskUID: taskUID}
}

// Execute runs the task status command
func (c *TaskStatusCommand) Execute(ctx context.Context) (*domain.Task, error) {
	if c.TaskUID < 0 {
		return nil, &application.ValidationError{
			Field:   "taskUID",
			Message: fmt.Sprintf("invalid task UID: %d", c.TaskUID),
		}
	}

	task, err := c.engine.GetTask(ctx, c.TaskUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", c.TaskUID, err)
	}

	if c.journal != nil {
		if err := c.journal.UpdateStatus(ctx, *task); err != nil {
			logger.FromContext(ctx).Warn("failed to update task journal",
				zap.Int64("task", task.UID),
				zap.Error(err),
			)
		}
	}
	return task, nil
}

// ListTasksCommand lists the tasks recorded in the journal
type ListTasksCommand struct {
	journal  ports.TaskJournal
	IndexUID string
	Limit    int
}

// NewListTasksCommand creates a new ListTasksCommand
func NewListTasksCommand(journal ports.TaskJournal, indexUID string, limit int) *ListTasksCommand {
	return &ListTasksCommand{journal: journal, IndexUID: indexUID, Limit: limit}
}

// Execute runs the list tasks command
func (c *ListTasksCommand) Execute(ctx context.Context) ([]domain.Task, error) {
	if c.journal == nil {
		return nil, fmt.Errorf("task journal is not configured")
	}
	limit := c.Limit
	if limit <= 0 {
		limit = 20
	}
	tasks, err := c.journal.Recent(ctx, c.IndexUID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
