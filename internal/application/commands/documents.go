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

// MutationResult contains the task handle of an enqueued document mutation
type MutationResult struct {
	Task    *domain.Task
	Message string
}

// AddDocumentsCommand inserts a batch of documents into an index
type AddDocumentsCommand struct {
	engine    ports.SearchEngine
	journal   ports.TaskJournal
	IndexUID  string
	Documents []domain.Document
}

// NewAddDocumentsCommand creates a new AddDocumentsCommand. journal may be nil.
func NewAddDocumentsCommand(engine ports.SearchEngine, journal ports.TaskJournal, indexUID string, docs []domain.Document) *AddDocumentsCommand {
	return &AddDocumentsCommand{
		engine:    engine,
		journal:   journal,
		IndexUID:  indexUID,
		Documents: docs,
	}
}

// Validate checks if the add operation is valid
func (c *AddDocumentsCommand) Validate() error {
	if err := application.ValidateRequired("indexUID", c.IndexUID); err != nil {
		return err
	}
	if len(c.Documents) == 0 {
		return &application.ValidationError{
			Field:   "documents",
			Message: application.MsgInvalidBatch,
			Err:     application.ErrInvalidPayload,
		}
	}
	return nil
}

// Execute runs the add documents command
func (c *AddDocumentsCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := c.engine.AddDocuments(ctx, c.IndexUID, c.Documents)
	if err != nil {
		logger.FromContext(ctx).Error("add documents failed",
			zap.String("index", c.IndexUID),
			zap.Int("documents", len(c.Documents)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to add documents: %w", err)
	}

	recordTask(ctx, c.journal, task)
	return &MutationResult{
		Task:    task,
		Message: fmt.Sprintf("Add documents task #%d %s", task.UID, task.Status),
	}, nil
}

// UpdateDocumentsCommand upserts a single edited document
type UpdateDocumentsCommand struct {
	engine   ports.SearchEngine
	journal  ports.TaskJournal
	IndexUID string
	Document domain.Document
}

// NewUpdateDocumentsCommand creates a new UpdateDocumentsCommand. journal may be nil.
func NewUpdateDocumentsCommand(engine ports.SearchEngine, journal ports.TaskJournal, indexUID string, doc domain.Document) *UpdateDocumentsCommand {
	return &UpdateDocumentsCommand{
		engine:   engine,
		journal:  journal,
		IndexUID: indexUID,
		Document: doc,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateDocumentsCommand) Validate() error {
	if err := application.ValidateRequired("indexUID", c.IndexUID); err != nil {
		return err
	}
	if len(c.Document) == 0 {
		return &application.ValidationError{
			Field:   "document",
			Message: application.MsgInvalidDocument,
			Err:     application.ErrInvalidPayload,
		}
	}
	return nil
}

// Execute runs the update documents command
func (c *UpdateDocumentsCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := c.engine.UpdateDocuments(ctx, c.IndexUID, []domain.Document{c.Document})
	if err != nil {
		logger.FromContext(ctx).Error("update document failed",
			zap.String("index", c.IndexUID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	recordTask(ctx, c.journal, task)
	return &MutationResult{
		Task:    task,
		Message: fmt.Sprintf("Update document task #%d %s", task.UID, task.Status),
	}, nil
}

// DeleteDocumentsCommand deletes documents by identifier
type DeleteDocumentsCommand struct {
	engine   ports.SearchEngine
	journal  ports.TaskJournal
	IndexUID string
	IDs      []string
}

// NewDeleteDocumentsCommand creates a new DeleteDocumentsCommand. journal may be nil.
func NewDeleteDocumentsCommand(engine ports.SearchEngine, journal ports.TaskJournal, indexUID string, ids []string) *DeleteDocumentsCommand {
	return &DeleteDocumentsCommand{
		engine:   engine,
		journal:  journal,
		IndexUID: indexUID,
		IDs:      ids,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteDocumentsCommand) Validate() error {
	if err := application.ValidateRequired("indexUID", c.IndexUID); err != nil {
		return err
	}
	if len(c.IDs) == 0 {
		return &application.ValidationError{
			Field:   "documentID",
			Message: "at least one document ID is required",
		}
	}
	for _, id := range c.IDs {
		if err := application.ValidateRequired("documentID", id); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the delete documents command
func (c *DeleteDocumentsCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := c.engine.DeleteDocuments(ctx, c.IndexUID, c.IDs)
	if err != nil {
		logger.FromContext(ctx).Error("delete documents failed",
			zap.String("index", c.IndexUID),
			zap.Strings("ids", c.IDs),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to delete documents: %w", err)
	}

	recordTask(ctx, c.journal, task)
	return &MutationResult{
		Task:    task,
		Message: fmt.Sprintf("Delete documents task #%d %s", task.UID, task.Status),
	}, nil
}

// DeleteDocumentCommand deletes one search hit, addressing it through the
// index primary key
type DeleteDocumentCommand struct {
	engine     ports.SearchEngine
	journal    ports.TaskJournal
	IndexUID   string
	PrimaryKey string
	Document   domain.Document
}

// NewDeleteDocumentCommand creates a new DeleteDocumentCommand. journal may be nil.
func NewDeleteDocumentCommand(engine ports.SearchEngine, journal ports.TaskJournal, indexUID, primaryKey string, doc domain.Document) *DeleteDocumentCommand {
	return &DeleteDocumentCommand{
		engine:     engine,
		journal:    journal,
		IndexUID:   indexUID,
		PrimaryKey: primaryKey,
		Document:   doc,
	}
}

// DocumentID resolves the document identifier. It fails with
// application.ErrNoPrimaryKey when the index has no primary key.
func (c *DeleteDocumentCommand) DocumentID() (string, error) {
	if c.PrimaryKey == "" {
		return "", application.ErrNoPrimaryKey
	}
	id, ok := c.Document.PrimaryKeyValue(c.PrimaryKey)
	if !ok {
		return "", &application.ValidationError{
			Field:   "primaryKey",
			Message: fmt.Sprintf("document has no usable value for primary key %q", c.PrimaryKey),
		}
	}
	return id, nil
}

// Execute runs the delete document command
func (c *DeleteDocumentCommand) Execute(ctx context.Context) (*MutationResult, error) {
	id, err := c.DocumentID()
	if err != nil {
		return nil, err
	}

	result, err := NewDeleteDocumentsCommand(c.engine, c.journal, c.IndexUID, []string{id}).Execute(ctx)
	if err != nil {
		return nil, err
	}
	result.Message = fmt.Sprintf("Delete document %s task #%d %s", id, result.Task.UID, result.Task.Status)
	return result, nil
}

// recordTask stores the task in the journal. Journal failures never fail the mutation.
func recordTask(ctx context.Context, journal ports.TaskJournal, task *domain.Task) {
	if journal == nil || task == nil {
		return
	}
	if err := journal.Record(ctx, *task); err != nil {
		logger.FromContext(ctx).Warn("failed to record task",
			zap.Int64("task", task.UID),
			zap.Error(err),
		)
	}
}
