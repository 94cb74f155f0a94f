package meili

import (
	"encoding/json"

	"github.com/meilisearch/meilisearch-go"

	"indexdesk/internal/domain"
)

type searchResponse struct {
	Hits               []map[string]any `json:"hits"`
	EstimatedTotalHits int64            `json:"estimatedTotalHits"`
	ProcessingTimeMs   int64            `json:"processingTimeMs"`
	Query              string           `json:"query"`
}

func (r searchResponse) toDomain() *domain.SearchResult {
	hits := make([]domain.Document, len(r.Hits))
	for i, h := range r.Hits {
		hits[i] = domain.Document(h)
	}
	return &domain.SearchResult{
		Hits:               hits,
		EstimatedTotalHits: r.EstimatedTotalHits,
		ProcessingTimeMs:   r.ProcessingTimeMs,
		Query:              r.Query,
	}
}

// fromTaskInfo converts the summary returned by mutating routes
func fromTaskInfo(info *meilisearch.TaskInfo) *domain.Task {
	return &domain.Task{
		UID:        info.TaskUID,
		IndexUID:   info.IndexUID,
		Status:     domain.TaskStatus(info.Status),
		Type:       string(info.Type),
		EnqueuedAt: info.EnqueuedAt,
	}
}

func fromTask(t *meilisearch.Task) *domain.Task {
	uid := t.UID
	if uid == 0 {
		uid = t.TaskUID
	}
	return &domain.Task{
		UID:        uid,
		IndexUID:   t.IndexUID,
		Status:     domain.TaskStatus(t.Status),
		Type:       string(t.Type),
		EnqueuedAt: t.EnqueuedAt,
		FinishedAt: t.FinishedAt,
		Error:      taskError(t.Error),
	}
}

// taskError extracts the message of a task's error payload, empty when the
// task did not fail
func taskError(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &e) != nil {
		return ""
	}
	return e.Message
}
