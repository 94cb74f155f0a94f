// Package fakes provides in-memory implementations of the ports for tests.
package fakes

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// Engine is an in-memory ports.SearchEngine that records every call
type Engine struct {
	mu sync.Mutex

	Indexes map[string]domain.IndexInfo
	Result  *domain.SearchResult
	Err     error // returned by every call when set

	SearchCalls  []domain.SearchRequest
	FetchCalls   int
	AddCalls     [][]domain.Document
	UpdateCalls  [][]domain.Document
	DeleteCalls  [][]string
	TaskCalls    []int64
	nextTaskUID  int64
	TaskStatuses map[int64]domain.TaskStatus
}

var _ ports.SearchEngine = (*Engine)(nil)

// NewEngine creates a fake engine holding the given indexes
func NewEngine(indexes ...domain.IndexInfo) *Engine {
	e := &Engine{
		Indexes:      make(map[string]domain.IndexInfo),
		Result:       &domain.SearchResult{},
		TaskStatuses: make(map[int64]domain.TaskStatus),
	}
	for _, idx := range indexes {
		e.Indexes[idx.UID] = idx
	}
	return e
}

func (e *Engine) ListIndexes(_ context.Context, offset, limit int) ([]domain.IndexInfo, int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return nil, 0, e.Err
	}
	all := make([]domain.IndexInfo, 0, len(e.Indexes))
	for _, idx := range e.Indexes {
		all = append(all, idx)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UID < all[j].UID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (e *Engine) FetchIndex(_ context.Context, uid string) (*domain.IndexInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.FetchCalls++
	if e.Err != nil {
		return nil, e.Err
	}
	idx, ok := e.Indexes[uid]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &idx, nil
}

func (e *Engine) Search(_ context.Context, uid string, req domain.SearchRequest) (*domain.SearchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.SearchCalls = append(e.SearchCalls, req)
	if e.Err != nil {
		return nil, e.Err
	}
	if _, ok := e.Indexes[uid]; !ok {
		return nil, ports.ErrNotFound
	}
	res := *e.Result
	res.Query = req.Query
	return &res, nil
}

func (e *Engine) AddDocuments(_ context.Context, uid string, docs []domain.Document) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.AddCalls = append(e.AddCalls, docs)
	return e.enqueue(uid, "documentAdditionOrUpdate")
}

func (e *Engine) UpdateDocuments(_ context.Context, uid string, docs []domain.Document) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UpdateCalls = append(e.UpdateCalls, docs)
	return e.enqueue(uid, "documentAdditionOrUpdate")
}

func (e *Engine) DeleteDocuments(_ context.Context, uid string, ids []string) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.DeleteCalls = append(e.DeleteCalls, ids)
	return e.enqueue(uid, "documentDeletion")
}

func (e *Engine) GetTask(_ context.Context, taskUID int64) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TaskCalls = append(e.TaskCalls, taskUID)
	if e.Err != nil {
		return nil, e.Err
	}
	status, ok := e.TaskStatuses[taskUID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &domain.Task{UID: taskUID, Status: status}, nil
}

// SearchCount returns how many searches were issued so far
func (e *Engine) SearchCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.SearchCalls)
}

func (e *Engine) enqueue(uid, taskType string) (*domain.Task, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	e.nextTaskUID++
	e.TaskStatuses[e.nextTaskUID] = domain.TaskEnqueued
	return &domain.Task{
		UID:        e.nextTaskUID,
		IndexUID:   uid,
		Status:     domain.TaskEnqueued,
		Type:       taskType,
		EnqueuedAt: time.Now(),
	}, nil
}

// Journal is an in-memory ports.TaskJournal
type Journal struct {
	mu    sync.Mutex
	Tasks []domain.Task
	Err   error
}

var _ ports.TaskJournal = (*Journal)(nil)

func (j *Journal) Record(_ context.Context, task domain.Task) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Err != nil {
		return j.Err
	}
	j.Tasks = append(j.Tasks, task)
	return nil
}

func (j *Journal) UpdateStatus(_ context.Context, task domain.Task) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Err != nil {
		return j.Err
	}
	for i := range j.Tasks {
		if j.Tasks[i].UID == task.UID {
			j.Tasks[i].Status = task.Status
			j.Tasks[i].Error = task.Error
			return nil
		}
	}
	return ports.ErrNotFound
}

func (j *Journal) Recent(_ context.Context, indexUID string, limit int) ([]domain.Task, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Err != nil {
		return nil, j.Err
	}
	var out []domain.Task
	for i := len(j.Tasks) - 1; i >= 0 && len(out) < limit; i-- {
		if indexUID == "" || j.Tasks[i].IndexUID == indexUID {
			out = append(out, j.Tasks[i])
		}
	}
	return out, nil
}

func (j *Journal) Close() error { return nil }

// Clipboard is an in-memory ports.Clipboard
type Clipboard struct {
	Text string
	Err  error
}

var _ ports.Clipboard = (*Clipboard)(nil)

func (c *Clipboard) ReadAll() (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.Text, nil
}

func (c *Clipboard) WriteAll(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}

// ErrUnavailable is a convenient error for failing fakes
var ErrUnavailable = errors.New("engine unavailable")
