package domain

import "time"

// TaskStatus is the lifecycle state of an asynchronous engine task
type TaskStatus string

const (
	TaskEnqueued   TaskStatus = "enqueued"
	TaskProcessing TaskStatus = "processing"
	TaskSucceeded  TaskStatus = "succeeded"
	TaskFailed     TaskStatus = "failed"
	TaskCanceled   TaskStatus = "canceled"
)

// Finished reports whether the task reached a terminal state
func (s TaskStatus) Finished() bool {
	switch s {
	case TaskSucceeded, TaskFailed, TaskCanceled:
		return true
	default:
		return false
	}
}

// Task is the handle returned by a mutating engine call
type Task struct {
	UID        int64
	IndexUID   string
	Status     TaskStatus
	Type       string
	EnqueuedAt time.Time
	FinishedAt time.Time
	Error      string
}
