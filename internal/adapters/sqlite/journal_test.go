package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	enqueued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, domain.Task{UID: 1, IndexUID: "movies", Status: domain.TaskEnqueued, Type: "documentAdditionOrUpdate", EnqueuedAt: enqueued}))
	require.NoError(t, j.Record(ctx, domain.Task{UID: 2, IndexUID: "books", Status: domain.TaskEnqueued}))
	require.NoError(t, j.Record(ctx, domain.Task{UID: 3, IndexUID: "movies", Status: domain.TaskEnqueued, Type: "documentDeletion"}))

	all, err := j.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{all[0].UID, all[1].UID, all[2].UID})

	movies, err := j.Recent(ctx, "movies", 10)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(3), movies[0].UID)
	assert.Equal(t, "documentAdditionOrUpdate", movies[1].Type)
	assert.True(t, movies[1].EnqueuedAt.Equal(enqueued))
	assert.True(t, movies[0].EnqueuedAt.IsZero())

	limited, err := j.Recent(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJournal_UpdateStatus(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, domain.Task{UID: 7, IndexUID: "movies", Status: domain.TaskEnqueued}))

	finished := time.Date(2024, 5, 1, 10, 0, 1, 0, time.UTC)
	require.NoError(t, j.UpdateStatus(ctx, domain.Task{UID: 7, Status: domain.TaskFailed, FinishedAt: finished, Error: "boom"}))

	got, err := j.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
	assert.Equal(t, "movies", got.IndexUID, "index is kept from the original record")
	assert.True(t, got.FinishedAt.Equal(finished))
}

func TestJournal_UpdateStatusUnknownTask(t *testing.T) {
	j := openTestJournal(t)

	err := j.UpdateStatus(context.Background(), domain.Task{UID: 99, Status: domain.TaskSucceeded})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrNotFound))

	_, err = j.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}

func TestJournal_Retention(t *testing.T) {
	j := openTestJournal(t)
	j.SetRetention(2)
	ctx := context.Background()

	for uid := int64(1); uid <= 4; uid++ {
		require.NoError(t, j.Record(ctx, domain.Task{UID: uid, IndexUID: "movies", Status: domain.TaskEnqueued}))
	}
	require.NoError(t, j.Record(ctx, domain.Task{UID: 5, IndexUID: "books", Status: domain.TaskEnqueued}))

	movies, err := j.Recent(ctx, "movies", 10)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(4), movies[0].UID)
	assert.Equal(t, int64(3), movies[1].UID)

	books, err := j.Recent(ctx, "books", 10)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestJournal_ReopenKeepsTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, domain.Task{UID: 1, IndexUID: "movies", Status: domain.TaskEnqueued}))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	tasks, err := j.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, path, j.Path())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	a := DefaultPath("http://localhost:7700")
	b := DefaultPath("http://search.internal:7700")

	assert.Equal(t, "/tmp/data/indexdesk", filepath.Dir(a))
	assert.Equal(t, ".db", filepath.Ext(a))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, DefaultPath("http://localhost:7700"))
}

func TestJournal_PragmasOnEveryConnection(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	// Hold the first connection so the pool has to dial a second one
	first, err := j.db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := j.db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var mode string
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)

		var timeout int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, 5000, timeout)
	}
}
