package meili

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// --- Helpers ---

// mockServer creates a test server and a client pointed at it.
func mockServer(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, opts...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := io.WriteString(w, body)
	require.NoError(t, err)
}

const enqueuedTask = `{"taskUid": 17, "indexUid": "movies", "status": "enqueued", "type": "documentAdditionOrUpdate", "enqueuedAt": "2024-05-01T10:00:00.123456Z"}`

// --- New / Options ---

func TestNew(t *testing.T) {
	c := New("http://localhost:7700/")
	assert.Equal(t, "http://localhost:7700", c.baseURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
	assert.NotNil(t, c.sdk)

	c = New("http://localhost:7700", WithAPIKey("masterKey"), WithTimeout(3*time.Second))
	assert.Equal(t, "masterKey", c.apiKey)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

// --- Index metadata ---

func TestFetchIndex(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/indexes/movies", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(t, w, 200, `{"uid":"movies","primaryKey":"id","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`)
	}, WithAPIKey("secret"))

	info, err := c.FetchIndex(context.Background(), "movies")
	require.NoError(t, err)
	assert.Equal(t, "movies", info.UID)
	assert.Equal(t, "id", info.PrimaryKey)
	assert.True(t, info.HasPrimaryKey())
	assert.Equal(t, 2024, info.CreatedAt.Year())
}

func TestFetchIndex_NullPrimaryKey(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, 200, `{"uid":"raw","primaryKey":null}`)
	})

	info, err := c.FetchIndex(context.Background(), "raw")
	require.NoError(t, err)
	assert.False(t, info.HasPrimaryKey())
}

func TestFetchIndex_NotFound(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 404, `{"message":"Index `+"`nope`"+` not found.","code":"index_not_found","type":"invalid_request","link":"https://docs.meilisearch.com/errors#index_not_found"}`)
	})

	_, err := c.FetchIndex(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "index_not_found", apiErr.Code)
	assert.Contains(t, err.Error(), "not found")
}

func TestListIndexes(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(t, w, 200, `{"results":[{"uid":"books","primaryKey":"isbn"},{"uid":"movies","primaryKey":null}],"offset":20,"limit":10,"total":22}`)
	})

	indexes, total, err := c.ListIndexes(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(22), total)
	require.Len(t, indexes, 2)
	assert.Equal(t, "isbn", indexes[0].PrimaryKey)
	assert.Empty(t, indexes[1].PrimaryKey)
}

// --- Search ---

func TestSearch(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/movies/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "star", body["q"])
		assert.Equal(t, float64(20), body["offset"])
		assert.Equal(t, float64(10), body["limit"])
		assert.Equal(t, "genre = scifi", body["filter"])
		assert.Equal(t, []any{"year:desc", "title:asc"}, body["sort"])

		writeJSON(t, w, 200, `{"hits":[{"id":9007199254740993,"title":"Star Wars"}],"query":"star","processingTimeMs":2,"limit":10,"offset":20,"estimatedTotalHits":31}`)
	})

	result, err := c.Search(context.Background(), "movies", domain.SearchRequest{
		Query:  "star",
		Offset: 20,
		Limit:  10,
		Filter: "genre = scifi",
		Sort:   []string{"year:desc", "title:asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(31), result.EstimatedTotalHits)
	assert.Equal(t, int64(2), result.ProcessingTimeMs)
	require.Len(t, result.Hits, 1)

	id, ok := result.Hits[0].PrimaryKeyValue("id")
	require.True(t, ok)
	assert.Equal(t, "9007199254740993", id, "large ids must not lose precision")
}

func TestSearch_OmitsEmptyFilterAndSort(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasFilter := body["filter"]
		_, hasSort := body["sort"]
		assert.False(t, hasFilter)
		assert.False(t, hasSort)
		writeJSON(t, w, 200, `{"hits":[],"estimatedTotalHits":0,"processingTimeMs":0}`)
	})

	result, err := c.Search(context.Background(), "movies", domain.SearchRequest{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearch_ZeroLimitCountsOnly(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(1), body["limit"])
		writeJSON(t, w, 200, `{"hits":[{"id":1}],"estimatedTotalHits":57,"processingTimeMs":0}`)
	})

	result, err := c.Search(context.Background(), "movies", domain.SearchRequest{Limit: 0})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
	assert.Equal(t, int64(57), result.EstimatedTotalHits)
}

func TestSearch_InvalidFilter(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 400, `{"message":"Attribute `+"`genre`"+` is not filterable.","code":"invalid_search_filter","type":"invalid_request"}`)
	})

	_, err := c.Search(context.Background(), "movies", domain.SearchRequest{Filter: "genre = x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ports.ErrNotFound))
	assert.Contains(t, err.Error(), "invalid_search_filter")
}

// --- Documents ---

func TestAddDocuments(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/movies/documents", r.URL.Path)

		var docs []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&docs))
		assert.Len(t, docs, 2)

		writeJSON(t, w, 202, enqueuedTask)
	})

	task, err := c.AddDocuments(context.Background(), "movies", []domain.Document{{"id": 1}, {"id": 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(17), task.UID)
	assert.Equal(t, "movies", task.IndexUID)
	assert.Equal(t, domain.TaskEnqueued, task.Status)
	assert.False(t, task.EnqueuedAt.IsZero())
}

func TestUpdateDocuments(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/indexes/movies/documents", r.URL.Path)
		writeJSON(t, w, 202, enqueuedTask)
	})

	task, err := c.UpdateDocuments(context.Background(), "movies", []domain.Document{{"id": 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(17), task.UID)
}

func TestDeleteDocuments(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/movies/documents/delete-batch", r.URL.Path)

		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		assert.Equal(t, []string{"a", "b"}, ids)

		writeJSON(t, w, 202, `{"taskUid": 18, "indexUid": "movies", "status": "enqueued", "type": "documentDeletion"}`)
	})

	task, err := c.DeleteDocuments(context.Background(), "movies", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(18), task.UID)
	assert.Equal(t, "documentDeletion", task.Type)
}

func TestMutation_UnexpectedStatus(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.AddDocuments(context.Background(), "movies", []domain.Document{{"id": 1}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.False(t, errors.Is(err, ports.ErrNotFound))
}

// --- Tasks ---

func TestGetTask(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/17", r.URL.Path)
		writeJSON(t, w, 200, `{"uid":17,"indexUid":"movies","status":"failed","type":"documentAdditionOrUpdate","enqueuedAt":"2024-05-01T10:00:00Z","finishedAt":"2024-05-01T10:00:01Z","error":{"message":"missing primary key","code":"index_primary_key_no_candidate_found"}}`)
	})

	task, err := c.GetTask(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, int64(17), task.UID)
	assert.Equal(t, domain.TaskFailed, task.Status)
	assert.True(t, task.Status.Finished())
	assert.Equal(t, "missing primary key", task.Error)
	assert.Equal(t, time.Second, task.FinishedAt.Sub(task.EnqueuedAt))
}

func TestFetchIndex_ContextCanceled(t *testing.T) {
	c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 200, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchIndex(ctx, "movies")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
