// Package meili implements ports.SearchEngine with the Meilisearch Go SDK.
package meili

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// Client adapts a meilisearch.ServiceManager to ports.SearchEngine
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
	sdk        meilisearch.ServiceManager
}

var _ ports.SearchEngine = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the key sent as a bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a new client for the engine at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	sdkOpts := []meilisearch.Option{meilisearch.WithCustomClient(c.httpClient)}
	if c.apiKey != "" {
		sdkOpts = append(sdkOpts, meilisearch.WithAPIKey(c.apiKey))
	}
	c.sdk = meilisearch.New(c.baseURL, sdkOpts...)
	return c
}

// ListIndexes returns one page of indexes and the total count.
func (c *Client) ListIndexes(ctx context.Context, offset, limit int) ([]domain.IndexInfo, int64, error) {
	start := time.Now()
	resp, err := c.sdk.ListIndexesWithContext(ctx, &meilisearch.IndexesQuery{
		Offset: int64(offset),
		Limit:  int64(limit),
	})
	c.trace("list indexes", "", start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("list indexes: %w", convertError(ctx, err))
	}

	out := make([]domain.IndexInfo, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, domain.IndexInfo{
			UID:        r.UID,
			PrimaryKey: r.PrimaryKey,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return out, resp.Total, nil
}

// FetchIndex returns the raw metadata of one index.
func (c *Client) FetchIndex(ctx context.Context, uid string) (*domain.IndexInfo, error) {
	start := time.Now()
	resp, err := c.sdk.Index(uid).FetchInfoWithContext(ctx)
	c.trace("fetch index", uid, start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", convertError(ctx, err))
	}
	return &domain.IndexInfo{
		UID:        resp.UID,
		PrimaryKey: resp.PrimaryKey,
		CreatedAt:  resp.CreatedAt,
		UpdatedAt:  resp.UpdatedAt,
	}, nil
}

// Search runs a search request against an index. Hits are decoded from the
// raw response so large integer ids keep every digit.
func (c *Client) Search(ctx context.Context, uid string, req domain.SearchRequest) (*domain.SearchResult, error) {
	sr := &meilisearch.SearchRequest{
		Offset: int64(req.Offset),
		Limit:  int64(req.Limit),
		Sort:   req.Sort,
	}
	if req.Filter != "" {
		sr.Filter = req.Filter
	}
	// The SDK sends its default page size for a zero limit
	countOnly := req.Limit == 0
	if countOnly {
		sr.Limit = 1
	}

	start := time.Now()
	raw, err := c.sdk.Index(uid).SearchRawWithContext(ctx, req.Query, sr)
	c.trace("search", uid, start, err)
	if err != nil {
		return nil, fmt.Errorf("search: %w", convertError(ctx, err))
	}

	result, err := decodeSearch(*raw)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if countOnly {
		result.Hits = []domain.Document{}
	}
	return result, nil
}

func decodeSearch(raw []byte) (*domain.SearchResult, error) {
	var resp searchResponse
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.toDomain(), nil
}

// AddDocuments inserts documents, replacing those with the same id.
func (c *Client) AddDocuments(ctx context.Context, uid string, docs []domain.Document) (*domain.Task, error) {
	start := time.Now()
	info, err := c.sdk.Index(uid).AddDocumentsWithContext(ctx, docs)
	c.trace("add documents", uid, start, err)
	if err != nil {
		return nil, fmt.Errorf("add documents: %w", convertError(ctx, err))
	}
	return fromTaskInfo(info), nil
}

// UpdateDocuments upserts documents, merging fields into existing ones.
func (c *Client) UpdateDocuments(ctx context.Context, uid string, docs []domain.Document) (*domain.Task, error) {
	start := time.Now()
	info, err := c.sdk.Index(uid).UpdateDocumentsWithContext(ctx, docs)
	c.trace("update documents", uid, start, err)
	if err != nil {
		return nil, fmt.Errorf("update documents: %w", convertError(ctx, err))
	}
	return fromTaskInfo(info), nil
}

// DeleteDocuments removes documents by identifier.
func (c *Client) DeleteDocuments(ctx context.Context, uid string, ids []string) (*domain.Task, error) {
	start := time.Now()
	info, err := c.sdk.Index(uid).DeleteDocumentsWithContext(ctx, ids)
	c.trace("delete documents", uid, start, err)
	if err != nil {
		return nil, fmt.Errorf("delete documents: %w", convertError(ctx, err))
	}
	return fromTaskInfo(info), nil
}

// GetTask returns the current state of a task.
func (c *Client) GetTask(ctx context.Context, taskUID int64) (*domain.Task, error) {
	start := time.Now()
	task, err := c.sdk.GetTaskWithContext(ctx, taskUID)
	c.trace("get task", "", start, err)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", convertError(ctx, err))
	}
	return fromTask(task), nil
}

func (c *Client) trace(op, uid string, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Duration("took", time.Since(start)),
	}
	if uid != "" {
		fields = append(fields, zap.String("index", uid))
	}
	if err != nil {
		c.log.Debug("engine request failed", append(fields, zap.Error(err))...)
		return
	}
	c.log.Debug("engine request", fields...)
}

// convertError turns SDK failures into *APIError. A canceled or expired
// context is returned as is so callers can match it.
func convertError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var sdkErr *meilisearch.Error
	if !errors.As(err, &sdkErr) || sdkErr.StatusCode == 0 {
		return err
	}
	return &APIError{
		StatusCode: sdkErr.StatusCode,
		Message:    sdkErr.MeilisearchApiError.Message,
		Code:       sdkErr.MeilisearchApiError.Code,
		Type:       sdkErr.MeilisearchApiError.Type,
		Link:       sdkErr.MeilisearchApiError.Link,
	}
}
