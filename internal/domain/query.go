package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxSearchLimit is the exclusive upper bound on a search page size
	MaxSearchLimit = 500

	// DefaultSearchLimit is the page size a fresh query starts with
	DefaultSearchLimit = 20
)

// SearchQuery is the editable state behind the documents search form
type SearchQuery struct {
	Query  string
	Offset int
	Limit  int
	Filter string
	Sort   string // comma-separated sort expressions, e.g. "price:asc, title:desc"
}

// DefaultSearchQuery returns the query a page starts with when an index is opened
func DefaultSearchQuery() SearchQuery {
	return SearchQuery{Limit: DefaultSearchLimit}
}

// SearchRequest is what gets forwarded to the search engine
type SearchRequest struct {
	Query  string
	Offset int
	Limit  int
	Filter string
	Sort   []string
}

// Request converts the form state into an engine request
func (q SearchQuery) Request() SearchRequest {
	return SearchRequest{
		Query:  q.Query,
		Offset: q.Offset,
		Limit:  q.Limit,
		Filter: strings.TrimSpace(q.Filter),
		Sort:   ParseSort(q.Sort),
	}
}

// NextPage returns the query moved forward by one page
func (q SearchQuery) NextPage() SearchQuery {
	q.Offset += q.Limit
	return q
}

// PrevPage returns the query moved back by one page, clamped at zero
func (q SearchQuery) PrevPage() SearchQuery {
	q.Offset -= q.Limit
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// String renders the query for logs and status lines
func (q SearchQuery) String() string {
	return fmt.Sprintf("q=%q offset=%d limit=%d filter=%q sort=%q", q.Query, q.Offset, q.Limit, q.Filter, q.Sort)
}

// ParseSort splits a comma-separated sort expression into its trimmed,
// non-empty parts. An expression with no parts yields nil.
func ParseSort(expr string) []string {
	var out []string
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
