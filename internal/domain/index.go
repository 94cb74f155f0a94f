package domain

import "time"

// IndexInfo is the raw metadata of a search-engine index
type IndexInfo struct {
	UID        string
	PrimaryKey string // empty when the engine has not inferred one yet
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasPrimaryKey reports whether documents in this index can be addressed by id
func (i IndexInfo) HasPrimaryKey() bool {
	return i.PrimaryKey != ""
}

// SearchResult is one page of hits returned by the engine
type SearchResult struct {
	Hits               []Document
	EstimatedTotalHits int64
	ProcessingTimeMs   int64
	Query              string
}
