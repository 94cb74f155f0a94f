package application

import "indexdesk/internal/domain"

// Re-export domain types for use by adapters
type (
	Document     = domain.Document
	SearchQuery  = domain.SearchQuery
	SearchResult = domain.SearchResult
	IndexInfo    = domain.IndexInfo
	Task         = domain.Task
)

// ParseSort splits a comma-separated sort expression
func ParseSort(expr string) []string {
	return domain.ParseSort(expr)
}
