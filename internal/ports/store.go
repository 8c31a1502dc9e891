package ports

import "github.com/rojanmagar2001/googlaudit/internal/domain"

// Store aggregates fetch outcomes per domain for a single batch.
// A fresh Store is created for every batch.
type Store interface {
	RecordMain(inputURL string, res domain.FetchResult)
	RecordSubPage(inputURL string, res domain.FetchResult)
	Result() *domain.BatchResult
}
