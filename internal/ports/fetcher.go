package ports

import "context"

// Fetcher returns a page body, or a *domain.ScanError describing why not.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
