package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
	"github.com/rojanmagar2001/googlaudit/internal/ports"
)

const DefaultTimeout = 10 * time.Second

// StatusError is returned (wrapped in a network ScanError) for 4xx/5xx answers.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s for url: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

type Fetcher struct {
	Client      ports.HTTPClient
	Timeout     time.Duration
	UserAgent   string
	MaxBodyRead int64
}

func NewFetcher(client ports.HTTPClient, timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		Client:      client,
		Timeout:     timeout,
		UserAgent:   userAgent,
		MaxBodyRead: 10 << 20, // 10MB safety cap
	}
}

// Fetch GETs link once and returns its body decoded to UTF-8.
// Every error is a *domain.ScanError of kind invalid_url or network.
func (f *Fetcher) Fetch(ctx context.Context, link string) (string, error) {
	if !IsValid(link) {
		return "", domain.InvalidURL(link)
	}

	// Each fetch gets its own timeout budget.
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", domain.InvalidURL(link)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", domain.NetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return "", domain.NetworkError(&StatusError{URL: link, StatusCode: resp.StatusCode})
	}

	var body io.Reader = resp.Body
	if r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		body = r
	}

	data, err := io.ReadAll(io.LimitReader(body, f.MaxBodyRead))
	if err != nil {
		return "", domain.NetworkError(fmt.Errorf("read body: %w", err))
	}
	return string(data), nil
}
