package httpclient

import (
	"net/http"
	"time"
)

type Client struct {
	c *http.Client
}

// New returns a client with a hard per-request timeout. Redirects follow
// the net/http default policy.
func New(timeout time.Duration) *Client {
	return &Client{c: &http.Client{Timeout: timeout}}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.c.Do(req)
}
