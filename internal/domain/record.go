package domain

import (
	"net/url"
	"strings"
)

// SubPage is one guessed access page that answered successfully.
type SubPage struct {
	URL   string
	Links []string
}

// DomainRecord aggregates every fetch made for one network location.
// MainLinks is the ordered union of all links found for the domain,
// sub-pages included.
type DomainRecord struct {
	Domain     string
	PrimaryURL string
	MainLinks  []string
	SubPages   []SubPage
	Err        string
}

// SubPageLinks returns the union of links across all sub-pages, first-seen order.
func (r *DomainRecord) SubPageLinks() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, sp := range r.SubPages {
		for _, l := range sp.Links {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

func (r *DomainRecord) SubPageURLs() []string {
	out := make([]string, 0, len(r.SubPages))
	for _, sp := range r.SubPages {
		out = append(out, sp.URL)
	}
	return out
}

// BatchResult holds records in the order their domain was first seen.
type BatchResult struct {
	RunID   string
	Records []*DomainRecord
}

func (b *BatchResult) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Records)
}

func (b *BatchResult) Get(domain string) (*DomainRecord, bool) {
	if b == nil {
		return nil, false
	}
	for _, r := range b.Records {
		if r.Domain == domain {
			return r, true
		}
	}
	return nil, false
}

// DomainKey returns the aggregation key for a raw input: the lowercased
// host[:port] when the URL has one, otherwise the raw string itself so
// malformed entries still get their own record.
func DomainKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.ToLower(u.Host)
}
