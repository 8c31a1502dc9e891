package store

import (
	"sync"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
)

// record carries the set bookkeeping that DomainRecord itself does not expose.
type record struct {
	rec      *domain.DomainRecord
	linkSeen map[string]struct{}
	errSeen  map[string]struct{}
	subIndex map[string]int // sub-page URL -> index in rec.SubPages
}

// Memory merges fetch outcomes into per-domain records, keeping the order in
// which domains were first recorded.
type Memory struct {
	mu sync.Mutex

	order   []string
	domains map[string]*record
}

func NewMemory() *Memory {
	return &Memory{
		domains: make(map[string]*record),
	}
}

func (m *Memory) lookup(inputURL string) *record {
	k := domain.DomainKey(inputURL)
	r, ok := m.domains[k]
	if !ok {
		r = &record{
			rec:      &domain.DomainRecord{Domain: k, PrimaryURL: inputURL},
			linkSeen: make(map[string]struct{}),
			errSeen:  make(map[string]struct{}),
			subIndex: make(map[string]int),
		}
		m.domains[k] = r
		m.order = append(m.order, k)
	}
	return r
}

func (r *record) addLinks(links []string) {
	for _, l := range links {
		if _, ok := r.linkSeen[l]; ok {
			continue
		}
		r.linkSeen[l] = struct{}{}
		r.rec.MainLinks = append(r.rec.MainLinks, l)
	}
}

func (r *record) addErr(msg string) {
	if _, ok := r.errSeen[msg]; ok {
		return
	}
	r.errSeen[msg] = struct{}{}
	if r.rec.Err != "" {
		r.rec.Err += "; "
	}
	r.rec.Err += msg
}

// RecordMain merges the outcome of fetching an input URL. Errors are
// appended to the domain's error column, never overwritten.
func (m *Memory) RecordMain(inputURL string, res domain.FetchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.lookup(inputURL)
	if res.Err != nil {
		r.addErr(res.Err.Error())
		return
	}
	r.addLinks(res.Links)
}

// RecordSubPage merges a guessed sub-page. Failed sub-pages are not recorded.
func (m *Memory) RecordSubPage(inputURL string, res domain.FetchResult) {
	if res.Err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.lookup(inputURL)
	r.addLinks(res.Links)

	i, ok := r.subIndex[res.SourceURL]
	if !ok {
		r.rec.SubPages = append(r.rec.SubPages, domain.SubPage{URL: res.SourceURL, Links: []string{}})
		i = len(r.rec.SubPages) - 1
		r.subIndex[res.SourceURL] = i
	}

	sp := &r.rec.SubPages[i]
	for _, l := range res.Links {
		if !contains(sp.Links, l) {
			sp.Links = append(sp.Links, l)
		}
	}
}

func (m *Memory) Result() *domain.BatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := &domain.BatchResult{Records: make([]*domain.DomainRecord, 0, len(m.order))}
	for _, k := range m.order {
		out.Records = append(out.Records, m.domains[k].rec)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
