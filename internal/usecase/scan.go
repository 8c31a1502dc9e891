package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
	"github.com/rojanmagar2001/googlaudit/internal/ports"
)

// DefaultSubPaths are the access pages probed on every scanned domain.
var DefaultSubPaths = []string{"/access/", "/access.html"}

// PageScan is the outcome of one unit of work: an input URL plus the
// sub-pages guessed from it. Err is set when the sub-page phase failed
// unexpectedly after the main page was already scanned.
type PageScan struct {
	Index    int
	InputURL string
	Main     domain.FetchResult
	SubPages []domain.FetchResult
	Err      *domain.ScanError
}

// Failed reports whether any error is to be recorded for this unit.
func (ps PageScan) Failed() bool { return ps.Main.Failed() || ps.Err != nil }

type Scanner struct {
	fetcher   ports.Fetcher
	extractor ports.Extractor
	subPaths  []string
	log       logrus.FieldLogger

	// Coalesces concurrent fetches of the same sub-page URL.
	flight singleflight.Group
}

func NewScanner(fetcher ports.Fetcher, extractor ports.Extractor, subPaths []string, log logrus.FieldLogger) *Scanner {
	if subPaths == nil {
		subPaths = DefaultSubPaths
	}
	return &Scanner{
		fetcher:   fetcher,
		extractor: extractor,
		subPaths:  subPaths,
		log:       log,
	}
}

// Scan fetches rawURL and, if that succeeds, its guessed sub-pages.
// It never panics and never returns an error: failures are recorded on
// the returned PageScan.
func (s *Scanner) Scan(ctx context.Context, index int, rawURL string) (ps PageScan) {
	ps = PageScan{Index: index, InputURL: rawURL}

	defer func() {
		if r := recover(); r != nil {
			ps.Main = domain.FetchResult{
				SourceURL: rawURL,
				Err:       domain.UnexpectedError(fmt.Errorf("%v", r)),
			}
			ps.SubPages = nil
			s.log.WithField("url", rawURL).Errorf("recovered from panic: %v", r)
		}
	}()

	ps.Main = s.fetchAndExtract(ctx, rawURL)
	if ps.Main.Failed() {
		s.log.WithFields(logrus.Fields{"url": rawURL, "error": ps.Main.Err}).Warn("page scan failed")
		return ps
	}
	s.log.WithFields(logrus.Fields{"url": rawURL, "links": len(ps.Main.Links)}).Debug("page scanned")

	for _, sub := range SubPathURLs(rawURL, s.subPaths) {
		// Panics must not escape the flight: waiting callers would crash.
		v, err, _ := s.flight.Do(sub, func() (out interface{}, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%v", r)
				}
			}()
			return s.fetchAndExtract(ctx, sub), nil
		})
		if err != nil {
			// The main page and finished sub-pages stay on the record.
			ps.Err = domain.UnexpectedError(err)
			s.log.WithFields(logrus.Fields{"url": rawURL, "sub_path": sub}).Errorf("recovered from panic: %v", err)
			return ps
		}
		res := v.(domain.FetchResult)
		if res.Failed() {
			s.log.WithFields(logrus.Fields{"url": rawURL, "sub_path": sub, "error": res.Err}).Debug("sub-page skipped")
		}
		ps.SubPages = append(ps.SubPages, res)
	}

	return ps
}

func (s *Scanner) fetchAndExtract(ctx context.Context, link string) domain.FetchResult {
	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return domain.FetchResult{SourceURL: link, Err: domain.AsScanError(err)}
	}

	links, err := s.extractor.Extract(strings.NewReader(body))
	if err != nil {
		return domain.FetchResult{SourceURL: link, Err: domain.UnexpectedError(err)}
	}
	return domain.FetchResult{SourceURL: link, Links: links}
}

// SubPathURLs resolves each sub-path against rawURL using RFC 3986 reference
// resolution: absolute paths replace the whole path, relative ones replace
// the last segment. Query and fragment of rawURL are dropped.
func SubPathURLs(rawURL string, subPaths []string) []string {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(subPaths))
	for _, p := range subPaths {
		ref, err := url.Parse(p)
		if err != nil {
			continue
		}
		out = append(out, base.ResolveReference(ref).String())
	}
	return out
}
