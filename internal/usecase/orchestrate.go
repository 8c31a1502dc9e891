package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
	"github.com/rojanmagar2001/googlaudit/internal/ports"
)

const DefaultConcurrency = 5

// ErrNoInput is reported by callers when nothing is left after trimming.
var ErrNoInput = errors.New("enter at least one URL")

type Orchestrator struct {
	scanner  *Scanner
	newStore func() ports.Store
	log      logrus.FieldLogger

	concurrency int
}

func NewOrchestrator(sc *Scanner, newStore func() ports.Store, concurrency int, log logrus.FieldLogger) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Orchestrator{
		scanner:     sc,
		newStore:    newStore,
		log:         log,
		concurrency: concurrency,
	}
}

// ParseInput splits a newline separated block into URLs, trimming each line
// and dropping blank ones.
func ParseInput(block string) []string {
	return PrepareInputs(strings.Split(block, "\n"))
}

// PrepareInputs trims every entry and drops the ones left empty.
func PrepareInputs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Process scans urls and returns one record per domain, in the order domains
// first appear in urls. Per-URL failures end up on the records; Process
// itself cannot fail. Concurrency 1 gives a strictly sequential scan.
func (o *Orchestrator) Process(ctx context.Context, urls []string) *domain.BatchResult {
	runID := uuid.NewString()
	log := o.log.WithField("run_id", runID)

	inputs := PrepareInputs(urls)
	log.WithFields(logrus.Fields{"urls": len(inputs), "concurrency": o.concurrency}).Info("scan started")

	type job struct {
		index int
		url   string
	}

	// Worker pool
	jobs := make(chan job)
	results := make(chan PageScan, o.concurrency)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for j := range jobs {
			results <- o.scanner.Scan(ctx, j.index, j.url)
		}
	}

	wg.Add(o.concurrency)
	for i := 0; i < o.concurrency; i++ {
		go worker()
	}

	go func() {
		for i, u := range inputs {
			jobs <- job{index: i, url: u}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// collect
	all := make([]PageScan, 0, len(inputs))
	for r := range results {
		all = append(all, r)
	}

	// Completion order is not input order; merge strictly in input order so
	// domain order and link order are deterministic.
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })

	st := o.newStore()
	failed := 0
	for _, ps := range all {
		st.RecordMain(ps.InputURL, ps.Main)
		for _, sp := range ps.SubPages {
			st.RecordSubPage(ps.InputURL, sp)
		}
		if ps.Err != nil {
			st.RecordMain(ps.InputURL, domain.FetchResult{SourceURL: ps.InputURL, Err: ps.Err})
		}
		if ps.Failed() {
			failed++
		}
	}

	batch := st.Result()
	batch.RunID = runID

	log.WithFields(logrus.Fields{"domains": batch.Len(), "failed": failed}).Info("scan finished")
	return batch
}
