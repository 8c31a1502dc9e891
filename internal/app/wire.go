package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/googlaudit/internal/api"
	"github.com/rojanmagar2001/googlaudit/internal/fetch"
	"github.com/rojanmagar2001/googlaudit/internal/infra/extractor"
	"github.com/rojanmagar2001/googlaudit/internal/infra/httpclient"
	"github.com/rojanmagar2001/googlaudit/internal/infra/store"
	"github.com/rojanmagar2001/googlaudit/internal/ports"
	"github.com/rojanmagar2001/googlaudit/internal/report"
	"github.com/rojanmagar2001/googlaudit/internal/usecase"
)

// NewLogger builds the process logger. Serve mode logs JSON.
func NewLogger(level string, jsonFormat bool, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func Build(cfg Config, log logrus.FieldLogger) *usecase.Orchestrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = fetch.DefaultTimeout
	}

	httpc := httpclient.New(cfg.Timeout)
	f := fetch.NewFetcher(httpc, cfg.Timeout, cfg.UserAgent)
	sc := usecase.NewScanner(f, extractor.New(), usecase.DefaultSubPaths, log)
	newStore := func() ports.Store { return store.NewMemory() }

	return usecase.NewOrchestrator(sc, newStore, cfg.Concurrency, log)
}

// Run scans the newline separated URLs read from in, prints the table to
// stdout and writes the CSV export to cfg.OutFile when set.
func Run(ctx context.Context, cfg Config, in io.Reader, stdout io.Writer, log logrus.FieldLogger) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	urls := usecase.ParseInput(string(data))
	if len(urls) == 0 {
		log.Warn(usecase.ErrNoInput.Error())
		return usecase.ErrNoInput
	}

	batch := Build(cfg, log).Process(ctx, urls)
	rows := report.ToTable(batch)
	report.Print(stdout, rows)

	failed := 0
	for _, r := range rows {
		if r.Failed() {
			failed++
		}
	}
	fmt.Fprintf(stdout, "\nScanned %d URLs across %d domains. Errors: %d\n", len(urls), len(rows), failed)

	if cfg.OutFile == "" {
		return nil
	}
	export, err := report.ToExport(batch)
	if err != nil {
		return fmt.Errorf("build export: %w", err)
	}
	if err := os.WriteFile(cfg.OutFile, export, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	log.WithField("file", cfg.OutFile).Info("export written")
	return nil
}

// Serve exposes the scanner over HTTP until ctx is cancelled.
func Serve(ctx context.Context, cfg Config, log logrus.FieldLogger) error {
	srv := api.NewServer(Build(cfg, log), log)
	return srv.Start(ctx, cfg.Addr)
}
