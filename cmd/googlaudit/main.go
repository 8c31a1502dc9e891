package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rojanmagar2001/googlaudit/internal/app"
	"github.com/rojanmagar2001/googlaudit/internal/usecase"
)

func main() {
	cfg := app.LoadConfig()

	flag.StringVar(&cfg.InputFile, "file", cfg.InputFile, "File with one URL per line (default: stdin)")
	flag.StringVar(&cfg.OutFile, "out", cfg.OutFile, `CSV export path ("" to skip)`)
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request HTTP timeout (e.g. 10s)")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Pages fetched in parallel (1 = sequential)")
	flag.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header (default: Go client default)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.Addr, "serve", cfg.Addr, "Serve the HTTP API on this address instead of scanning once (e.g. :8080)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serve := cfg.Addr != ""
	log := app.NewLogger(cfg.LogLevel, serve, os.Stderr)

	if serve {
		if err := app.Serve(ctx, cfg, log); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
		return
	}

	var in io.Reader = os.Stdin
	if cfg.InputFile != "" {
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := app.Run(ctx, cfg, in, os.Stdout, log); err != nil {
		if errors.Is(err, usecase.ErrNoInput) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
