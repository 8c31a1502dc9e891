package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
)

// Scanner is the batch operation the HTTP surface exposes.
type Scanner interface {
	Process(ctx context.Context, urls []string) *domain.BatchResult
}

type Server struct {
	router  *mux.Router
	scanner Scanner
	log     logrus.FieldLogger
}

func NewServer(sc Scanner, log logrus.FieldLogger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		scanner: sc,
		log:     log,
	}

	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/scan", s.handleScan).Methods(http.MethodPost)
	s.router.HandleFunc("/api/scan.csv", s.handleScanCSV).Methods(http.MethodPost)
	s.router.Use(s.logRequests)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr and shuts down gracefully when ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(start).String(),
		}).Debug("request served")
	})
}
