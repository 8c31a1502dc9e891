package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/rojanmagar2001/googlaudit/internal/report"
	"github.com/rojanmagar2001/googlaudit/internal/usecase"
)

const maxRequestBody = 1 << 20

// ScanRequest is the JSON body of a scan. text/plain bodies are read as a
// newline separated block instead.
type ScanRequest struct {
	URLs []string `json:"urls"`
}

type ScanResponse struct {
	RunID string       `json:"run_id"`
	Rows  []report.Row `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	urls, ok := s.readURLs(w, r)
	if !ok {
		return
	}

	batch := s.scanner.Process(r.Context(), urls)
	writeJSON(w, http.StatusOK, ScanResponse{
		RunID: batch.RunID,
		Rows:  report.ToTable(batch),
	})
}

func (s *Server) handleScanCSV(w http.ResponseWriter, r *http.Request) {
	urls, ok := s.readURLs(w, r)
	if !ok {
		return
	}

	data, err := report.ToExport(s.scanner.Process(r.Context(), urls))
	if err != nil {
		s.log.WithError(err).Error("build export")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", report.ExportMIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ExportFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readURLs decodes the request body and writes a 400 when nothing usable is
// left after trimming.
func (s *Server) readURLs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	body := io.LimitReader(r.Body, maxRequestBody)

	var urls []string
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req ScanRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return nil, false
		}
		urls = usecase.PrepareInputs(req.URLs)
	} else {
		data, err := io.ReadAll(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read body: "+err.Error())
			return nil, false
		}
		urls = usecase.ParseInput(string(data))
	}

	if len(urls) == 0 {
		writeError(w, http.StatusBadRequest, usecase.ErrNoInput.Error())
		return nil, false
	}
	return urls, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
