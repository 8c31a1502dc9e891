package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
)

// ToExport renders the batch as UTF-8 CSV with a header row.
func ToExport(batch *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ToTable(batch)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Cells()); err != nil {
			return fmt.Errorf("write csv row %q: %w", r.Domain, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export back into rows.
func ReadCSV(r io.Reader) ([]Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("read csv: row has %d fields, want %d", len(rec), len(Header))
		}
		rows = append(rows, Row{
			Domain:       rec[0],
			PrimaryURL:   rec[1],
			Links:        rec[2],
			SubPages:     rec[3],
			SubPageLinks: rec[4],
			Error:        rec[5],
		})
	}
	return rows, nil
}
