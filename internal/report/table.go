package report

import (
	"strings"

	"github.com/rojanmagar2001/googlaudit/internal/domain"
)

const (
	ExportFileName = "goo_gl_search_results.csv"
	ExportMIMEType = "text/csv"
)

// Header names the table columns, in order.
var Header = []string{"Domain", "Primary URL", "goo.gl URLs", "Sub-pages", "Sub-page goo.gl URLs", "Error"}

// Row is one domain, flattened for display.
type Row struct {
	Domain       string `json:"domain"`
	PrimaryURL   string `json:"primary_url"`
	Links        string `json:"links"`
	SubPages     string `json:"sub_pages"`
	SubPageLinks string `json:"sub_page_links"`
	Error        string `json:"error"`
}

func (r Row) Cells() []string {
	return []string{r.Domain, r.PrimaryURL, r.Links, r.SubPages, r.SubPageLinks, r.Error}
}

func (r Row) Failed() bool { return r.Error != "" }

func ToTable(batch *domain.BatchResult) []Row {
	rows := make([]Row, 0, batch.Len())
	if batch == nil {
		return rows
	}
	for _, rec := range batch.Records {
		rows = append(rows, Row{
			Domain:       rec.Domain,
			PrimaryURL:   rec.PrimaryURL,
			Links:        join(rec.MainLinks),
			SubPages:     join(rec.SubPageURLs()),
			SubPageLinks: join(rec.SubPageLinks()),
			Error:        rec.Err,
		})
	}
	return rows
}

func join(list []string) string { return strings.Join(list, ", ") }
