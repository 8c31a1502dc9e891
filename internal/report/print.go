package report

import (
	"io"

	"github.com/rodaine/table"
)

// Print writes an aligned table of rows to w. Rows with an error are
// flagged in the leading column.
func Print(w io.Writer, rows []Row) {
	headers := make([]interface{}, 0, len(Header)+1)
	headers = append(headers, "")
	for _, h := range Header {
		headers = append(headers, h)
	}

	tbl := table.New(headers...).WithWriter(w)
	for _, r := range rows {
		mark := ""
		if r.Failed() {
			mark = "!"
		}
		tbl.AddRow(mark, r.Domain, r.PrimaryURL, r.Links, r.SubPages, r.SubPageLinks, r.Error)
	}
	tbl.Print()
}
