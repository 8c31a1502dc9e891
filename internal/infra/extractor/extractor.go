package extractor

import (
	"io"

	"github.com/rojanmagar2001/googlaudit/internal/extract"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Extract(r io.Reader) ([]string, error) {
	return extract.ExtractLinks(r)
}
