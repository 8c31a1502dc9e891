package ports

import "io"

type Extractor interface {
	Extract(r io.Reader) ([]string, error)
}
