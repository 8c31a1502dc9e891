package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidURL ErrorKind = "invalid_url"
	KindNetwork    ErrorKind = "network"
	KindUnexpected ErrorKind = "unexpected"
)

// ScanError is the only error type that leaves a per-URL unit of work.
// Message is what ends up in the report's error column.
type ScanError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ScanError) Error() string { return e.Message }

func (e *ScanError) Unwrap() error { return e.Err }

func InvalidURL(raw string) *ScanError {
	return &ScanError{
		Kind:    KindInvalidURL,
		Message: "invalid URL",
		Err:     fmt.Errorf("%q needs both a scheme and a host", raw),
	}
}

func NetworkError(err error) *ScanError {
	return &ScanError{Kind: KindNetwork, Message: fmt.Sprintf("error: %v", err), Err: err}
}

func UnexpectedError(err error) *ScanError {
	return &ScanError{Kind: KindUnexpected, Message: fmt.Sprintf("unexpected error: %v", err), Err: err}
}

// AsScanError converts any error into a ScanError, classifying unknown
// failures as unexpected.
func AsScanError(err error) *ScanError {
	if err == nil {
		return nil
	}
	var se *ScanError
	if errors.As(err, &se) {
		return se
	}
	return UnexpectedError(err)
}

// FetchResult is the outcome of one attempted fetch, either an input URL or
// a guessed sub-path.
type FetchResult struct {
	SourceURL string
	Links     []string
	Err       *ScanError
}

func (r FetchResult) Failed() bool { return r.Err != nil }
