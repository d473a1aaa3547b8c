package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownDataSet is wrapped by a FetchError for names with no configured source.
var ErrUnknownDataSet = errors.New("unknown data set")

// FetchError reports a data set that could not be retrieved.
type FetchError struct {
	Name       string
	Source     string
	StatusCode int // non-zero for HTTP responses outside 2xx
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s (%s): status %d", e.Name, e.Source, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s (%s): %v", e.Name, e.Source, e.Err)
	default:
		return fmt.Sprintf("fetch %s (%s) failed", e.Name, e.Source)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a structurally malformed CSV data set.
type ParseError struct {
	Name string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
