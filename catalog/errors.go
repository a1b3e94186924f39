package catalog

import (
	"errors"
	"fmt"
)

// Error classes for catalog loading, matched with errors.Is.
var (
	ErrFetch = errors.New("catalog fetch failed")
	ErrParse = errors.New("catalog parsing failed")
)

// FetchError reports a failure of the retrieval collaborator.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch catalog from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

// ParseError reports bytes that are not a well-formed catalog document.
// Offset is the input offset reached by the decoder when the error was found.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse catalog xml at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
