package dictionary

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord classifies records missing a required attribute.
var ErrMalformedRecord = errors.New("malformed catalog record")

// MalformedRecordError names the required attribute absent from a record.
// Index is the record's position in the input sequence, or -1 when unknown.
type MalformedRecordError struct {
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: missing required attribute %q", ErrMalformedRecord, e.Field)
	}
	return fmt.Sprintf("%v: entry %d: missing required attribute %q", ErrMalformedRecord, e.Index, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }
