package ssv

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader        = errors.New("malformed header")
	ErrMalformedVariable      = errors.New("malformed variable")
	ErrMalformedTypeSpec      = errors.New("malformed type spec")
	ErrMalformedDatasetHeader = errors.New("malformed dataset header")
	ErrMalformedColumnInfo    = errors.New("malformed column info")
	ErrMalformedRow           = errors.New("malformed dataset row")
	ErrIncompleteDataset      = errors.New("incomplete dataset")
)

// Error carries the offending token and its record index.
type Error struct {
	Kind  error
	Index int
	Token []byte
}

func (e *Error) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("ssv: %v at record %d", e.Kind, e.Index)
	}
	return fmt.Sprintf("ssv: %v at record %d: %q", e.Kind, e.Index, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, index int, token []byte) error {
	return &Error{Kind: kind, Index: index, Token: token}
}
