package at

import (
	"errors"
	"fmt"
)

var (
	// ErrPrefixMismatch is returned when a reply line does not start with the
	// literal prefix expected for its field (for example "Role:").
	ErrPrefixMismatch = errors.New("prefix mismatch")

	// ErrMissingTerminator is returned when a reply line does not end with
	// CRLF where the terminator is expected.
	ErrMissingTerminator = errors.New("missing CRLF terminator")

	// ErrUnrecognizedValue is returned when a well-framed payload is not one
	// of the values the field accepts.
	ErrUnrecognizedValue = errors.New("unrecognized value")

	// ErrTextEncoding is returned when a payload is not valid UTF-8.
	ErrTextEncoding = errors.New("invalid UTF-8")

	// ErrIntegerFormat is returned when a numeric payload cannot be parsed.
	ErrIntegerFormat = errors.New("invalid integer")
)

// ParseError describes a reply that could not be decoded into a parameter.
// It unwraps to one of the sentinel errors above.
type ParseError struct {
	Field string
	Input []byte
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at: parse %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(field string, input []byte, err error) *ParseError {
	return &ParseError{Field: field, Input: append([]byte(nil), input...), Err: err}
}
