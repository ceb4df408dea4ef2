package http

import (
	"errors"
	"fmt"
)

var (
	ErrTooManyHeaders           = errors.New("too many header fields")
	ErrHeadTooLarge             = errors.New("message head too large")
	ErrBodyTooLarge             = errors.New("declared body too large")
	ErrConflictingContentLength = errors.New("conflicting Content-Length fields")
	ErrAlreadyResponded         = errors.New("response already written")
)

// ParseError reports a malformed start line or header field, or a head that
// breaks one of the Parser limits.
type ParseError struct {
	message string
	err     error
}

func (e ParseError) Error() string {
	return format("Parse", e.message, e.err)
}

func (e ParseError) Unwrap() error {
	return e.err
}

// ContentLengthError reports a Content-Length value that is not a single
// non-negative decimal integer.
type ContentLengthError struct {
	message string
	err     error
}

func (e ContentLengthError) Error() string {
	return format("Content-Length", e.message, e.err)
}

func (e ContentLengthError) Unwrap() error {
	return e.err
}

// IOError reports a failure of the underlying stream, including an end of
// stream before the message was complete.
type IOError struct {
	message string
	err     error
}

func (e IOError) Error() string {
	return format("IO", e.message, e.err)
}

func (e IOError) Unwrap() error {
	return e.err
}

// BuildError reports a message that cannot be rendered to the wire.
type BuildError struct {
	message string
	err     error
}

func (e BuildError) Error() string {
	return format("Build", e.message, e.err)
}

func (e BuildError) Unwrap() error {
	return e.err
}

func format(kind, message string, err error) string {
	if err == nil {
		return fmt.Sprintf("[%s error]: %s", kind, message)
	}
	return fmt.Sprintf("[%s error]: %s (%s)", kind, message, err.Error())
}
