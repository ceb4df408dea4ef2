package http

import (
	"fmt"
	"strings"

	"github.com/kurtlawrence/kl-http/internal/constructs"
	"github.com/kurtlawrence/kl-http/internal/lws"
)

const (
	Version10 = "HTTP/1.0"
	Version11 = "HTTP/1.1"
)

const contentLengthHeader = "content-length"

// Header is a single header field as it appeared on the wire. Name keeps its
// original casing.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of header fields. Repeated names are kept as
// separate entries.
type Headers []Header

// Get returns the value of the first field whose name matches name, ignoring
// case.
func (h Headers) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns the value of every field named name, in order.
func (h Headers) Values(name string) []string {
	var values []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

func (h Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Add appends a field; it never replaces an existing one.
func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// ContentLength returns the body length the fields declare. ok is false when
// no Content-Length field is present. Repeated fields must agree.
func (h Headers) ContentLength() (n int64, ok bool, err error) {
	for _, v := range h.Values(contentLengthHeader) {
		parsed, perr := constructs.ParseLength(v)
		if perr != nil {
			return 0, false, ContentLengthError{message: "invalid Content-Length header", err: perr}
		}

		if ok && parsed != n {
			return 0, false, ContentLengthError{message: "Content-Length fields disagree", err: ErrConflictingContentLength}
		}

		n, ok = parsed, true
	}

	return n, ok, nil
}

func (h Headers) validate() error {
	for _, f := range h {
		if err := constructs.ValidateToken(f.Name); err != nil {
			return BuildError{message: "invalid header name", err: err}
		}
		if err := constructs.ValidateText(f.Value); err != nil {
			return BuildError{message: "invalid header value for " + f.Name, err: err}
		}
		if f.Value != lws.Trim(f.Value) {
			return BuildError{message: fmt.Sprintf("header value for %s has surrounding whitespace (%q)", f.Name, f.Value)}
		}
	}
	return nil
}
