package http

import (
	"fmt"
	"io"

	"github.com/kurtlawrence/kl-http/internal/constructs"
)

// Marshal renders the request exactly as it goes on the wire. Headers are
// written in order and nothing is added or removed.
func (r *Request) Marshal() ([]byte, error) {
	if err := r.Line.validate(); err != nil {
		return nil, err
	}
	if err := r.Headers.validate(); err != nil {
		return nil, err
	}

	marshaled := r.Line.marshal()
	marshaled = r.Headers.marshal(marshaled)
	return append(marshaled, r.Body...), nil
}

// Marshal renders the response exactly as it goes on the wire. It does not
// add a content-length field; see WriteResponse.
func (r *Response) Marshal() ([]byte, error) {
	if err := r.Line.validate(); err != nil {
		return nil, err
	}
	if err := r.Headers.validate(); err != nil {
		return nil, err
	}

	marshaled := r.Line.marshal()
	marshaled = r.Headers.marshal(marshaled)
	return append(marshaled, r.Body...), nil
}

// WriteTo writes the marshaled request to w in a single Write.
func (r *Request) WriteTo(w io.Writer) (int64, error) {
	data, err := r.Marshal()
	if err != nil {
		return 0, err
	}
	return write(w, data)
}

// WriteTo writes the marshaled response to w in a single Write.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	data, err := r.Marshal()
	if err != nil {
		return 0, err
	}
	return write(w, data)
}

// WriteResponse is the send path for a response: it adds a content-length
// field when one is missing and writes the result to w.
func WriteResponse(w io.Writer, r *Response) error {
	if r == nil {
		return BuildError{message: "no response to write"}
	}

	r.EnsureContentLength()
	_, err := r.WriteTo(w)
	return err
}

func write(w io.Writer, data []byte) (int64, error) {
	n, err := w.Write(data)
	if err != nil {
		return int64(n), IOError{message: fmt.Sprintf("wrote %d of %d bytes", n, len(data)), err: err}
	}
	return int64(n), nil
}

func (l RequestLine) marshal() []byte {
	return fmt.Appendf([]byte{}, "%s %s %s%s", l.Method, l.Target, l.Version, constructs.Crlf)
}

func (l StatusLine) marshal() []byte {
	return fmt.Appendf([]byte{}, "%s %d %s%s", l.Version, l.Code, l.Reason, constructs.Crlf)
}

// marshal appends every field and the blank line that ends the head.
func (h Headers) marshal(dst []byte) []byte {
	for _, f := range h {
		dst = fmt.Appendf(dst, "%s: %s%s", f.Name, f.Value, constructs.Crlf)
	}
	return append(dst, constructs.Crlf...)
}
