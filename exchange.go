package http

import (
	"errors"
	"io"
)

// Exchange is one request read from a stream together with the means to
// answer it on the same stream. The stream stays owned by the caller.
type Exchange struct {
	Request *Request

	w         io.Writer
	responded bool
}

// Accept reads one request from rw.
func (p Parser) Accept(rw io.ReadWriter) (*Exchange, error) {
	req, err := p.ReadRequest(rw)
	if err != nil {
		return nil, err
	}
	return &Exchange{Request: req, w: rw}, nil
}

// Accept reads one request from rw using the default Parser.
func Accept(rw io.ReadWriter) (*Exchange, error) {
	return Parser{}.Accept(rw)
}

// Respond writes resp through the send path. Only one response may be sent;
// a response rejected with a BuildError was never written and may be retried.
func (e *Exchange) Respond(resp *Response) error {
	if e.responded {
		return ErrAlreadyResponded
	}

	err := WriteResponse(e.w, resp)
	var be BuildError
	if !errors.As(err, &be) {
		e.responded = true
	}
	return err
}
