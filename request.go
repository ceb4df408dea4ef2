package http

import (
	"github.com/kurtlawrence/kl-http/internal/constructs"
)

type RequestLine struct {
	Method  string
	Target  string
	Version string
}

func (l RequestLine) validate() error {
	if err := constructs.ValidateToken(l.Method); err != nil {
		return BuildError{message: "invalid request method", err: err}
	}
	if err := constructs.ValidateTarget(l.Target); err != nil {
		return BuildError{message: "invalid request target", err: err}
	}
	if err := constructs.ValidateVersion(l.Version); err != nil {
		return BuildError{message: "invalid request version", err: err}
	}
	return nil
}

// Request is an HTTP/1.x request with a fully buffered body. A nil Body means
// the request carries no body.
type Request struct {
	Line    RequestLine
	Headers Headers
	Body    []byte
}

// NewRequest builds an HTTP/1.1 request with no headers.
func NewRequest(method, target string, body []byte) (*Request, error) {
	req := &Request{
		Line: RequestLine{Method: method, Target: target, Version: Version11},
		Body: body,
	}
	if err := req.Line.validate(); err != nil {
		return nil, err
	}
	return req, nil
}
