package http

import (
	"fmt"
	"strconv"

	"github.com/kurtlawrence/kl-http/internal/constructs"
)

type StatusLine struct {
	Version string
	Code    int
	Reason  string
}

func (l StatusLine) validate() error {
	if err := constructs.ValidateVersion(l.Version); err != nil {
		return BuildError{message: "invalid response version", err: err}
	}
	if l.Code < 100 || l.Code > 999 {
		return BuildError{message: fmt.Sprintf("status code out of range (%d)", l.Code)}
	}
	if err := constructs.ValidateText(l.Reason); err != nil {
		return BuildError{message: "invalid reason phrase", err: err}
	}
	return nil
}

// Response is an HTTP/1.x response with a fully buffered body. A nil Body
// means the response carries no body.
type Response struct {
	Line    StatusLine
	Headers Headers
	Body    []byte
}

// NewResponse builds an HTTP/1.1 response whose reason phrase is the
// canonical text for code.
func NewResponse(code int, body []byte) *Response {
	return &Response{
		Line: StatusLine{Version: Version11, Code: code, Reason: StatusText(code)},
		Body: body,
	}
}

// EnsureContentLength appends a content-length field carrying len(Body) when
// the response has none. An existing field is left as it is, even if it does
// not match the body.
func (r *Response) EnsureContentLength() {
	if r.Headers.Has(contentLengthHeader) {
		return
	}
	r.Headers.Add(contentLengthHeader, strconv.Itoa(len(r.Body)))
}
