package http

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kurtlawrence/kl-http/internal/constructs"
	"github.com/kurtlawrence/kl-http/internal/lws"
)

// DefaultMaxHeaders is the header field limit used when Parser.MaxHeaders is
// zero.
const DefaultMaxHeaders = 16

// Parser reads one request or response from a stream. The zero value is
// ready to use.
type Parser struct {
	// MaxHeaders caps the number of header fields. Zero means
	// DefaultMaxHeaders, a negative value removes the cap.
	MaxHeaders int
	// MaxHeadBytes caps the size of the start line plus header fields.
	// Zero means no limit.
	MaxHeadBytes int
	// MaxBodyBytes caps the declared Content-Length. Zero means no limit.
	MaxBodyBytes int64
}

// lineReader is what the parser needs from its source: reading up to a
// delimiter for the head, and plain reads for the body. ReadSlice hands back
// at most one buffer's worth per call, which keeps MaxHeadBytes effective on a
// stream that never sends LF.
type lineReader interface {
	io.Reader
	ReadSlice(delim byte) ([]byte, error)
}

// newLineReader wraps r in a bufio.Reader unless it can already read lines.
// Bytes buffered past the end of the message are lost when wrapping, so
// callers reading several messages from one stream should pass a
// *bufio.Reader.
func newLineReader(r io.Reader) lineReader {
	if lr, ok := r.(lineReader); ok {
		return lr
	}
	return bufio.NewReader(r)
}

func ReadRequest(r io.Reader) (*Request, error) {
	return Parser{}.ReadRequest(r)
}

func ReadResponse(r io.Reader) (*Response, error) {
	return Parser{}.ReadResponse(r)
}

func ParseRequest(data []byte) (*Request, error) {
	return Parser{}.ReadRequest(bytes.NewReader(data))
}

func ParseResponse(data []byte) (*Response, error) {
	return Parser{}.ReadResponse(bytes.NewReader(data))
}

// ReadRequest reads exactly one request from r: the head up to the blank
// line, then Content-Length bytes of body.
func (p Parser) ReadRequest(r io.Reader) (*Request, error) {
	lr := newLineReader(r)

	start, headers, err := p.readAndParseHead(lr)
	if err != nil {
		return nil, err
	}

	line, err := requestLineParser(start).parse()
	if err != nil {
		return nil, err
	}

	body, err := p.readBody(lr, headers)
	if err != nil {
		return nil, err
	}

	return &Request{Line: line, Headers: headers, Body: body}, nil
}

// ReadResponse reads exactly one response from r.
func (p Parser) ReadResponse(r io.Reader) (*Response, error) {
	lr := newLineReader(r)

	start, headers, err := p.readAndParseHead(lr)
	if err != nil {
		return nil, err
	}

	line, err := statusLineParser(start).parse()
	if err != nil {
		return nil, err
	}

	body, err := p.readBody(lr, headers)
	if err != nil {
		return nil, err
	}

	return &Response{Line: line, Headers: headers, Body: body}, nil
}

func (p Parser) readAndParseHead(r lineReader) ([]byte, Headers, error) {
	head, err := p.readHead(r)
	if err != nil {
		return nil, nil, err
	}

	return headParser{maxHeaders: p.maxHeaders()}.parse(head)
}

func (p Parser) maxHeaders() int {
	if p.MaxHeaders == 0 {
		return DefaultMaxHeaders
	}
	return p.MaxHeaders
}

// readHead consumes lines until a line that is exactly CRLF. The first line
// is always the start line, even when it is empty. The returned bytes include
// the terminator.
func (p Parser) readHead(r lineReader) ([]byte, error) {
	var head []byte
	lineStart := 0

	for {
		chunk, err := r.ReadSlice('\n')
		head = append(head, chunk...)

		if p.MaxHeadBytes > 0 && len(head) > p.MaxHeadBytes {
			return nil, ParseError{message: fmt.Sprintf("head exceeds %d bytes", p.MaxHeadBytes), err: ErrHeadTooLarge}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(head) == 0 {
					return nil, IOError{message: "stream closed before message", err: io.EOF}
				}
				return nil, IOError{message: "stream closed inside message head", err: io.ErrUnexpectedEOF}
			}
			return nil, IOError{message: "could not read message head", err: err}
		}

		if lineStart > 0 && string(head[lineStart:]) == constructs.Crlf {
			return head, nil
		}
		lineStart = len(head)
	}
}

type headParser struct {
	maxHeaders int
}

// parse splits a raw head into its start line, without CRLF, and its header
// fields.
func (hp headParser) parse(head []byte) ([]byte, Headers, error) {
	if !bytes.HasSuffix(head, []byte(constructs.Crlf)) {
		return nil, nil, ParseError{message: "head is not terminated by CRLF"}
	}

	lines := bytes.SplitAfter(head, []byte{lws.LF})
	lines = lines[:len(lines)-1]
	if len(lines) < 2 || string(lines[len(lines)-1]) != constructs.Crlf {
		return nil, nil, ParseError{message: "head is missing the blank line terminator"}
	}

	for _, line := range lines {
		if !bytes.HasSuffix(line, []byte(constructs.Crlf)) {
			return nil, nil, ParseError{message: fmt.Sprintf("line not terminated by CRLF (%q)", line)}
		}
	}

	start := bytes.TrimSuffix(lines[0], []byte(constructs.Crlf))
	if len(start) == 0 {
		return nil, nil, ParseError{message: "empty start line"}
	}

	fields := lines[1 : len(lines)-1]
	var headers Headers
	if len(fields) > 0 {
		headers = make(Headers, 0, len(fields))
	}

	for _, field := range fields {
		if hp.maxHeaders > 0 && len(headers) == hp.maxHeaders {
			return nil, nil, ParseError{message: fmt.Sprintf("more than %d header fields", hp.maxHeaders), err: ErrTooManyHeaders}
		}

		h, err := headerFieldParser(bytes.TrimSuffix(field, []byte(constructs.Crlf))).parse()
		if err != nil {
			return nil, nil, err
		}
		headers = append(headers, h)
	}

	return start, headers, nil
}

type headerFieldParser []byte

func (f headerFieldParser) parse() (Header, error) {
	if lws.Folded(f) {
		return Header{}, ParseError{message: fmt.Sprintf("Invalid header: folded header lines are not supported (%q)", []byte(f))}
	}

	i := bytes.IndexByte(f, constructs.ByteColon)
	if i < 0 {
		return Header{}, ParseError{message: fmt.Sprintf("Invalid header: cannot determine header name (%q)", []byte(f))}
	}

	name := string(f[:i])
	if err := constructs.ValidateToken(name); err != nil {
		return Header{}, ParseError{message: "Invalid header: bad header name", err: err}
	}

	value := lws.Trim(string(f[i+1:]))
	if err := constructs.ValidateText(value); err != nil {
		return Header{}, ParseError{message: "Invalid header: bad value for " + name, err: err}
	}

	return Header{Name: name, Value: value}, nil
}

type requestLineParser []byte

func (rl requestLineParser) parse() (RequestLine, error) {
	parts := strings.Split(string(rl), " ")
	if len(parts) != 3 {
		return RequestLine{}, ParseError{message: fmt.Sprintf("Invalid request line: malformed request line (%q)", string(rl))}
	}

	method, target, version := parts[0], parts[1], parts[2]
	if err := constructs.ValidateToken(method); err != nil {
		return RequestLine{}, ParseError{message: "Invalid request line: issue with request method", err: err}
	}

	if err := constructs.ValidateTarget(target); err != nil {
		return RequestLine{}, ParseError{message: "Invalid request line: issue with request target", err: err}
	}

	if err := constructs.ValidateVersion(version); err != nil {
		return RequestLine{}, ParseError{message: "Invalid request line: issue with version", err: err}
	}

	return RequestLine{Method: method, Target: target, Version: version}, nil
}

type statusLineParser []byte

func (sl statusLineParser) parse() (StatusLine, error) {
	parts := strings.SplitN(string(sl), " ", 3)
	if len(parts) < 2 {
		return StatusLine{}, ParseError{message: fmt.Sprintf("Invalid status line: missing status code (%q)", string(sl))}
	}

	if err := constructs.ValidateVersion(parts[0]); err != nil {
		return StatusLine{}, ParseError{message: "Invalid status line: issue with version", err: err}
	}

	code, err := constructs.ParseStatusCode(parts[1])
	if err != nil {
		return StatusLine{}, ParseError{message: "Invalid status line: issue with status code", err: err}
	}

	var reason string
	if len(parts) == 3 {
		reason = parts[2]
	}
	if err := constructs.ValidateText(reason); err != nil {
		return StatusLine{}, ParseError{message: "Invalid status line: issue with reason phrase", err: err}
	}

	return StatusLine{Version: parts[0], Code: code, Reason: reason}, nil
}

// readBody reads exactly the declared Content-Length bytes. The body is
// buffered as it arrives so a large declared length on a short stream does
// not allocate up front.
func (p Parser) readBody(r io.Reader, headers Headers) ([]byte, error) {
	n, _, err := headers.ContentLength()
	if err != nil {
		return nil, err
	}

	if p.MaxBodyBytes > 0 && n > p.MaxBodyBytes {
		return nil, ContentLengthError{message: fmt.Sprintf("Content-Length %d exceeds limit of %d", n, p.MaxBodyBytes), err: ErrBodyTooLarge}
	}

	if n == 0 {
		return nil, nil
	}

	var body bytes.Buffer
	read, err := io.CopyN(&body, r, n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, IOError{message: fmt.Sprintf("body truncated after %d of %d bytes", read, n), err: err}
	}

	return body.Bytes(), nil
}
