// Package constructs classifies the bytes of an HTTP/1.1 message head and
// validates the small grammars built from them.
package constructs

import (
	"fmt"
	"slices"
	"strconv"
)

const (
	ByteSeparator = '/'
	ByteColon     = ':'
	Crlf          = "\r\n"
	HttpPrefix    = "HTTP/"
)

type HttpByte byte

func (b HttpByte) IsAlpha() bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (b HttpByte) IsNumeric() bool {
	return b >= '0' && b <= '9'
}

func (b HttpByte) IsControl() bool {
	return b < 32 || b == 127
}

func (b HttpByte) IsUSAscii() bool {
	return b < 128
}

func (b HttpByte) IsTSpecial() bool {
	tSpecials := []HttpByte{'(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}', ' ', '\t'}
	return slices.Contains(tSpecials, b)
}

// IsTChar reports whether b may appear in a token (method, header name).
func (b HttpByte) IsTChar() bool {
	return b.IsUSAscii() && !b.IsControl() && !b.IsTSpecial()
}

// IsFieldByte reports whether b may appear in a header value or reason
// phrase. Horizontal tab and obs-text are allowed.
func (b HttpByte) IsFieldByte() bool {
	return b == '\t' || !b.IsControl()
}

func ValidateToken(t string) error {
	if len(t) == 0 {
		return fmt.Errorf("token cannot be empty")
	}

	for i := 0; i < len(t); i++ {
		c := HttpByte(t[i])
		if c.IsControl() {
			return fmt.Errorf("token cannot contain control character (%q)", t)
		}
		if !c.IsUSAscii() {
			return fmt.Errorf("token cannot contain extended ascii characters (%q)", t)
		}
		if c.IsTSpecial() {
			return fmt.Errorf("token contains invalid symbol (%q)", t)
		}
	}

	return nil
}

// ValidateText checks a header value or reason phrase.
func ValidateText(t string) error {
	for i := 0; i < len(t); i++ {
		if !HttpByte(t[i]).IsFieldByte() {
			return fmt.Errorf("contains invalid control characters (%q)", t)
		}
	}

	return nil
}

// ValidateTarget checks a request-target. No normalization is attempted, only
// the bytes that would break the request line are rejected.
func ValidateTarget(t string) error {
	if len(t) == 0 {
		return fmt.Errorf("request target cannot be empty")
	}

	for i := 0; i < len(t); i++ {
		c := HttpByte(t[i])
		if c.IsControl() || c == ' ' {
			return fmt.Errorf("request target contains invalid character (%q)", t)
		}
	}

	return nil
}

// ValidateVersion accepts HTTP/1.0 and HTTP/1.1.
func ValidateVersion(v string) error {
	if len(v) != len(HttpPrefix)+3 {
		return fmt.Errorf("incomplete version (%q)", v)
	}

	if v[:len(HttpPrefix)] != HttpPrefix {
		return fmt.Errorf("wrong protocol (%q)", v)
	}

	digits := v[len(HttpPrefix):]
	if !HttpByte(digits[0]).IsNumeric() || digits[1] != '.' || !HttpByte(digits[2]).IsNumeric() {
		return fmt.Errorf("malformed version number (%q)", v)
	}

	if digits[0] != '1' || digits[2] > '1' {
		return fmt.Errorf("unsupported version (%q)", v)
	}

	return nil
}

// ParseStatusCode parses a three digit status code.
func ParseStatusCode(s string) (int, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("status code must be three digits (%q)", s)
	}

	for i := 0; i < len(s); i++ {
		if !HttpByte(s[i]).IsNumeric() {
			return 0, fmt.Errorf("status code contains non-digit (%q)", s)
		}
	}

	code, _ := strconv.Atoi(s)
	if code < 100 {
		return 0, fmt.Errorf("status code out of range (%q)", s)
	}

	return code, nil
}

// ParseLength parses a non-negative decimal integer made of digits only, as
// used by Content-Length.
func ParseLength(s string) (int64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("length cannot be empty")
	}

	for i := 0; i < len(s); i++ {
		if !HttpByte(s[i]).IsNumeric() {
			return 0, fmt.Errorf("length must contain only digits (%q)", s)
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("length must fit a signed 64-bit integer (%q)", s)
	}

	return n, nil
}
