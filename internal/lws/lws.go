// Package lws handles the optional whitespace (SP and HTAB) that may surround
// a header field value.
package lws

const (
	SP = ' '
	HT = '\t'
	CR = '\r'
	LF = '\n'
)

func isWhitespace(b byte) bool {
	return b == SP || b == HT
}

// Check reports whether s[i] starts a run of whitespace and returns the index
// of the first byte after that run.
func Check(s string, i int) (bool, int) {
	if i >= len(s) || !isWhitespace(s[i]) {
		return false, i
	}

	next := i + 1
	for next < len(s) && isWhitespace(s[next]) {
		next++
	}

	return true, next
}

// Folded reports whether line is an obs-fold continuation of the previous
// header line.
func Folded(line []byte) bool {
	return len(line) > 0 && isWhitespace(line[0])
}

func TrimLeft(s string) string {
	_, first := Check(s, 0)
	return s[first:]
}

func TrimRight(s string) string {
	last := len(s)
	for last > 0 && isWhitespace(s[last-1]) {
		last--
	}

	return s[:last]
}

func Trim(s string) string {
	return TrimRight(TrimLeft(s))
}
