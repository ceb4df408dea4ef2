// Package assert holds the comparison helpers shared by the package tests.
package assert

import (
	"errors"
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func Equal[T comparable](t *testing.T, actual, expected T) {
	t.Helper()

	tassert.Equal(t, expected, actual)
}

func SliceEqual[T comparable](t *testing.T, actual, expected []T) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Errorf("different sizes. got: (%v, len: %d), want: (%v, len: %d)", actual, len(actual), expected, len(expected))
		return
	}

	for i := 0; i < len(actual); i++ {
		Equal(t, actual[i], expected[i])
	}
}

func BytesEqual(t *testing.T, actual, expected []byte) {
	t.Helper()

	tassert.Equal(t, string(expected), string(actual))
}

func ErrorStatus(t *testing.T, err error, expectError bool) bool {
	t.Helper()

	if err != nil {
		if !expectError {
			t.Errorf("got unexpected error: %s", err.Error())
		}
		return false
	}

	if expectError {
		t.Error("did not get expected error")
		return false
	}

	return true
}

// ErrorAs fails the test unless err has a T somewhere in its chain.
func ErrorAs[T error](t *testing.T, err error) T {
	t.Helper()

	var target T
	if !errors.As(err, &target) {
		t.Errorf("error %v (%T) is not a %T", err, err, target)
	}
	return target
}

func ErrorIs(t *testing.T, err, target error) {
	t.Helper()

	tassert.ErrorIs(t, err, target)
}
