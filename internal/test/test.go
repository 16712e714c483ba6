package test

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/ava12/ll1"
)

func fatalf(t *testing.T, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectString(t *testing.T, expected, got string) {
	t.Helper()
	Expect(t, expected == got, fmt.Sprintf("%q", expected), fmt.Sprintf("%q", got))
}

// ExpectStrings compares string slices, order matters.
func ExpectStrings(t *testing.T, expected, got []string) {
	t.Helper()
	equal := len(expected) == len(got)
	for i := 0; equal && i < len(got); i++ {
		equal = expected[i] == got[i]
	}
	Expect(t, equal, "["+strings.Join(expected, " ")+"]", "["+strings.Join(got, " ")+"]")
}

func ExpectInts(t *testing.T, expected, got []int) {
	t.Helper()
	equal := len(expected) == len(got)
	for i := 0; equal && i < len(got); i++ {
		equal = expected[i] == got[i]
	}
	Expect(t, equal, expected, got)
}

func ExpectNoError(t *testing.T, e error) {
	t.Helper()
	if e != nil {
		fatalf(t, "unexpected error: %s", e)
	}
}

func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	if e != nil {
		ee, valid := e.(*ll1.Error)
		if valid && ee.Code == expected {
			return
		}
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
}
