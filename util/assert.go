package util

import "fmt"

// Assert panics if v is false. It guards internal invariants that
// well-formed compiler state must never violate — not user-facing input
// errors, which always flow through an ErrorList instead.
func Assert(v bool, format string, args ...any) {
	if !v {
		panic(fmt.Sprintf("assertion failed: %s", fmt.Sprintf(format, args...)))
	}
}
