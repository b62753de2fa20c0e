package common

import "fmt"

// Assert panics with the formatted message when cond is false. It guards
// internal invariants only; caller mistakes are reported as errors.
func Assert(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}

func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// OneOf tells whether x equals any of candidates.
func OneOf[T comparable](x T, candidates ...T) bool {
	for _, c := range candidates {
		if x == c {
			return true
		}
	}
	return false
}
