// Package cmd contains shared helpers for gitredate commands.
package cmd

// GetOrPanic panics if err is not nil, otherwise returns v.
func GetOrPanic[T any](v T, err error) T {
	OrPanic(err)

	return v
}

// OrPanic panics if err is not nil.
func OrPanic(err error) {
	if err != nil {
		panic(err)
	}
}
