// Package stacktrace shortens runtime/debug stack dumps for logs.
package stacktrace

import "strings"

// InternalPaths returns the "internal/...go:line" locations found in a
// debug.Stack dump, outermost call last.
func InternalPaths(stack []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(stack), "\n") {
		loc, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}
		if _, rel, ok := strings.Cut(loc, "/internal/"); ok {
			paths = append(paths, "internal/"+rel)
		}
	}
	return paths
}

// Frames is InternalPaths with the full dump as fallback, one entry per line,
// for panics raised entirely outside this module.
func Frames(stack []byte) []string {
	if paths := InternalPaths(stack); len(paths) > 0 {
		return paths
	}
	return strings.Split(strings.TrimSpace(string(stack)), "\n")
}
