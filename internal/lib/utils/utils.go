// Package utils contains small generic helpers used across the project.
package utils

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Removed returns the elements of before that are missing from after,
// preserving their order.
func Removed[T comparable](before, after []T) []T {
	keep := make(map[T]struct{}, len(after))
	for _, v := range after {
		keep[v] = struct{}{}
	}

	var out []T
	for _, v := range before {
		if _, ok := keep[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
