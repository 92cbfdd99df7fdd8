// Package util provides small generic helpers shared across the signer
// packages: combining slices and testing party-id membership.
package util

// Concat combines multiple slices of the same type into a single slice.
func Concat[T any](arrs ...[]T) []T {
	var out []T
	for _, arr := range arrs {
		out = append(out, arr...)
	}
	return out
}

// Contains reports whether id is present in ids.
func Contains(ids []uint32, id uint32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns ids with every occurrence of id removed.
func Without(ids []uint32, id uint32) []uint32 {
	out := make([]uint32, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
