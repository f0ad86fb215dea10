package domain

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// BoolFromPtrWithDefault returns the first non-nil *bool value, or the fallback.
func BoolFromPtrWithDefault(fallback bool, ptrs ...*bool) bool {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
