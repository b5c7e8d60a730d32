// Package ptr provides pointer helpers for optional API fields.
package ptr

// Bool returns a pointer to the given bool value.
func Bool(b bool) *bool { return &b }

// To returns a pointer to v.
func To[T any](v T) *T { return &v }
