// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"fmt"
	"strings"
)

// Enum is satisfied by the integer-coded enums of the model package.
type Enum interface {
	~int
	fmt.Stringer
}

// EnumToString renders an enum as "1 - Time attack, 2 - Drag".
//
// Used in API documentation so clients can see the meaning of each code.
func EnumToString[T Enum](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%d - %s", int(v), v.String()))
	}
	return strings.Join(parts, ", ")
}

// EnumCodes returns the numeric codes of values.
func EnumCodes[T ~int](values []T) []int {
	codes := make([]int, 0, len(values))
	for _, v := range values {
		codes = append(codes, int(v))
	}
	return codes
}

// PadEnd right-pads s with filler until it is width runes long.
// Strings already at or beyond width are returned unchanged.
func PadEnd(s string, width int, filler rune) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(filler), width-n)
}
