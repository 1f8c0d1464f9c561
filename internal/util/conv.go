package util

import (
	"strconv"
)

// MustParseUint converts s to an unsigned integer, returning 0 when the
// value does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseScore converts a CSV score cell to a number. Missing or malformed
// cells count as 0 rather than failing the row.
func ParseScore(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
