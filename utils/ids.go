package utils

import "strconv"

// ParseID normalizes a path/query identifier into the canonical uint id used
// across the data model. Zero means absent or malformed.
func ParseID(s string) uint {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
