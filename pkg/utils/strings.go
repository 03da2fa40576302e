package utils

import (
	"strconv"
)

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseID parses a positive or zero int64 path id.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// ParseSiteID parses a site path segment. "current" resolves to the given
// selected site.
func ParseSiteID(s string, selected int64) (int64, bool) {
	if s == "current" {
		return selected, selected > 0
	}
	id, ok := ParseID(s)
	return id, ok && id > 0
}
