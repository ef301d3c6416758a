package util

import (
	"strings"
)

// SanitizeFileName makes name safe for a quoted Content-Disposition filename.
// Path separators, quotes and control characters are replaced; an empty
// result falls back to "download".
func SanitizeFileName(name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" || strings.Trim(s, ".") == "" {
		return "download"
	}
	return s
}
