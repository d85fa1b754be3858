package notes

import (
	"strings"
	"unicode"
)

// SanitizeFilename replaces characters that are invalid in file names on
// common filesystems (/ \ : * ? " < > | and control characters) with "_"
// and trims leading and trailing spaces and dots. Unicode letters are kept.
func SanitizeFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, name)

	return strings.Trim(mapped, " .")
}
