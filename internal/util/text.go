package util

import "strings"

// SanitizeText strips invalid UTF-8 sequences and NUL bytes so uploaded file
// content can be embedded in JSON responses and stream events.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}
