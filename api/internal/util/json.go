package util

import "strings"

// StripCodeFences removes a ```json / ``` wrapper some models put around
// their output even when asked for bare JSON.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
