// Package textproc cleans raw extracted text and splits it into
// individual problems ahead of classification.
package textproc

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Word characters, digits, whitespace and common math/punctuation
	// operators survive; everything else is OCR noise.
	disallowedRe = regexp.MustCompile(`[^\w\s\d+\-*/=().,?!:;"']`)
)

// Clean strips characters outside the allow-list, collapses whitespace
// runs to single spaces and trims the result. Stripping happens first so
// removed characters cannot leave double spaces behind; Clean is
// idempotent.
func Clean(text string) string {
	text = disallowedRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
