package services

import (
	"regexp"
	"strings"
)

var (
	reNoise  = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases text, drops everything that is not a letter, digit or
// whitespace, and collapses whitespace runs into single spaces.
func NormalizeText(text string) string {
	text = reNoise.ReplaceAllString(text, "")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}
