package utils

import (
	"regexp"
	"strings"
)

var controlCharsRe = regexp.MustCompile(`\p{C}+`)

// Sanitize trims whitespace and strips control characters from user input.
func Sanitize(s string) string {
	return controlCharsRe.ReplaceAllString(strings.TrimSpace(s), "")
}

// promptInjectionMarkers are request fragments rejected before any model
// call. Matching is case-insensitive substring containment.
var promptInjectionMarkers = []string{
	"ignore previous",
	"system:",
	"bearer ",
	"sk-",
	"override",
	"jailbreak",
}

// IsPromptInjection reports whether a question carries a known injection
// marker.
func IsPromptInjection(q string) bool {
	lower := strings.ToLower(q)
	for _, marker := range promptInjectionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
