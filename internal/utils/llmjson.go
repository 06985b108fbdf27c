package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DecodeModelJSON parses the JSON object a completion model was asked to
// produce. Models don't always comply with "respond only with JSON": the
// object may arrive wrapped in a markdown fence, surrounded by prose, or
// carrying trailing commas. Each recovery strategy is tried in turn.
func DecodeModelJSON(input string, target any) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty model output")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if fenced := stripMarkdownFence(input); fenced != "" {
		if err := json.Unmarshal([]byte(fenced), target); err == nil {
			return nil
		}
	}

	if obj := firstJSONObject(input); obj != "" {
		if err := json.Unmarshal([]byte(obj), target); err == nil {
			return nil
		}
		// Last resort: drop trailing commas, a frequent model slip.
		if err := json.Unmarshal([]byte(dropTrailingCommas(obj)), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no valid JSON object in model output: %s", Truncate(input, 100))
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// stripMarkdownFence unwraps ```json ... ``` or bare ``` ... ``` blocks.
func stripMarkdownFence(input string) string {
	matches := fenceRe.FindStringSubmatch(input)
	if len(matches) < 2 {
		return ""
	}
	content := strings.TrimSpace(matches[1])
	if strings.HasPrefix(content, "{") {
		return content
	}
	return ""
}

// firstJSONObject returns the first brace-balanced object in input,
// respecting string literals and escapes.
func firstJSONObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}
	rest := input[start:]

	depth := 0
	inString := false
	escape := false
	for i, ch := range rest {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return rest[:i+1]
			}
		}
	}
	return ""
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

func dropTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// Truncate shortens a string for log and error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
