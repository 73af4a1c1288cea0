package utils

import (
	"strings"
)

// SanitizeJSON cleans raw AI output to extract valid JSON
// It removes Markdown code blocks (```json ... ```) and whitespace
func SanitizeJSON(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}

	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}

// ExtractJSONObject pulls the first top-level JSON object out of text that
// may surround it with prose. It strips markdown fences, then takes the
// substring between the first '{' and the last '}'. If no brace pair exists
// the sanitized text is returned unchanged for the caller's decoder to judge.
func ExtractJSONObject(input string) string {
	cleaned := SanitizeJSON(input)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}
