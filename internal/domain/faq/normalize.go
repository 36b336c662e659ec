package faq

import "strings"

// Normalize lowercases and trims text before it is stored or compared.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tokenize splits normalized text on whitespace runs.
func tokenize(s string) []string {
	return strings.Fields(s)
}
