package relevance

import "strings"

// Normalize lowercases a free-text query and collapses runs of whitespace to
// single spaces. Both answer sources consume the same normalized form, so a
// query is normalized exactly once per request. Empty input yields empty
// output.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SignificantTokens returns the whitespace-delimited words of s longer than
// two characters, lowercased. These are the only tokens that count for the
// lexical overlap gate.
func SignificantTokens(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if len(word) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
