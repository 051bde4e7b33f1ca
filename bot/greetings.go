package bot

import "strings"

// Fixed greeting list. Matching is exact after trimming and lowercasing;
// greetings bypass both answer sources entirely.
var greetings = map[string]struct{}{
	"hi":             {},
	"hello":          {},
	"hey":            {},
	"hai":            {},
	"good morning":   {},
	"good afternoon": {},
	"good evening":   {},
}

// IsGreeting reports whether message is one of the fixed greetings.
func IsGreeting(message string) bool {
	_, ok := greetings[strings.ToLower(strings.TrimSpace(message))]
	return ok
}
