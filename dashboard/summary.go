package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Summary is the flattened key/value snapshot of the dashboard payload.
// It is built once at startup and never mutated afterwards.
type Summary struct {
	Entries []Entry
}

// Entry is one key/value pair of the snapshot, value already rendered as
// display text.
type Entry struct {
	Key   string
	Value string
}

// summaryEnvelope mirrors the dashboard API response shape: a data object
// holding scalar facts keyed by field name.
type summaryEnvelope struct {
	Data map[string]any `json:"data"`
}

// toSummary flattens the envelope into sorted entries. Sorting by key keeps
// the fact table deterministic across runs regardless of JSON map order.
func (e summaryEnvelope) toSummary() *Summary {
	keys := make([]string, 0, len(e.Data))
	for key := range e.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summary := &Summary{Entries: make([]Entry, 0, len(keys))}
	for _, key := range keys {
		value := formatValue(e.Data[key])
		if value == "" {
			continue
		}
		summary.Entries = append(summary.Entries, Entry{Key: key, Value: value})
	}
	return summary
}

// formatValue renders a decoded JSON scalar as display text. Nested objects
// and arrays carry no single fact and are skipped.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// HumanizeKey converts camelCase, snake_case and kebab-case payload keys to
// space-separated lowercase words ("TotalStudents" -> "total students").
func HumanizeKey(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			// Word break before an upper rune that follows a lower/digit or
			// starts a new lowercase word; acronym runs stay glued ("TotalAC").
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
