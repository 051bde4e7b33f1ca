package relevance

import "strings"

// Policy is the shared quality bar applied to every answer source before
// composition. A single value is passed to all filter sites so the failure
// blocklist cannot drift between them.
type Policy struct {
	failurePhrases []string
}

func NewPolicy() Policy {
	return Policy{
		failurePhrases: []string{
			"sorry",
			"couldn't understand",
			"could not understand",
			"not understand",
			"no data",
			"not available",
		},
	}
}

// Valid reports whether answer is non-empty, longer than three characters
// after trimming, and free of failure phrasing.
func (p Policy) Valid(answer string) bool {
	trimmed := strings.TrimSpace(answer)
	if len(trimmed) <= 3 {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range p.failurePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// Meaningful applies Valid plus the lexical overlap gate: at least one
// significant token of the query must appear as a substring of the answer.
// A query with no significant tokens rejects every answer.
//
// TODO: overlap-only relevance rejects an answer that rephrases the query
// without sharing a token with it; needs a synonym-aware gate.
func (p Policy) Meaningful(answer, query string) bool {
	if !p.Valid(answer) {
		return false
	}
	tokens := SignificantTokens(query)
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(answer)
	for _, token := range tokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
