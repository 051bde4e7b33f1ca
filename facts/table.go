package facts

import (
	"fmt"

	"hostel-agent/dashboard"
)

// Fact is one question/answer pair derived from a dashboard summary entry.
// The table is immutable once built.
type Fact struct {
	Question string
	Answer   string
}

// BuildTable deterministically expands every summary entry into a question
// phrased the way users ask it and a full-sentence answer. Questions are
// generated in normalized form (lowercase, single spaces) so they live in
// the same space as normalized queries.
func BuildTable(summary *dashboard.Summary) []Fact {
	if summary == nil {
		return nil
	}
	table := make([]Fact, 0, len(summary.Entries))
	for _, entry := range summary.Entries {
		words := dashboard.HumanizeKey(entry.Key)
		if words == "" {
			continue
		}
		table = append(table, Fact{
			Question: fmt.Sprintf("what is the %s", words),
			Answer:   fmt.Sprintf("The %s is %s.", words, entry.Value),
		})
	}
	return table
}
