package knowledge

import "context"

// Result is the (text, link, image) triple a knowledge lookup produces.
// Any field may be empty.
type Result struct {
	Text  string `yaml:"text"`
	Link  string `yaml:"link"`
	Image string `yaml:"image"`
}

// Answerer is the local-knowledge contract the composer consumes: normalized
// query in, Result out. The matching strategy behind it is deliberately not
// part of the contract.
type Answerer interface {
	Answer(ctx context.Context, query string) (Result, error)
}
