package knowledge

import (
	"context"
	"os"
	"strings"

	apperrors "hostel-agent/errors"
	"hostel-agent/relevance"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type entry struct {
	Topic    string   `yaml:"topic"`
	Keywords []string `yaml:"keywords"`
	Text     string   `yaml:"text"`
	Link     string   `yaml:"link"`
	Image    string   `yaml:"image"`
}

type baseFile struct {
	Entries []entry `yaml:"entries"`
}

// Base answers from a keyword-tagged entry list loaded from a YAML file at
// startup. Entries are scored by significant-token overlap with their
// keywords; the best non-zero score wins, ties go to the earlier entry.
type Base struct {
	entries []entry
	logger  *zap.Logger
}

// Load reads and validates the knowledge base file.
func Load(path string, logger *zap.Logger) (*Base, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrKnowledgeBase, err.Error())
	}

	var bf baseFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrKnowledgeBase, err.Error())
	}
	if len(bf.Entries) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrKnowledgeBase, "no entries in "+path)
	}

	// Lowercase keywords once so per-query matching stays allocation-light.
	for i := range bf.Entries {
		for j, kw := range bf.Entries[i].Keywords {
			bf.Entries[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}

	logger.Info("Knowledge base loaded", zap.String("path", path), zap.Int("entries", len(bf.Entries)))
	return &Base{entries: bf.Entries, logger: logger}, nil
}

// Answer returns the best-matching entry's triple, or an empty Result when
// no entry shares a keyword with the query.
func (b *Base) Answer(ctx context.Context, query string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tokens := relevance.SignificantTokens(query)
	if len(tokens) == 0 {
		return Result{}, nil
	}

	bestScore := 0
	bestIdx := -1
	for i, e := range b.entries {
		score := e.score(tokens)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Result{}, nil
	}

	match := b.entries[bestIdx]
	b.logger.Debug("Knowledge base match",
		zap.String("topic", match.Topic),
		zap.Int("score", bestScore))
	return Result{Text: match.Text, Link: match.Link, Image: match.Image}, nil
}

// score counts query tokens that hit one of the entry's keywords. A token
// hits when it equals the keyword or either contains the other, so "timings"
// still matches the keyword "timing".
func (e entry) score(tokens []string) int {
	score := 0
	for _, token := range tokens {
		for _, kw := range e.Keywords {
			if kw == "" {
				continue
			}
			if token == kw || strings.Contains(token, kw) || strings.Contains(kw, token) {
				score++
				break
			}
		}
	}
	return score
}
