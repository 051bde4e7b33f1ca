package facts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hostel-agent/config"
	apperrors "hostel-agent/errors"

	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

const collectionName = "hostel-facts"

// Engine answers queries by nearest-question lookup over the fact table.
// The collection is embedded once at startup and read-only afterwards, so
// concurrent queries need no locking.
type Engine struct {
	cfg        *config.Config
	collection *chromem.Collection
	table      []Fact
	logger     *zap.Logger
}

// New embeds every fact question into an in-memory vector collection.
// Any failure here is fatal to startup by design.
func New(ctx context.Context, cfg *config.Config, table []Fact, embedder chromem.EmbeddingFunc, logger *zap.Logger) (*Engine, error) {
	if len(table) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "fact table is empty")
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, embedder)
	if err != nil {
		return nil, fmt.Errorf("create fact collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(table))
	for i, fact := range table {
		docs = append(docs, chromem.Document{
			ID:       strconv.Itoa(i),
			Content:  fact.Question,
			Metadata: map[string]string{"answer": fact.Answer},
		})
	}
	if err := collection.AddDocuments(ctx, docs, 2); err != nil {
		return nil, fmt.Errorf("embed fact questions: %w", err)
	}

	logger.Info("Fact engine ready", zap.Int("facts", len(table)))
	return &Engine{cfg: cfg, collection: collection, table: table, logger: logger}, nil
}

// Answer returns the stored answer of the nearest fact question when its
// similarity clears the configured threshold, along with the score. An empty
// answer means no match; the lexical overlap gate is applied downstream by
// the shared relevance policy.
func (e *Engine) Answer(ctx context.Context, query string) (string, float64, error) {
	if strings.TrimSpace(query) == "" {
		return "", 0, nil
	}

	results, err := e.collection.Query(ctx, query, 1, nil, nil)
	if err != nil {
		return "", 0, fmt.Errorf("query fact collection: %w", err)
	}
	if len(results) == 0 {
		return "", 0, nil
	}

	best := results[0]
	score := float64(best.Similarity)
	if score < e.cfg.SimilarityThreshold {
		e.logger.Debug("Best fact match below threshold",
			zap.String("query", query),
			zap.String("question", best.Content),
			zap.Float64("similarity", score))
		return "", score, nil
	}
	return best.Metadata["answer"], score, nil
}

// Size returns the number of facts loaded.
func (e *Engine) Size() int {
	return len(e.table)
}
