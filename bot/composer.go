package bot

import (
	"context"
	"strings"

	"hostel-agent/cache"
	"hostel-agent/knowledge"
	"hostel-agent/relevance"

	"go.uber.org/zap"
)

const (
	// GreetingReply is returned for any fixed greeting without consulting
	// the answerers.
	GreetingReply = "👋 Hello! How can I help you with hostel information?"

	// FallbackReply is the single surfaced failure: returned verbatim when
	// neither answer source yields an accepted answer.
	FallbackReply = "❌ Sorry, I couldn't find an answer. Please ask more clearly or provide more details."
)

// FactAnswerer is the remote-fact side of the composer, implemented by the
// fact engine.
type FactAnswerer interface {
	Answer(ctx context.Context, query string) (answer string, similarity float64, err error)
}

// Composer merges the remote fact answerer and the local knowledge base
// into one reply per query. It holds no per-conversation state; every query
// is one-shot with no retries, and an answerer error is treated as an
// absent answer.
type Composer struct {
	facts  FactAnswerer
	kb     knowledge.Answerer
	policy relevance.Policy
	cache  cache.Store
	logger *zap.Logger
}

func NewComposer(facts FactAnswerer, kb knowledge.Answerer, store cache.Store, logger *zap.Logger) *Composer {
	return &Composer{
		facts:  facts,
		kb:     kb,
		policy: relevance.NewPolicy(),
		cache:  store,
		logger: logger,
	}
}

// Respond produces the reply for one user message.
func (c *Composer) Respond(ctx context.Context, message string) string {
	if IsGreeting(message) {
		return GreetingReply
	}

	// Normalize once; both answerers consume the same form.
	query := relevance.Normalize(message)

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, query); ok {
			c.logger.Debug("Answer cache hit", zap.String("query", query))
			return cached
		}
	}

	factAnswer := c.factAnswer(ctx, query)
	kbResult := c.knowledgeAnswer(ctx, query)

	var parts []string
	if factAnswer != "" {
		parts = append(parts, factAnswer)
	}
	if kbResult.Text != "" {
		parts = append(parts, kbResult.Text)
		if kbResult.Link != "" {
			parts = append(parts, "🔗 "+kbResult.Link)
		}
		if kbResult.Image != "" {
			parts = append(parts, "🖼️ "+kbResult.Image)
		}
	}

	if len(parts) == 0 {
		return FallbackReply
	}

	reply := strings.Join(parts, "\n\n")
	if c.cache != nil {
		c.cache.Set(ctx, query, reply)
	}
	return reply
}

func (c *Composer) factAnswer(ctx context.Context, query string) string {
	answer, similarity, err := c.facts.Answer(ctx, query)
	if err != nil {
		c.logger.Warn("Fact answerer failed", zap.Error(err))
		return ""
	}
	if answer == "" {
		return ""
	}
	// Double gate: the engine already enforced the similarity threshold,
	// the shared policy enforces lexical overlap and failure phrasing.
	if !c.policy.Meaningful(answer, query) {
		c.logger.Debug("Fact answer rejected by relevance filter",
			zap.String("query", query),
			zap.Float64("similarity", similarity))
		return ""
	}
	return answer
}

func (c *Composer) knowledgeAnswer(ctx context.Context, query string) knowledge.Result {
	result, err := c.kb.Answer(ctx, query)
	if err != nil {
		c.logger.Warn("Knowledge base lookup failed", zap.Error(err))
		return knowledge.Result{}
	}
	// Link and image ride along with the text; rejecting the text drops all three.
	if !c.policy.Meaningful(result.Text, query) {
		return knowledge.Result{}
	}
	return result
}
