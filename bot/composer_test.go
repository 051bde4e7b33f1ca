package bot

import (
	"context"
	"strings"
	"testing"

	"hostel-agent/knowledge"

	"go.uber.org/zap"
)

type fakeFacts struct {
	answer     string
	similarity float64
	err        error
	calls      int
}

func (f *fakeFacts) Answer(_ context.Context, _ string) (string, float64, error) {
	f.calls++
	return f.answer, f.similarity, f.err
}

type fakeKB struct {
	result knowledge.Result
	err    error
	calls  int
}

func (f *fakeKB) Answer(_ context.Context, _ string) (knowledge.Result, error) {
	f.calls++
	return f.result, f.err
}

type mapCache struct {
	data map[string]string
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]string)} }

func (m *mapCache) Get(_ context.Context, query string) (string, bool) {
	v, ok := m.data[query]
	return v, ok
}

func (m *mapCache) Set(_ context.Context, query, response string) {
	m.data[query] = response
}

func TestGreetingSkipsAnswerers(t *testing.T) {
	for _, msg := range []string{"hi", " HELLO ", "Good Morning", "hey", "hai", "good evening"} {
		facts := &fakeFacts{answer: "The total students is 412.", similarity: 0.9}
		kb := &fakeKB{}
		c := NewComposer(facts, kb, nil, zap.NewNop())

		got := c.Respond(context.Background(), msg)
		if got != GreetingReply {
			t.Errorf("Respond(%q) = %q, want greeting reply", msg, got)
		}
		if facts.calls != 0 || kb.calls != 0 {
			t.Errorf("Respond(%q) invoked answerers (facts=%d, kb=%d)", msg, facts.calls, kb.calls)
		}
	}
}

func TestFallbackWhenNothingSurvives(t *testing.T) {
	c := NewComposer(&fakeFacts{}, &fakeKB{}, nil, zap.NewNop())

	got := c.Respond(context.Background(), "swimming pool depth")
	if got != FallbackReply {
		t.Errorf("got %q, want exact fallback string", got)
	}
}

func TestFailurePhrasedFactAnswerRejected(t *testing.T) {
	facts := &fakeFacts{answer: "Sorry, students data is unavailable", similarity: 0.95}
	c := NewComposer(facts, &fakeKB{}, nil, zap.NewNop())

	got := c.Respond(context.Background(), "how many students")
	if got != FallbackReply {
		t.Errorf("got %q, want fallback despite high similarity", got)
	}
}

func TestZeroSignificantTokensForcesFallback(t *testing.T) {
	facts := &fakeFacts{answer: "The total students is 412.", similarity: 0.95}
	kb := &fakeKB{result: knowledge.Result{Text: "The mess serves dinner 19:30-21:00."}}
	c := NewComposer(facts, kb, nil, zap.NewNop())

	// No token longer than two characters, and not a greeting.
	got := c.Respond(context.Background(), "a bc de")
	if got != FallbackReply {
		t.Errorf("got %q, want fallback for insignificant query", got)
	}
}

func TestComposesBothSourcesInOrder(t *testing.T) {
	facts := &fakeFacts{answer: "The mess fee per month is 3200.", similarity: 0.8}
	kb := &fakeKB{result: knowledge.Result{
		Text:  "The mess serves dinner 19:30-21:00.",
		Link:  "https://hostel.example.com/mess",
		Image: "https://hostel.example.com/mess.png",
	}}
	c := NewComposer(facts, kb, nil, zap.NewNop())

	got := c.Respond(context.Background(), "mess fee and dinner time")

	want := strings.Join([]string{
		"The mess fee per month is 3200.",
		"The mess serves dinner 19:30-21:00.",
		"🔗 https://hostel.example.com/mess",
		"🖼️ https://hostel.example.com/mess.png",
	}, "\n\n")
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestRejectedKnowledgeTextDropsLinkAndImage(t *testing.T) {
	facts := &fakeFacts{answer: "The laundry room is in Block B.", similarity: 0.8}
	kb := &fakeKB{result: knowledge.Result{
		Text:  "ok", // too short to pass the filter
		Link:  "https://hostel.example.com/laundry",
		Image: "https://hostel.example.com/laundry.png",
	}}
	c := NewComposer(facts, kb, nil, zap.NewNop())

	got := c.Respond(context.Background(), "laundry room")
	if got != "The laundry room is in Block B." {
		t.Errorf("got %q, want fact answer only", got)
	}
}

func TestAnswererErrorTreatedAsAbsent(t *testing.T) {
	facts := &fakeFacts{err: context.DeadlineExceeded}
	kb := &fakeKB{result: knowledge.Result{Text: "Visitors are allowed on weekends."}}
	c := NewComposer(facts, kb, nil, zap.NewNop())

	got := c.Respond(context.Background(), "visitors allowed")
	if got != "Visitors are allowed on weekends." {
		t.Errorf("got %q, want knowledge answer despite fact error", got)
	}
}

func TestSecondIdenticalQueryServedFromCache(t *testing.T) {
	facts := &fakeFacts{answer: "The total students is 412.", similarity: 0.9}
	kb := &fakeKB{}
	c := NewComposer(facts, kb, newMapCache(), zap.NewNop())

	first := c.Respond(context.Background(), "total students")
	second := c.Respond(context.Background(), "Total   STUDENTS")

	if first != second {
		t.Errorf("cached reply differs: %q vs %q", first, second)
	}
	if facts.calls != 1 {
		t.Errorf("fact answerer called %d times, want 1", facts.calls)
	}
}

func TestFallbackIsNotCached(t *testing.T) {
	store := newMapCache()
	c := NewComposer(&fakeFacts{}, &fakeKB{}, store, zap.NewNop())

	c.Respond(context.Background(), "swimming pool depth")
	if len(store.data) != 0 {
		t.Error("fallback replies must not be cached")
	}
}
