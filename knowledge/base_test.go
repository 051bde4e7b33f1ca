package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const testBase = `
entries:
  - topic: mess timings
    keywords: [mess, food, dinner, timings]
    text: "The mess serves dinner 19:30-21:00."
    link: https://hostel.example.com/mess
  - topic: wifi access
    keywords: [wifi, internet, password]
    text: "Collect your WiFi login from the office."
    image: https://hostel.example.com/wifi.png
`

func writeTestBase(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test base: %v", err)
	}
	return path
}

func TestLoadAndAnswer(t *testing.T) {
	base, err := Load(writeTestBase(t, testBase), zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  Result
	}{
		{
			name:  "keyword_hit",
			query: "when is dinner served in the mess",
			want: Result{
				Text: "The mess serves dinner 19:30-21:00.",
				Link: "https://hostel.example.com/mess",
			},
		},
		{
			name:  "partial_token_hit",
			query: "wifi password please",
			want: Result{
				Text:  "Collect your WiFi login from the office.",
				Image: "https://hostel.example.com/wifi.png",
			},
		},
		{
			name:  "no_overlap",
			query: "library opening hours",
			want:  Result{},
		},
		{
			name:  "no_significant_tokens",
			query: "is it up",
			want:  Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.Answer(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("answer: %v", err)
			}
			if got != tt.want {
				t.Errorf("Answer(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyBase(t *testing.T) {
	if _, err := Load(writeTestBase(t, "entries: []\n"), zap.NewNop()); err == nil {
		t.Fatal("expected error for empty knowledge base")
	}
}
