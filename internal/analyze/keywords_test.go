package analyze

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywordsRanksByFrequency(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("sync google sheets data to notion, sync the sheets")
	want := []string{"sync", "sheets", "google", "data", "notion"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractKeywordsDropsStopwords(t *testing.T) {
	t.Parallel()

	got := ExtractKeywords("is there a tool for the team and for me")
	for _, kw := range got {
		switch kw {
		case "is", "there", "a", "for", "the", "and", "me":
			t.Fatalf("stopword %q leaked into keywords: %v", kw, got)
		}
	}
}

func TestExtractKeywordsCapsAtTen(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliett", "kilo", "lima",
	}, " ")
	if got := ExtractKeywords(text); len(got) != 10 {
		t.Fatalf("expected 10 keywords, got %d", len(got))
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	t.Parallel()

	text := "monitor alerts and monitor uptime with alerts dashboard"
	first := ExtractKeywords(text)
	for i := 0; i < 20; i++ {
		if got := ExtractKeywords(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("keyword extraction not deterministic: %v vs %v", got, first)
		}
	}
}
