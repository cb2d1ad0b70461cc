package storage

import (
	"strings"
	"testing"
	"unicode/utf8"

	"DemandScout/internal/domain"
)

func TestBudgetRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		potential domain.PotentialLevel
		want      string
	}{
		{domain.LevelHigh, "$20-50/month"},
		{domain.LevelMedium, "$10-30/month"},
		{domain.LevelLow, "$5-15/month"},
		{"", "$10-30/month"},
	}
	for _, tc := range cases {
		if got := budgetRange(tc.potential); got != tc.want {
			t.Errorf("budgetRange(%q) = %q, want %q", tc.potential, got, tc.want)
		}
	}
}

func TestMarketEstimate(t *testing.T) {
	t.Parallel()

	web := marketEstimate(domain.ToolWebApp)
	if web.searchVolume != 5000 || web.competitorUsers != 10000 || web.growthRate != 25.0 {
		t.Fatalf("unexpected web app estimate: %+v", web)
	}

	unknown := marketEstimate(domain.ToolUnknown)
	if unknown.searchVolume != 1500 {
		t.Fatalf("unexpected unknown estimate: %+v", unknown)
	}

	// Tool types without an explicit row fall back to the floor estimate.
	other := marketEstimate(domain.ToolProductivity)
	if other.searchVolume != 1000 || other.competitorUsers != 1500 {
		t.Fatalf("unexpected fallback estimate: %+v", other)
	}
}

func TestTagsKeepFirstFive(t *testing.T) {
	t.Parallel()

	keywords := []string{"a", "b", "c", "d", "e", "f", "g"}
	got := tags(keywords)
	if len(got) != 5 || got[4] != "e" {
		t.Fatalf("unexpected tags: %v", got)
	}

	short := tags([]string{"x", "y"})
	if len(short) != 2 {
		t.Fatalf("short keyword lists pass through, got %v", short)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 600)
	if got := truncate(long, 500); len(got) != 500 {
		t.Fatalf("expected 500 chars, got %d", len(got))
	}
	if got := truncate("short", 500); got != "short" {
		t.Fatalf("short strings pass through, got %q", got)
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	t.Parallel()

	// 200 three-byte runes; a byte cut at 500 would land mid-rune.
	long := strings.Repeat("日", 200)
	got := truncate(long, 500)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got[len(got)-6:])
	}
	if len(got) != 498 {
		t.Fatalf("expected a cut at the previous rune boundary (498 bytes), got %d", len(got))
	}
	if got != long[:498] {
		t.Fatal("truncate should be a prefix of the input")
	}
}

func TestSourceNameAndURL(t *testing.T) {
	t.Parallel()

	if got := sourceName(domain.PlatformHackerNews); got != "Hacker News Crawler" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := sourceName("reddit"); got != "reddit crawler" {
		t.Fatalf("unexpected fallback name %q", got)
	}
	if got := platformURL(domain.PlatformHackerNews); got != "https://news.ycombinator.com" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := platformURL("reddit"); got != "" {
		t.Fatalf("unknown platforms have no url, got %q", got)
	}
}
