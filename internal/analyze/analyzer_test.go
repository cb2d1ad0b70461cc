package analyze

import (
	"testing"

	"DemandScout/internal/domain"
)

func TestAnalyzeSheetsSyncRequest(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	record := a.Analyze(domain.DemandCandidate{
		SourcePost: domain.Post{
			Title:    "Looking for sheets syncing into Notion",
			URL:      "https://news.ycombinator.com/item?id=1",
			Platform: domain.PlatformHackerNews,
		},
		DemandType:    domain.DemandToolRequest,
		ExtractedText: "looking for sheets syncing into notion",
		Confidence:    0.7,
	})

	analysis := record.Analysis
	if analysis.ToolType != domain.ToolUnknown {
		t.Fatalf("no keyword hits should classify as unknown, got %s", analysis.ToolType)
	}
	if analysis.PaymentPotential != domain.LevelMedium {
		t.Fatalf("expected medium payment potential, got %s", analysis.PaymentPotential)
	}
	if analysis.Scores.PaymentWillingness != 5.0 {
		t.Fatalf("medium payment should score 5.0, got %.1f", analysis.Scores.PaymentWillingness)
	}
	if analysis.Confidence != 0.7 {
		t.Fatalf("analysis should carry candidate confidence, got %.2f", analysis.Confidence)
	}
	if analysis.Source.Platform != domain.PlatformHackerNews || analysis.Source.PostURL == "" {
		t.Fatalf("analysis should point back at the source post: %+v", analysis.Source)
	}
}

func TestAnalyzePaidAutomationSignal(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	record := a.Analyze(domain.DemandCandidate{
		ExtractedText: "would pay $20/month for automation via an api endpoint",
	})

	analysis := record.Analysis
	if analysis.PaymentPotential != domain.LevelHigh {
		t.Fatalf("payment keywords should classify high, got %s", analysis.PaymentPotential)
	}
	if analysis.Scores.PaymentWillingness != 8.0 {
		t.Fatalf("high payment should score 8.0, got %.1f", analysis.Scores.PaymentWillingness)
	}
	if analysis.ToolType != domain.ToolAPIService {
		t.Fatalf("api keywords should win the tool vote, got %s", analysis.ToolType)
	}
	// api_service is passive friendly: 5.0 base + api + automation + 2.0.
	if analysis.Scores.PassiveIncomeFit != 9.0 {
		t.Fatalf("expected passive income fit 9.0, got %.1f", analysis.Scores.PassiveIncomeFit)
	}
}
