package analyze

import (
	"math"
	"strings"
	"testing"

	"DemandScout/internal/domain"
)

func TestScoreOverallIsWeightedSum(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	texts := []string{
		"need a subscription api to automate reports, would pay monthly",
		"simple cli",
		"looking for sheets syncing into notion",
		strings.Repeat("urgent need for cloud saas automation ", 15),
	}

	for _, text := range texts {
		for _, cls := range []Classification{
			{domain.ToolWebApp, domain.LevelHigh, domain.LevelLow},
			{domain.ToolCLITool, domain.LevelLow, domain.LevelHigh},
			{domain.ToolUnknown, domain.LevelMedium, domain.LevelMedium},
		} {
			scores := s.Score(text, cls)
			want := round1(0.25*scores.DemandStrength +
				0.20*scores.MarketSize +
				0.25*scores.PaymentWillingness +
				0.15*scores.TechnicalFeasibility +
				0.15*scores.PassiveIncomeFit)
			if math.Abs(scores.Overall-want) > 1e-9 {
				t.Errorf("overall %.2f not recomputable from sub-scores (want %.2f) for %q/%+v",
					scores.Overall, want, text, cls)
			}
		}
	}
}

func TestScoreSubScoresStayInRange(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	// All five passive-income keywords plus a passive-friendly tool type
	// would reach 12 before clamping.
	scores := s.Score("subscription saas cloud automation api", Classification{
		ToolType:            domain.ToolWebApp,
		PaymentPotential:    domain.LevelHigh,
		TechnicalComplexity: domain.LevelLow,
	})
	if scores.PassiveIncomeFit != 10.0 {
		t.Fatalf("passive income fit should clamp to 10, got %.1f", scores.PassiveIncomeFit)
	}

	for name, v := range map[string]float64{
		"demand_strength":       scores.DemandStrength,
		"market_size":           scores.MarketSize,
		"payment_willingness":   scores.PaymentWillingness,
		"technical_feasibility": scores.TechnicalFeasibility,
		"passive_income_fit":    scores.PassiveIncomeFit,
		"overall":               scores.Overall,
	} {
		if v < 0 || v > 10 {
			t.Errorf("%s out of range: %.2f", name, v)
		}
	}
}

func TestScoreDemandStrengthSignals(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	cls := Classification{domain.ToolUnknown, domain.LevelMedium, domain.LevelMedium}

	// Five words: -1.0 for the short text, +0.5 for "need".
	short := s.Score("need sheets synced into notion", cls)
	if short.DemandStrength != 4.5 {
		t.Fatalf("expected 4.5 for short urgent text, got %.1f", short.DemandStrength)
	}

	// Over 50 words: +1.0 on top of the base.
	long := s.Score(strings.Repeat("sheets notion sync workflow spreadsheet ", 11), cls)
	if long.DemandStrength != 6.0 {
		t.Fatalf("expected 6.0 for long text, got %.1f", long.DemandStrength)
	}
}

func TestScoreMarketSizeByToolType(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	cls := func(tool domain.ToolType) Classification {
		return Classification{tool, domain.LevelMedium, domain.LevelMedium}
	}
	text := "some medium length request without keywords at all here measured"

	if got := s.Score(text, cls(domain.ToolWebApp)).MarketSize; got != 8.0 {
		t.Fatalf("broad-market tool should score 8.0, got %.1f", got)
	}
	if got := s.Score(text, cls(domain.ToolCLITool)).MarketSize; got != 5.0 {
		t.Fatalf("niche tool should score 5.0, got %.1f", got)
	}
	if got := s.Score(text, cls(domain.ToolUnknown)).MarketSize; got != 6.0 {
		t.Fatalf("unknown tool should keep base 6.0, got %.1f", got)
	}
}

func TestScoreLookups(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	text := "whatever"

	high := s.Score(text, Classification{domain.ToolUnknown, domain.LevelHigh, domain.LevelHigh})
	if high.PaymentWillingness != 8.0 {
		t.Fatalf("high payment potential should map to 8.0, got %.1f", high.PaymentWillingness)
	}
	if high.TechnicalFeasibility != 3.0 {
		t.Fatalf("high complexity should map to feasibility 3.0, got %.1f", high.TechnicalFeasibility)
	}

	low := s.Score(text, Classification{domain.ToolUnknown, domain.LevelLow, domain.LevelLow})
	if low.PaymentWillingness != 2.0 {
		t.Fatalf("low payment potential should map to 2.0, got %.1f", low.PaymentWillingness)
	}
	if low.TechnicalFeasibility != 9.0 {
		t.Fatalf("low complexity should map to feasibility 9.0, got %.1f", low.TechnicalFeasibility)
	}
}

func TestRecommendPricingAndPriority(t *testing.T) {
	t.Parallel()

	s := NewScorer()

	analysis := domain.Analysis{
		ToolType:            domain.ToolWebApp,
		PaymentPotential:    domain.LevelHigh,
		TechnicalComplexity: domain.LevelHigh,
		Scores:              domain.ScoreSet{Overall: 8.0},
	}
	rec := s.Recommend(analysis)

	// 29.99 * (8.0/10 * 1.5) = 35.988 -> 35.99
	if rec.RecommendedPricing != "$35.99/month" {
		t.Fatalf("unexpected pricing: %s", rec.RecommendedPricing)
	}
	if rec.Priority != domain.LevelHigh {
		t.Fatalf("overall 8.0 should be high priority, got %s", rec.Priority)
	}
	if rec.DevTimeWeeks != 8 {
		t.Fatalf("high complexity should estimate 8 weeks, got %d", rec.DevTimeWeeks)
	}
	// Base web_app stack (4 entries) plus 4 high-complexity additions.
	if len(rec.SuggestedTechStack) != 8 {
		t.Fatalf("expected 8 stack entries, got %d: %v", len(rec.SuggestedTechStack), rec.SuggestedTechStack)
	}

	mid := s.Recommend(domain.Analysis{
		ToolType:            domain.ToolUnknown,
		PaymentPotential:    domain.LevelMedium,
		TechnicalComplexity: domain.LevelMedium,
		Scores:              domain.ScoreSet{Overall: 4.0},
	})
	// 14.99 * 0.6 = 8.994 -> 8.99
	if mid.RecommendedPricing != "$8.99/month" {
		t.Fatalf("unexpected pricing: %s", mid.RecommendedPricing)
	}
	if mid.Priority != domain.LevelLow {
		t.Fatalf("overall 4.0 should be low priority, got %s", mid.Priority)
	}
	if mid.DevTimeWeeks != 4 {
		t.Fatalf("medium complexity should estimate 4 weeks, got %d", mid.DevTimeWeeks)
	}
	// Generic fallback stack (3 entries) plus 2 medium additions.
	if len(mid.SuggestedTechStack) != 5 {
		t.Fatalf("expected 5 stack entries, got %d: %v", len(mid.SuggestedTechStack), mid.SuggestedTechStack)
	}
	if len(mid.MVPFeatures) == 0 {
		t.Fatal("fallback MVP feature list should not be empty")
	}
}

func TestRecommendPriorityThresholds(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	base := domain.Analysis{PaymentPotential: domain.LevelMedium, TechnicalComplexity: domain.LevelMedium}

	cases := []struct {
		overall float64
		want    domain.PotentialLevel
	}{
		{7.0, domain.LevelHigh},
		{6.9, domain.LevelMedium},
		{5.0, domain.LevelMedium},
		{4.9, domain.LevelLow},
	}
	for _, tc := range cases {
		analysis := base
		analysis.Scores.Overall = tc.overall
		if got := s.Recommend(analysis).Priority; got != tc.want {
			t.Errorf("overall %.1f: priority %s, want %s", tc.overall, got, tc.want)
		}
	}
}
