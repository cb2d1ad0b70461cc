package analyze

import (
	"fmt"
	"math"
	"strings"

	"DemandScout/internal/domain"
)

// Score weights. Overall is always the weighted sum of the five sub-scores
// with these fixed weights, rounded to one decimal.
const (
	weightDemandStrength       = 0.25
	weightMarketSize           = 0.20
	weightPaymentWillingness   = 0.25
	weightTechnicalFeasibility = 0.15
	weightPassiveIncomeFit     = 0.15
)

var urgencyKeywords = []string{"need", "want", "must", "essential", "critical", "urgent"}

var passiveIncomeKeywords = []string{"subscription", "saas", "cloud", "automation", "api"}

// broadMarketTools address a general audience; nicheTools a narrow one.
var broadMarketTools = map[domain.ToolType]bool{
	domain.ToolWebApp:           true,
	domain.ToolBrowserExtension: true,
	domain.ToolMobileApp:        true,
	domain.ToolProductivity:     true,
}

var nicheTools = map[domain.ToolType]bool{
	domain.ToolCLITool:    true,
	domain.ToolDesktopApp: true,
}

// passiveFriendlyTools lend themselves to recurring, low-touch monetisation.
var passiveFriendlyTools = map[domain.ToolType]bool{
	domain.ToolWebApp:     true,
	domain.ToolAPIService: true,
	domain.ToolAutomation: true,
	domain.ToolAnalytics:  true,
}

// Scorer turns classifier output and lexical signals into a ScoreSet and a
// Recommendation. Pure and deterministic.
type Scorer struct{}

// NewScorer constructs a scorer. It carries no state today; the type exists
// so callers hold a value rather than reaching for package functions.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the five sub-scores and the weighted overall. Sub-scores
// accumulate uncapped and are clamped to [0,10] at the end; rounding is
// half-away-from-zero (math.Round) to one decimal.
func (s *Scorer) Score(text string, cls Classification) domain.ScoreSet {
	text = strings.ToLower(text)

	demandStrength := 5.0
	for _, kw := range urgencyKeywords {
		if strings.Contains(text, kw) {
			demandStrength += 0.5
		}
	}
	wordCount := len(strings.Fields(text))
	if wordCount > 50 {
		demandStrength += 1.0
	} else if wordCount < 10 {
		demandStrength -= 1.0
	}
	demandStrength = clamp(demandStrength)

	marketSize := 6.0
	if broadMarketTools[cls.ToolType] {
		marketSize += 2.0
	}
	if nicheTools[cls.ToolType] {
		marketSize -= 1.0
	}
	marketSize = clamp(marketSize)

	paymentWillingness := map[domain.PotentialLevel]float64{
		domain.LevelHigh:   8.0,
		domain.LevelMedium: 5.0,
		domain.LevelLow:    2.0,
	}[cls.PaymentPotential]

	// Low complexity means high feasibility and vice versa.
	technicalFeasibility := map[domain.PotentialLevel]float64{
		domain.LevelLow:    9.0,
		domain.LevelMedium: 6.0,
		domain.LevelHigh:   3.0,
	}[cls.TechnicalComplexity]

	passiveIncomeFit := 5.0
	for _, kw := range passiveIncomeKeywords {
		if strings.Contains(text, kw) {
			passiveIncomeFit += 1.0
		}
	}
	if passiveFriendlyTools[cls.ToolType] {
		passiveIncomeFit += 2.0
	}
	passiveIncomeFit = clamp(passiveIncomeFit)

	overall := demandStrength*weightDemandStrength +
		marketSize*weightMarketSize +
		paymentWillingness*weightPaymentWillingness +
		technicalFeasibility*weightTechnicalFeasibility +
		passiveIncomeFit*weightPassiveIncomeFit

	return domain.ScoreSet{
		DemandStrength:       round1(demandStrength),
		MarketSize:           round1(marketSize),
		PaymentWillingness:   round1(paymentWillingness),
		TechnicalFeasibility: round1(technicalFeasibility),
		PassiveIncomeFit:     round1(passiveIncomeFit),
		Overall:              round1(overall),
	}
}

// Recommend derives pricing, MVP scope, tech stack, effort, and priority
// from a finished analysis.
func (s *Scorer) Recommend(analysis domain.Analysis) domain.Recommendation {
	basePrice := map[domain.PotentialLevel]float64{
		domain.LevelHigh:   29.99,
		domain.LevelMedium: 14.99,
		domain.LevelLow:    4.99,
	}[analysis.PaymentPotential]

	overall := analysis.Scores.Overall
	multiplier := overall / 10.0 * 1.5
	price := math.Round(basePrice*multiplier*100) / 100

	priority := domain.LevelLow
	switch {
	case overall >= 7.0:
		priority = domain.LevelHigh
	case overall >= 5.0:
		priority = domain.LevelMedium
	}

	return domain.Recommendation{
		RecommendedPricing: fmt.Sprintf("$%.2f/month", price),
		MVPFeatures:        mvpFeatures(analysis.ToolType),
		SuggestedTechStack: techStack(analysis.ToolType, analysis.TechnicalComplexity),
		DevTimeWeeks:       devTimeWeeks(analysis.TechnicalComplexity),
		Priority:           priority,
	}
}

func mvpFeatures(tool domain.ToolType) []string {
	templates := map[domain.ToolType][]string{
		domain.ToolBrowserExtension: {
			"Basic content injection/modification",
			"Simple popup interface",
			"Local storage for user preferences",
			"Content script for target websites",
		},
		domain.ToolAPIService: {
			"RESTful API endpoints",
			"Authentication (API keys)",
			"Rate limiting",
			"Basic documentation",
		},
		domain.ToolWebApp: {
			"User authentication",
			"Core functionality dashboard",
			"Basic settings page",
			"Responsive design",
		},
		domain.ToolAutomation: {
			"Schedule tasks",
			"Basic error handling",
			"Notification system",
			"Task history/logging",
		},
	}

	if features, ok := templates[tool]; ok {
		return features
	}
	return []string{
		"Core functionality",
		"User authentication",
		"Basic UI/UX",
		"Error handling",
	}
}

func techStack(tool domain.ToolType, complexity domain.PotentialLevel) []string {
	stacks := map[domain.ToolType][]string{
		domain.ToolBrowserExtension: {"JavaScript", "HTML/CSS", "Chrome Extension API"},
		domain.ToolAPIService:       {"Python/FastAPI", "PostgreSQL", "Docker"},
		domain.ToolWebApp:           {"React/Next.js", "Node.js", "PostgreSQL", "Tailwind CSS"},
		domain.ToolCLITool:          {"Python", "Click library", "Docker"},
		domain.ToolMobileApp:        {"React Native", "Firebase", "Expo"},
	}

	base, ok := stacks[tool]
	if !ok {
		base = []string{"Python", "React", "PostgreSQL"}
	}
	stack := append([]string(nil), base...)

	switch complexity {
	case domain.LevelHigh:
		stack = append(stack, "Docker", "Redis", "Celery", "Monitoring")
	case domain.LevelMedium:
		stack = append(stack, "Docker", "Basic logging")
	}
	return stack
}

func devTimeWeeks(complexity domain.PotentialLevel) int {
	switch complexity {
	case domain.LevelLow:
		return 2
	case domain.LevelHigh:
		return 8
	default:
		return 4
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
