package analyze

import (
	"strings"

	"DemandScout/internal/domain"
)

// Classification is the combined outcome of the three keyword votes.
type Classification struct {
	ToolType            domain.ToolType
	PaymentPotential    domain.PotentialLevel
	TechnicalComplexity domain.PotentialLevel
}

// Classifier infers tool type, payment potential, and technical complexity
// by counting keyword hits in candidate text. The tables are built once at
// construction and never mutated, so Classify is pure and safe for
// concurrent use.
type Classifier struct {
	toolOrder    []domain.ToolType
	toolKeywords map[domain.ToolType][]string

	levelOrder         []domain.PotentialLevel
	paymentKeywords    map[domain.PotentialLevel][]string
	complexityKeywords map[domain.PotentialLevel][]string
}

// NewClassifier loads the default keyword tables.
func NewClassifier() *Classifier {
	return &Classifier{
		toolOrder: []domain.ToolType{
			domain.ToolBrowserExtension,
			domain.ToolAPIService,
			domain.ToolCLITool,
			domain.ToolMobileApp,
			domain.ToolDesktopApp,
			domain.ToolWebApp,
			domain.ToolAutomation,
			domain.ToolAnalytics,
			domain.ToolMonitoring,
			domain.ToolProductivity,
		},
		toolKeywords: map[domain.ToolType][]string{
			domain.ToolBrowserExtension: {"extension", "chrome", "firefox", "browser", "plugin", "addon"},
			domain.ToolAPIService:       {"api", "rest", "graphql", "endpoint", "integration"},
			domain.ToolCLITool:          {"cli", "command line", "terminal", "shell", "script"},
			domain.ToolMobileApp:        {"app", "mobile", "ios", "android", "phone"},
			domain.ToolDesktopApp:       {"desktop", "windows", "mac", "linux", "application"},
			domain.ToolWebApp:           {"web", "website", "saas", "cloud", "online"},
			domain.ToolAutomation:       {"automate", "automation", "bot", "robot", "schedule"},
			domain.ToolAnalytics:        {"analytics", "dashboard", "metrics", "report", "statistics"},
			domain.ToolMonitoring:       {"monitor", "alert", "notification", "track", "watch"},
			domain.ToolProductivity:     {"productivity", "efficiency", "time", "save", "fast"},
		},
		levelOrder: []domain.PotentialLevel{
			domain.LevelHigh,
			domain.LevelMedium,
			domain.LevelLow,
		},
		paymentKeywords: map[domain.PotentialLevel][]string{
			domain.LevelHigh: {
				"pay", "price", "cost", "subscription", "monthly", "yearly",
				"premium", "enterprise", "business", "professional", "worth",
			},
			domain.LevelMedium: {"free", "trial", "freemium", "basic", "standard", "affordable"},
			domain.LevelLow:    {"open source", "free", "gratis", "no cost", "cheap"},
		},
		complexityKeywords: map[domain.PotentialLevel][]string{
			domain.LevelHigh: {
				"ai", "machine learning", "blockchain", "real-time", "scalable",
				"distributed", "complex", "advanced", "sophisticated",
			},
			domain.LevelMedium: {
				"database", "api", "integration", "automation", "dashboard",
				"analytics", "monitoring", "scheduling",
			},
			domain.LevelLow: {"simple", "basic", "lightweight", "minimal", "straightforward"},
		},
	}
}

// Classify runs the three keyword votes over the candidate text.
func (c *Classifier) Classify(text string) Classification {
	text = strings.ToLower(text)
	return Classification{
		ToolType:            c.classifyToolType(text),
		PaymentPotential:    c.voteLevel(text, c.paymentKeywords),
		TechnicalComplexity: c.voteLevel(text, c.complexityKeywords),
	}
}

// classifyToolType picks the category with the strictly highest keyword hit
// count, breaking ties by declaration order. Zero hits everywhere means
// "unknown" rather than a most-common default.
func (c *Classifier) classifyToolType(text string) domain.ToolType {
	best := domain.ToolUnknown
	bestHits := 0
	for _, tool := range c.toolOrder {
		hits := countHits(text, c.toolKeywords[tool])
		if hits > bestHits {
			best = tool
			bestHits = hits
		}
	}
	return best
}

// voteLevel picks the level with the most keyword hits; high wins ties over
// medium, medium over low. Zero hits everywhere defaults to medium, a
// deliberate policy asymmetric with the tool-type vote.
func (c *Classifier) voteLevel(text string, table map[domain.PotentialLevel][]string) domain.PotentialLevel {
	best := domain.LevelMedium
	bestHits := 0
	for _, level := range c.levelOrder {
		hits := countHits(text, table[level])
		if hits > bestHits {
			best = level
			bestHits = hits
		}
	}
	return best
}

// countHits counts how many keywords occur in text as substrings. Each
// keyword contributes at most one hit regardless of repetition.
func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}
