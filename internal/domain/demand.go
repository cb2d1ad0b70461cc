package domain

import "time"

// Platform identifies the upstream discussion forum a post came from.
type Platform string

const (
	PlatformHackerNews Platform = "hackernews"
)

// PostKind selects which listing of a platform gets fetched.
type PostKind string

const (
	KindAnnouncements PostKind = "announcements"
	KindDiscussions   PostKind = "discussions"
)

// PostCategory is a coarse title-based bucket assigned at crawl time.
type PostCategory string

const (
	CategoryToolAnnouncement  PostCategory = "tool_announcement"
	CategoryProblemDiscussion PostCategory = "problem_discussion"
	CategoryOther             PostCategory = "other"
)

// Post is a single forum submission as it appeared on the source listing.
// Immutable once fetched.
type Post struct {
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Score     int          `json:"score"`
	Comments  int          `json:"comments"`
	Author    string       `json:"author"`
	PostedAt  string       `json:"posted_at"`
	Platform  Platform     `json:"platform"`
	Category  PostCategory `json:"category"`
	CrawledAt time.Time    `json:"crawled_at"`
}

// DemandType tags which linguistic pattern flagged a candidate.
type DemandType string

const (
	DemandToolSolution     DemandType = "tool_solution"
	DemandToolRequest      DemandType = "tool_request"
	DemandToolInquiry      DemandType = "tool_inquiry"
	DemandProblemQuestion  DemandType = "problem_question"
	DemandProblemStatement DemandType = "problem_statement"
)

// DemandCandidate is a post flagged as potentially expressing an unmet
// tool or product need. ExtractedText is always the source title,
// lower-cased.
type DemandCandidate struct {
	SourcePost      Post       `json:"source_post"`
	DemandType      DemandType `json:"demand_type"`
	ExtractedText   string     `json:"extracted_text"`
	Confidence      float64    `json:"confidence"`
	ExtractedAt     time.Time  `json:"extracted_at"`
	MatchedPatterns []string   `json:"matched_patterns"`
}

// ToolType is the coarse category of product that could satisfy a demand.
type ToolType string

const (
	ToolBrowserExtension ToolType = "browser_extension"
	ToolAPIService       ToolType = "api_service"
	ToolCLITool          ToolType = "cli_tool"
	ToolMobileApp        ToolType = "mobile_app"
	ToolDesktopApp       ToolType = "desktop_app"
	ToolWebApp           ToolType = "web_app"
	ToolAutomation       ToolType = "automation"
	ToolAnalytics        ToolType = "analytics"
	ToolMonitoring       ToolType = "monitoring"
	ToolProductivity     ToolType = "productivity"
	ToolUnknown          ToolType = "unknown"
)

// PotentialLevel grades payment potential, technical complexity, and
// recommendation priority.
type PotentialLevel string

const (
	LevelHigh   PotentialLevel = "high"
	LevelMedium PotentialLevel = "medium"
	LevelLow    PotentialLevel = "low"
)

// ScoreSet holds the five weighted sub-scores plus the overall score.
// Every value is clamped to [0,10] and rounded to one decimal.
type ScoreSet struct {
	DemandStrength       float64 `json:"demand_strength"`
	MarketSize           float64 `json:"market_size"`
	PaymentWillingness   float64 `json:"payment_willingness"`
	TechnicalFeasibility float64 `json:"technical_feasibility"`
	PassiveIncomeFit     float64 `json:"passive_income_fit"`
	Overall              float64 `json:"overall"`
}

// SourceInfo points an analysis back at the post it came from.
type SourceInfo struct {
	Platform  Platform `json:"platform"`
	PostTitle string   `json:"post_title"`
	PostURL   string   `json:"post_url"`
}

// Analysis is the deterministic classification of a candidate's text.
type Analysis struct {
	ToolType            ToolType       `json:"tool_type"`
	PaymentPotential    PotentialLevel `json:"payment_potential"`
	TechnicalComplexity PotentialLevel `json:"technical_complexity"`
	Keywords            []string       `json:"keywords"`
	Scores              ScoreSet       `json:"scores"`
	AnalyzedAt          time.Time      `json:"analyzed_at"`
	Confidence          float64        `json:"confidence"`
	Source              SourceInfo     `json:"source_info"`
}

// Recommendation is the actionable follow-up derived from an analysis.
type Recommendation struct {
	RecommendedPricing string         `json:"recommended_pricing"`
	MVPFeatures        []string       `json:"mvp_features"`
	SuggestedTechStack []string       `json:"suggested_tech_stack"`
	DevTimeWeeks       int            `json:"time_estimate_weeks"`
	Priority           PotentialLevel `json:"priority"`
}

// ScoredDemand is the full record handed to the store.
type ScoredDemand struct {
	Candidate      DemandCandidate `json:"candidate"`
	Analysis       Analysis        `json:"analysis"`
	Recommendation Recommendation  `json:"recommendations"`
}

// SourceHealth is the per-platform crawl bookkeeping row. TotalDemandsFound
// only ever accumulates; SuccessRate stays within [0,100].
type SourceHealth struct {
	Platform          Platform  `json:"platform"`
	LastCrawledAt     time.Time `json:"last_crawled_at"`
	TotalDemandsFound int       `json:"total_demands_found"`
	SuccessRate       float64   `json:"success_rate"`
}

// RunStats accumulates across runs of a single pipeline instance.
type RunStats struct {
	TotalProcessed     int        `json:"total_processed"`
	SuccessfulSaves    int        `json:"successful_saves"`
	FailedSaves        int        `json:"failed_saves"`
	LastRun            *time.Time `json:"last_run"`
	RunDurationSeconds float64    `json:"run_duration_seconds"`
}

// RunStatus is the terminal state of one pipeline run.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunError   RunStatus = "error"
)

// CrawlStats summarises one run for the caller.
type CrawlStats struct {
	PostsCrawled    int     `json:"posts_crawled"`
	DemandsFound    int     `json:"demands_found"`
	DemandsAnalyzed int     `json:"demands_analyzed"`
	DemandsSaved    int     `json:"demands_saved"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// RunResult is the caller-facing outcome of a pipeline run. On error the
// stats block is zero-valued; on success demandsFound > demandsSaved
// signals items dropped along the way.
type RunResult struct {
	Status RunStatus  `json:"status"`
	Stats  CrawlStats `json:"stats"`
	Error  string     `json:"error,omitempty"`
}
