package storage

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"DemandScout/internal/domain"
	"DemandScout/internal/ports"
)

// PostgresStore persists scored demands and per-source crawl health.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.DemandStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the demands and sources tables when absent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS demands (
			id SERIAL PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			description VARCHAR(2000),
			problem TEXT,
			demand_type VARCHAR(50),
			tool_type VARCHAR(50),
			confidence DOUBLE PRECISION,
			budget_range VARCHAR(50),
			technical_complexity VARCHAR(20),
			dev_time_weeks INT,
			main_tech_stack TEXT[],
			search_volume INT,
			competitor_users INT,
			growth_rate DOUBLE PRECISION,
			demand_strength_score DOUBLE PRECISION,
			market_size_score DOUBLE PRECISION,
			willingness_to_pay_score DOUBLE PRECISION,
			technical_feasibility_score DOUBLE PRECISION,
			passive_income_fit_score DOUBLE PRECISION,
			overall_score DOUBLE PRECISION,
			recommended_pricing VARCHAR(50),
			mvp_features TEXT[],
			tags TEXT[],
			source_platform VARCHAR(50),
			source_url TEXT,
			discovered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			status VARCHAR(20) NOT NULL DEFAULT 'new',
			is_high_potential BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			platform VARCHAR(50) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			url TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			crawl_interval_hours INT NOT NULL DEFAULT 24,
			last_crawled_at TIMESTAMPTZ,
			total_demands_found INT NOT NULL DEFAULT 0,
			success_rate DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Save inserts one scored demand and returns its id.
func (s *PostgresStore) Save(ctx context.Context, record domain.ScoredDemand) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("%w: store has no database", ports.ErrPersist)
	}

	analysis := record.Analysis
	rec := record.Recommendation
	est := marketEstimate(analysis.ToolType)

	title := record.Candidate.SourcePost.Title
	if title == "" {
		title = "Untitled Demand"
	}

	query, args, err := s.builder.
		Insert("demands").
		Columns(
			"title", "description", "problem", "demand_type", "tool_type", "confidence",
			"budget_range", "technical_complexity", "dev_time_weeks", "main_tech_stack",
			"search_volume", "competitor_users", "growth_rate",
			"demand_strength_score", "market_size_score", "willingness_to_pay_score",
			"technical_feasibility_score", "passive_income_fit_score", "overall_score",
			"recommended_pricing", "mvp_features", "tags",
			"source_platform", "source_url", "discovered_at", "status", "is_high_potential",
		).
		Values(
			truncate(title, 500),
			truncate(fmt.Sprintf("Extracted from %s: %s", analysis.Source.Platform, record.Candidate.ExtractedText), 2000),
			record.Candidate.ExtractedText,
			string(record.Candidate.DemandType),
			string(analysis.ToolType),
			record.Candidate.Confidence,
			budgetRange(analysis.PaymentPotential),
			string(analysis.TechnicalComplexity),
			rec.DevTimeWeeks,
			pq.Array(rec.SuggestedTechStack),
			est.searchVolume,
			est.competitorUsers,
			est.growthRate,
			analysis.Scores.DemandStrength,
			analysis.Scores.MarketSize,
			analysis.Scores.PaymentWillingness,
			analysis.Scores.TechnicalFeasibility,
			analysis.Scores.PassiveIncomeFit,
			analysis.Scores.Overall,
			rec.RecommendedPricing,
			pq.Array(rec.MVPFeatures),
			pq.Array(tags(analysis.Keywords)),
			string(analysis.Source.Platform),
			analysis.Source.PostURL,
			analysis.AnalyzedAt,
			"new",
			analysis.Scores.Overall >= 7.0,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	var id string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%w: insert demand: %v", ports.ErrPersist, err)
	}
	return id, nil
}

// UpsertSourceStats maintains the per-platform crawl health row with a
// single atomic statement. A new row with demands found starts at rate 10
// (seed 0 plus the first bump); thereafter the rate moves +10 on a yielding
// run and -5 on a dry one, clamped to [0,100]. total_demands_found only
// accumulates.
func (s *PostgresStore) UpsertSourceStats(ctx context.Context, platform domain.Platform, demandsFound, demandsSaved int) error {
	if s.db == nil {
		return fmt.Errorf("%w: store has no database", ports.ErrPersist)
	}

	query := `INSERT INTO sources (platform, name, url, last_crawled_at, total_demands_found, success_rate)
              VALUES ($1, $2, $3, NOW(), $4, CASE WHEN $4 > 0 THEN 10 ELSE 0 END)
              ON CONFLICT (platform) DO UPDATE
              SET last_crawled_at = NOW(),
                  total_demands_found = sources.total_demands_found + EXCLUDED.total_demands_found,
                  success_rate = CASE WHEN EXCLUDED.total_demands_found > 0
                                      THEN LEAST(100, sources.success_rate + 10)
                                      ELSE GREATEST(0, sources.success_rate - 5)
                                 END`

	_, err := s.db.ExecContext(ctx, query,
		string(platform),
		sourceName(platform),
		platformURL(platform),
		demandsFound,
	)
	if err != nil {
		return fmt.Errorf("upsert source stats: %w", err)
	}
	return nil
}

// SourceHealth reads back the crawl health row for one platform.
func (s *PostgresStore) SourceHealth(ctx context.Context, platform domain.Platform) (domain.SourceHealth, error) {
	var health domain.SourceHealth
	if s.db == nil {
		return health, fmt.Errorf("store has no database")
	}

	query, args, err := s.builder.
		Select("platform", "last_crawled_at", "total_demands_found", "success_rate").
		From("sources").
		Where(sq.Eq{"platform": string(platform)}).
		ToSql()
	if err != nil {
		return health, fmt.Errorf("build select: %w", err)
	}

	var last sql.NullTime
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&health.Platform, &last, &health.TotalDemandsFound, &health.SuccessRate); err != nil {
		return health, fmt.Errorf("scan source health: %w", err)
	}
	if last.Valid {
		health.LastCrawledAt = last.Time
	}
	return health, nil
}

type estimate struct {
	searchVolume    int
	competitorUsers int
	growthRate      float64
}

// marketEstimate supplies rough per-tool-type market numbers stored
// alongside the record for the dashboard.
func marketEstimate(tool domain.ToolType) estimate {
	estimates := map[domain.ToolType]estimate{
		domain.ToolWebApp:           {5000, 10000, 25.0},
		domain.ToolBrowserExtension: {3000, 5000, 20.0},
		domain.ToolAPIService:       {2000, 3000, 30.0},
		domain.ToolMobileApp:        {4000, 8000, 22.0},
		domain.ToolAutomation:       {2500, 4000, 35.0},
		domain.ToolAnalytics:        {1800, 2500, 28.0},
		domain.ToolCLITool:          {800, 1000, 15.0},
		domain.ToolDesktopApp:       {1200, 2000, 12.0},
		domain.ToolUnknown:          {1500, 2000, 20.0},
	}
	if est, ok := estimates[tool]; ok {
		return est
	}
	return estimate{1000, 1500, 20.0}
}

func budgetRange(potential domain.PotentialLevel) string {
	switch potential {
	case domain.LevelHigh:
		return "$20-50/month"
	case domain.LevelLow:
		return "$5-15/month"
	default:
		return "$10-30/month"
	}
}

// tags keeps the first five keywords as record tags.
func tags(keywords []string) []string {
	if len(keywords) > 5 {
		return keywords[:5]
	}
	return keywords
}

// truncate cuts s to at most max bytes without splitting a rune, so the
// result stays valid UTF-8 for Postgres.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func sourceName(platform domain.Platform) string {
	switch platform {
	case domain.PlatformHackerNews:
		return "Hacker News Crawler"
	default:
		return string(platform) + " crawler"
	}
}

func platformURL(platform domain.Platform) string {
	switch platform {
	case domain.PlatformHackerNews:
		return "https://news.ycombinator.com"
	default:
		return ""
	}
}
