package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"DemandScout/internal/analyze"
	"DemandScout/internal/domain"
	"DemandScout/internal/extract"
	"DemandScout/internal/ports"
)

// DefaultMaxPosts caps a run when the caller passes a non-positive limit.
const DefaultMaxPosts = 30

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Sources  []ports.PostSource
	Store    ports.DemandStore
	Notifier ports.Notifier
	Logger   *slog.Logger

	Extractor *extract.Extractor
	Analyzer  *analyze.Analyzer
}

// Pipeline sequences fetch, extract, analyze, persist, and aggregate over
// one batch of posts. Item-level failures never abort a run; only a
// listing-level fetch failure does. Runs for the same platform are
// serialized, runs for different platforms may proceed concurrently.
type Pipeline struct {
	sources   map[domain.Platform]ports.PostSource
	store     ports.DemandStore
	notifier  ports.Notifier
	extractor *extract.Extractor
	analyzer  *analyze.Analyzer
	logger    *slog.Logger
	now       func() time.Time

	statsMu sync.Mutex
	stats   domain.RunStats

	locksMu  sync.Mutex
	runLocks map[domain.Platform]*sync.Mutex
}

// NewPipeline constructs the orchestration component. Missing extractor or
// analyzer fall back to defaults; Store may be nil for dry runs.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Extractor == nil {
		deps.Extractor = extract.NewExtractor(extract.DefaultConfidence)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = analyze.NewAnalyzer()
	}

	sources := make(map[domain.Platform]ports.PostSource, len(deps.Sources))
	for _, src := range deps.Sources {
		sources[src.Platform()] = src
	}

	return &Pipeline{
		sources:   sources,
		store:     deps.Store,
		notifier:  deps.Notifier,
		extractor: deps.Extractor,
		analyzer:  deps.Analyzer,
		logger:    deps.Logger,
		now:       time.Now,
		runLocks:  map[domain.Platform]*sync.Mutex{},
	}
}

// Platforms lists the platforms this pipeline can crawl.
func (p *Pipeline) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(p.sources))
	for platform := range p.sources {
		platforms = append(platforms, platform)
	}
	return platforms
}

// Run executes the full pipeline for one platform. It always returns a
// result: status "error" only for an unknown platform, a cancelled context,
// or a listing fetch failure; everything later is item-scoped and the run
// stays "success" with partial counts.
func (p *Pipeline) Run(ctx context.Context, platform domain.Platform, maxPosts int) domain.RunResult {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}

	source, ok := p.sources[platform]
	if !ok {
		return errorResult(fmt.Errorf("no source registered for platform %q", platform))
	}

	lock := p.platformLock(platform)
	lock.Lock()
	defer lock.Unlock()

	started := p.now()

	// Stage 1: fetch both listings, halved limit each, concurrently.
	posts, err := p.fetchPosts(ctx, source, maxPosts)
	if err != nil {
		p.warn("fetch failed", "platform", platform, "error", err)
		return errorResult(fmt.Errorf("%w: %v", ports.ErrFetch, err))
	}

	if err := ctx.Err(); err != nil {
		return errorResult(err)
	}

	// Stage 2: extract demand candidates from every post.
	candidates := p.extractCandidates(posts)
	p.debug("extraction done", "platform", platform, "posts", len(posts), "candidates", len(candidates))

	if err := ctx.Err(); err != nil {
		return errorResult(err)
	}

	// Stage 3: classify and score each candidate in isolation.
	scored := p.analyzeCandidates(candidates)

	if err := ctx.Err(); err != nil {
		return errorResult(err)
	}

	// Stage 4: persist, counting but never propagating save failures.
	saved := p.persist(ctx, scored)

	// Stage 5: aggregate run stats and source health.
	duration := p.now().Sub(started).Seconds()
	p.aggregate(ctx, platform, len(scored), saved, duration, len(candidates))

	p.publishDigest(ctx, scored)

	return domain.RunResult{
		Status: domain.RunSuccess,
		Stats: domain.CrawlStats{
			PostsCrawled:    len(posts),
			DemandsFound:    len(candidates),
			DemandsAnalyzed: len(scored),
			DemandsSaved:    saved,
			DurationSeconds: duration,
		},
	}
}

// fetchPosts pulls the announcement and discussion listings concurrently.
// The two fetches are independent and side-effect free on shared state;
// either error is fatal to the run.
func (p *Pipeline) fetchPosts(ctx context.Context, source ports.PostSource, maxPosts int) ([]domain.Post, error) {
	kinds := []domain.PostKind{domain.KindAnnouncements, domain.KindDiscussions}
	perKind := maxPosts / 2

	type fetchOut struct {
		kind  domain.PostKind
		posts []domain.Post
		err   error
	}

	results := make(chan fetchOut, len(kinds))
	for _, kind := range kinds {
		go func(kind domain.PostKind) {
			posts, err := source.FetchPosts(ctx, kind, perKind)
			results <- fetchOut{kind: kind, posts: posts, err: err}
		}(kind)
	}

	byKind := make(map[domain.PostKind][]domain.Post, len(kinds))
	for range kinds {
		out := <-results
		if out.err != nil {
			return nil, fmt.Errorf("fetch %s: %w", out.kind, out.err)
		}
		byKind[out.kind] = out.posts
	}

	// Keep listing order stable: announcements first, then discussions.
	var posts []domain.Post
	for _, kind := range kinds {
		posts = append(posts, byKind[kind]...)
	}
	return posts, nil
}

// extractCandidates runs the extractor over every post. The extractor is
// pure, but a panicking post is still caught and skipped so one malformed
// title cannot sink the batch.
func (p *Pipeline) extractCandidates(posts []domain.Post) []domain.DemandCandidate {
	var candidates []domain.DemandCandidate
	for _, post := range posts {
		found, err := p.extractOne(post)
		if err != nil {
			p.warn("skipping post", "title", post.Title, "error", err)
			continue
		}
		candidates = append(candidates, found...)
	}
	return candidates
}

func (p *Pipeline) extractOne(post domain.Post) (candidates []domain.DemandCandidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract panicked: %v", r)
		}
	}()
	return p.extractor.Extract(post), nil
}

// analyzeCandidates classifies and scores each candidate, dropping any that
// fail without touching the rest of the batch.
func (p *Pipeline) analyzeCandidates(candidates []domain.DemandCandidate) []domain.ScoredDemand {
	scored := make([]domain.ScoredDemand, 0, len(candidates))
	for _, candidate := range candidates {
		record, err := p.analyzeOne(candidate)
		if err != nil {
			p.warn("skipping candidate", "text", candidate.ExtractedText, "error", err)
			continue
		}
		scored = append(scored, record)
	}
	return scored
}

func (p *Pipeline) analyzeOne(candidate domain.DemandCandidate) (record domain.ScoredDemand, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyze panicked: %v", r)
		}
	}()
	return p.analyzer.Analyze(candidate), nil
}

// persist saves each record at most once. Failures are logged and surface
// through the analyzed-minus-saved shortfall; retries, if any, are the
// store's business.
func (p *Pipeline) persist(ctx context.Context, records []domain.ScoredDemand) int {
	if p.store == nil {
		return 0
	}

	saved := 0
	for _, record := range records {
		id, err := p.store.Save(ctx, record)
		if err != nil {
			p.warn("save failed", "title", record.Candidate.SourcePost.Title, "error", err)
			continue
		}
		saved++
		p.debug("saved demand", "id", id, "overall", record.Analysis.Scores.Overall)
	}
	return saved
}

// aggregate updates the cumulative run stats and pushes source health to
// the store. The source-stats upsert is best effort: its failure is logged
// and the run still reports success.
func (p *Pipeline) aggregate(ctx context.Context, platform domain.Platform, analyzed, saved int, duration float64, demandsFound int) {
	now := p.now()

	p.statsMu.Lock()
	p.stats.TotalProcessed += analyzed
	p.stats.SuccessfulSaves += saved
	p.stats.FailedSaves += analyzed - saved
	p.stats.LastRun = &now
	p.stats.RunDurationSeconds = duration
	p.statsMu.Unlock()

	if p.store == nil {
		return
	}
	if err := p.store.UpsertSourceStats(ctx, platform, demandsFound, saved); err != nil {
		p.warn("source stats update failed", "platform", platform, "error", err)
	}
}

// publishDigest notifies about high-priority demands found in this run.
// Best effort, never fails the run.
func (p *Pipeline) publishDigest(ctx context.Context, records []domain.ScoredDemand) {
	if p.notifier == nil {
		return
	}

	var digest string
	for _, record := range records {
		if record.Recommendation.Priority != domain.LevelHigh {
			continue
		}
		digest += fmt.Sprintf("- %s\nScore: %.1f | %s | %s\n%s\n\n",
			record.Candidate.SourcePost.Title,
			record.Analysis.Scores.Overall,
			record.Analysis.ToolType,
			record.Recommendation.RecommendedPricing,
			record.Candidate.SourcePost.URL)
	}
	if digest == "" {
		return
	}

	if err := p.notifier.PublishDigest(ctx, digest); err != nil {
		p.warn("digest publish failed", "error", err)
	}
}

// Stats returns a copy of the cumulative counters.
func (p *Pipeline) Stats() domain.RunStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

// ResetStats zeroes the cumulative counters.
func (p *Pipeline) ResetStats() {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats = domain.RunStats{}
}

// platformLock serializes runs per platform: a platform-run is
// non-reentrant, so concurrent triggers for the same platform queue up.
func (p *Pipeline) platformLock(platform domain.Platform) *sync.Mutex {
	p.locksMu.Lock()
	defer p.locksMu.Unlock()
	lock, ok := p.runLocks[platform]
	if !ok {
		lock = &sync.Mutex{}
		p.runLocks[platform] = lock
	}
	return lock
}

func errorResult(err error) domain.RunResult {
	return domain.RunResult{Status: domain.RunError, Error: err.Error()}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
