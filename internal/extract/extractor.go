package extract

import (
	"regexp"
	"strings"
	"time"

	"DemandScout/internal/domain"
)

// DefaultConfidence is assigned to every pattern match. Match quality does
// not influence it yet.
const DefaultConfidence = 0.7

// pattern couples a compiled expression with the demand type it signals.
type pattern struct {
	name string
	expr *regexp.Regexp
	kind domain.DemandType
}

// defaultPatterns returns the ordered pattern table. Order matters: it is
// the order patterns are reported in MatchedPatterns and candidates are
// emitted in.
func defaultPatterns() []pattern {
	return []pattern{
		{
			name: "tool_solution",
			expr: regexp.MustCompile(`(?:built|created|made)\s+(?:a\s+)?(.+?)\s+(?:to|for)\s+(?:solve|fix|help|automate)\s+(.+)`),
			kind: domain.DemandToolSolution,
		},
		{
			name: "tool_request",
			expr: regexp.MustCompile(`looking for (?:a\s+)?(.+?)\s+(?:that|which)\s+(.+)`),
			kind: domain.DemandToolRequest,
		},
		{
			name: "tool_inquiry",
			expr: regexp.MustCompile(`is there (?:a\s+)?(.+?)\s+for\s+(.+)`),
			kind: domain.DemandToolInquiry,
		},
		{
			name: "problem_question",
			expr: regexp.MustCompile(`how do you (?:handle|manage|deal with|solve)\s+(.+)`),
			kind: domain.DemandProblemQuestion,
		},
		{
			name: "problem_statement",
			expr: regexp.MustCompile(`the problem with (.+?)\s+is\s+(.+)`),
			kind: domain.DemandProblemStatement,
		},
	}
}

// Extractor scans post titles against the pattern table and emits demand
// candidates. It is a pure function of the title: no I/O, deterministic,
// safe for concurrent use.
type Extractor struct {
	patterns   []pattern
	confidence float64
	now        func() time.Time
}

// NewExtractor builds an extractor with the given match confidence.
// Values outside (0,1] fall back to DefaultConfidence.
func NewExtractor(confidence float64) *Extractor {
	if confidence <= 0 || confidence > 1 {
		confidence = DefaultConfidence
	}
	return &Extractor{
		patterns:   defaultPatterns(),
		confidence: confidence,
		now:        time.Now,
	}
}

// Extract returns every demand candidate implied by the post title. All
// patterns are tried against the same lower-cased text, so a single title
// can yield several candidates of different types. No match is a normal
// empty result, not an error.
func (e *Extractor) Extract(post domain.Post) []domain.DemandCandidate {
	title := strings.ToLower(strings.TrimSpace(post.Title))
	if title == "" {
		return nil
	}

	var candidates []domain.DemandCandidate
	for _, p := range e.patterns {
		if !p.expr.MatchString(title) {
			continue
		}
		candidates = append(candidates, domain.DemandCandidate{
			SourcePost:      post,
			DemandType:      p.kind,
			ExtractedText:   title,
			Confidence:      e.confidence,
			ExtractedAt:     e.now(),
			MatchedPatterns: []string{p.name},
		})
	}

	return candidates
}
