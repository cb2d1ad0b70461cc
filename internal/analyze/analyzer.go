package analyze

import (
	"time"

	"DemandScout/internal/domain"
)

// Analyzer bundles the classifier and scorer into the single step the
// pipeline runs per candidate.
type Analyzer struct {
	classifier *Classifier
	scorer     *Scorer
	now        func() time.Time
}

// NewAnalyzer wires the default classifier and scorer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		classifier: NewClassifier(),
		scorer:     NewScorer(),
		now:        time.Now,
	}
}

// Analyze classifies and scores one candidate, returning the full record
// ready for persistence.
func (a *Analyzer) Analyze(candidate domain.DemandCandidate) domain.ScoredDemand {
	cls := a.classifier.Classify(candidate.ExtractedText)

	analysis := domain.Analysis{
		ToolType:            cls.ToolType,
		PaymentPotential:    cls.PaymentPotential,
		TechnicalComplexity: cls.TechnicalComplexity,
		Keywords:            ExtractKeywords(candidate.ExtractedText),
		Scores:              a.scorer.Score(candidate.ExtractedText, cls),
		AnalyzedAt:          a.now(),
		Confidence:          candidate.Confidence,
		Source: domain.SourceInfo{
			Platform:  candidate.SourcePost.Platform,
			PostTitle: candidate.SourcePost.Title,
			PostURL:   candidate.SourcePost.URL,
		},
	}

	return domain.ScoredDemand{
		Candidate:      candidate,
		Analysis:       analysis,
		Recommendation: a.scorer.Recommend(analysis),
	}
}
