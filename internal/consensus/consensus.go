// Package consensus blends the pipeline's independent evidence signals
// into one calibrated confidence and routes each post to auto-approval
// or human review.
package consensus

import (
	"math"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
)

// Agreement boost: when several strong signals agree the combined score
// is nudged upward.
const (
	agreementFloor = 0.8
	agreementCount = 3
	agreementBoost = 1.1
)

// noSignalConfidence applies when nothing produced any evidence at all.
const noSignalConfidence = 0.3

// highPrecisionCategories are the labels for which a false positive is
// costly enough to warrant the stricter review bar.
var highPrecisionCategories = map[string]bool{
	domain.CategoryCondolence: true,
	domain.CategoryBirthday:   true,
	domain.CategorySecurity:   true,
	domain.CategorySports:     true,
	domain.CategoryDisaster:   true,
}

// Scorer combines signals by weighted average over the signals actually
// present, so a missing tier never silently depresses the score.
type Scorer struct {
	weights map[string]float64
	highBar float64
	stdBar  float64
}

// NewScorer builds a scorer from the configured weights and bars.
func NewScorer(cfg config.ConsensusConfig) *Scorer {
	return &Scorer{
		weights: map[string]float64{
			domain.SignalKeyword:             cfg.WeightKeyword,
			domain.SignalLocation:            cfg.WeightLocation,
			domain.SignalSemanticAgreement:   cfg.WeightSemantic,
			domain.SignalRescue:              cfg.WeightRescue,
			domain.SignalDictionaryAgreement: cfg.WeightDictionary,
		},
		highBar: cfg.HighPrecisionBar,
		stdBar:  cfg.StandardBar,
	}
}

// Score reduces the present signals to one confidence in [0,1], rounded
// to two decimals. Unknown signal names carry no weight and are ignored.
func (s *Scorer) Score(signals domain.ConfidenceSignals) float64 {
	var sum, weightSum float64
	strong := 0

	for name, value := range signals {
		w, known := s.weights[name]
		if !known || w == 0 {
			continue
		}
		sum += value * w
		weightSum += w
		if value > agreementFloor {
			strong++
		}
	}

	if weightSum == 0 {
		return noSignalConfidence
	}

	score := sum / weightSum
	if strong >= agreementCount {
		score *= agreementBoost
	}

	return round2(math.Min(math.Max(score, 0), 1))
}

// Bar returns the approval bar for a category.
func (s *Scorer) Bar(category string) float64 {
	if highPrecisionCategories[category] {
		return s.highBar
	}
	return s.stdBar
}

// Route decides the review verdict: at or above the category bar the
// post auto-approves, below it goes to a human.
func (s *Scorer) Route(category string, confidence float64) (status string, needsReview bool) {
	if confidence >= s.Bar(category) {
		return domain.ReviewAutoApproved, false
	}
	return domain.ReviewPending, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
