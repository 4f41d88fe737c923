package consensus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/consensus"
	"github.com/janscope/annotator/internal/domain"
)

func defaultScorer() *consensus.Scorer {
	return consensus.NewScorer(config.ConsensusConfig{
		WeightKeyword:    0.25,
		WeightLocation:   0.20,
		WeightSemantic:   0.20,
		WeightRescue:     0.15,
		WeightDictionary: 0.10,
		HighPrecisionBar: 0.92,
		StandardBar:      0.85,
	})
}

func TestScore_WeightedAverageOfPresentSignals(t *testing.T) {
	s := defaultScorer()

	// Only keyword and location present: absent signals carry no weight.
	got := s.Score(domain.ConfidenceSignals{
		domain.SignalKeyword:  0.9,
		domain.SignalLocation: 0.6,
	})

	want := (0.9*0.25 + 0.6*0.20) / (0.25 + 0.20)
	assert.InDelta(t, want, got, 0.005)
}

func TestScore_AbsentSignalsDoNotDepress(t *testing.T) {
	s := defaultScorer()

	single := s.Score(domain.ConfidenceSignals{domain.SignalKeyword: 0.9})
	assert.InDelta(t, 0.9, single, 0.005)
}

func TestScore_NoSignals(t *testing.T) {
	s := defaultScorer()
	assert.InDelta(t, 0.3, s.Score(domain.ConfidenceSignals{}), 1e-9)
	assert.InDelta(t, 0.3, s.Score(nil), 1e-9)
}

func TestScore_AgreementBoost(t *testing.T) {
	s := defaultScorer()

	boosted := s.Score(domain.ConfidenceSignals{
		domain.SignalKeyword:             0.85,
		domain.SignalLocation:            0.85,
		domain.SignalDictionaryAgreement: 0.85,
	})
	// 0.85 average times the 1.1 agreement boost.
	assert.InDelta(t, 0.94, boosted, 0.005)

	// Two strong signals only: no boost.
	plain := s.Score(domain.ConfidenceSignals{
		domain.SignalKeyword:  0.85,
		domain.SignalLocation: 0.85,
	})
	assert.InDelta(t, 0.85, plain, 0.005)
}

func TestScore_ClampedToOne(t *testing.T) {
	s := defaultScorer()

	got := s.Score(domain.ConfidenceSignals{
		domain.SignalKeyword:             1.0,
		domain.SignalLocation:            1.0,
		domain.SignalDictionaryAgreement: 1.0,
		domain.SignalSemanticAgreement:   1.0,
	})
	assert.LessOrEqual(t, got, 1.0)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestScore_UnknownSignalIgnored(t *testing.T) {
	s := defaultScorer()

	got := s.Score(domain.ConfidenceSignals{
		"mystery":            0.99,
		domain.SignalKeyword: 0.5,
	})
	assert.InDelta(t, 0.5, got, 0.005)
}

func TestRoute_CategoryBars(t *testing.T) {
	s := defaultScorer()

	tests := []struct {
		name       string
		category   string
		confidence float64
		wantStatus string
		wantReview bool
	}{
		{name: "ordinary passes at 0.85", category: domain.CategoryMeeting, confidence: 0.85, wantStatus: domain.ReviewAutoApproved},
		{name: "ordinary fails below bar", category: domain.CategoryMeeting, confidence: 0.84, wantStatus: domain.ReviewPending, wantReview: true},
		{name: "condolence needs stricter bar", category: domain.CategoryCondolence, confidence: 0.80, wantStatus: domain.ReviewPending, wantReview: true},
		{name: "condolence passes at 0.92", category: domain.CategoryCondolence, confidence: 0.92, wantStatus: domain.ReviewAutoApproved},
		{name: "security is high precision", category: domain.CategorySecurity, confidence: 0.90, wantStatus: domain.ReviewPending, wantReview: true},
		{name: "uncategorized uses standard bar", category: domain.CategoryUncategorized, confidence: 0.30, wantStatus: domain.ReviewPending, wantReview: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, review := s.Route(tt.category, tt.confidence)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantReview, review)
		})
	}
}

func TestBar_Monotone(t *testing.T) {
	s := defaultScorer()
	assert.Greater(t, s.Bar(domain.CategoryCondolence), s.Bar(domain.CategoryMeeting))
}
