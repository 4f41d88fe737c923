package processor

import (
	"github.com/janscope/annotator/internal/domain"
)

// Confidence bucket labels in the stats sidecar.
const (
	bucketLow      = "<0.5"
	bucketMid      = "0.5-0.75"
	bucketHigh     = "0.75-0.9"
	bucketVeryHigh = ">=0.9"
)

// ResolverStats aggregates location provenance over a run.
type ResolverStats struct {
	DictionaryHits int `json:"dictionary_hits"`
	SemanticHits   int `json:"semantic_hits"`
	TemporalHits   int `json:"temporal_hits"`
	NotFound       int `json:"not_found"`
}

// ReviewStats aggregates review routing over a run.
type ReviewStats struct {
	AutoApproved int `json:"auto_approved"`
	Pending      int `json:"pending"`
	NeedsReview  int `json:"needs_review"`
}

// Stats is the sidecar JSON written next to the annotated output.
type Stats struct {
	RunID                    string         `json:"run_id"`
	TotalPosts               int            `json:"total_posts"`
	SkippedRecords           int            `json:"skipped_records"`
	EventDistribution        map[string]int `json:"event_distribution"`
	LocationTypeDistribution map[string]int `json:"location_type_distribution"`
	ConfidenceBuckets        map[string]int `json:"confidence_buckets"`
	AverageProcessingTimeMs  float64        `json:"average_processing_time_ms"`
	ResolverStats            ResolverStats  `json:"resolver_stats"`
	Review                   ReviewStats    `json:"review"`
	Version                  string         `json:"version"`

	totalProcessingMs int64
}

func newStats(runID string) *Stats {
	return &Stats{
		RunID:                    runID,
		EventDistribution:        map[string]int{},
		LocationTypeDistribution: map[string]int{},
		ConfidenceBuckets: map[string]int{
			bucketLow:      0,
			bucketMid:      0,
			bucketHigh:     0,
			bucketVeryHigh: 0,
		},
		Version: domain.ModelVersion,
	}
}

// record folds one annotated post into the aggregates. Called from the
// single collector goroutine only.
func (s *Stats) record(post *domain.ParsedPost) {
	s.TotalPosts++
	s.EventDistribution[post.EventType]++
	s.totalProcessingMs += post.Metadata.ProcessingTimeMs

	switch {
	case post.Confidence < 0.5:
		s.ConfidenceBuckets[bucketLow]++
	case post.Confidence < 0.75:
		s.ConfidenceBuckets[bucketMid]++
	case post.Confidence < 0.9:
		s.ConfidenceBuckets[bucketHigh]++
	default:
		s.ConfidenceBuckets[bucketVeryHigh]++
	}

	if post.Location == nil {
		s.ResolverStats.NotFound++
	} else {
		s.LocationTypeDistribution[post.Location.AdminType]++
		switch post.Location.Source {
		case domain.SourceSemanticSearch:
			s.ResolverStats.SemanticHits++
		case domain.SourceTemporalInference:
			s.ResolverStats.TemporalHits++
		default:
			s.ResolverStats.DictionaryHits++
		}
	}

	if post.ReviewStatus == domain.ReviewAutoApproved {
		s.Review.AutoApproved++
	} else {
		s.Review.Pending++
	}
	if post.NeedsReview {
		s.Review.NeedsReview++
	}
}

func (s *Stats) recordSkip() {
	s.SkippedRecords++
}

// finalize computes the derived averages once the run is complete.
func (s *Stats) finalize() {
	if s.TotalPosts > 0 {
		s.AverageProcessingTimeMs = float64(s.totalProcessingMs) / float64(s.TotalPosts)
	}
}
