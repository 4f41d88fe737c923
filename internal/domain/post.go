package domain

import "time"

// Post represents one inbound social-media post, the unit of work for the
// annotation pipeline. Text is mixed Devanagari/Latin script.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Handle is the author handle when the upstream collector knows it,
	// used by the handle-inference resolution tier.
	Handle string `json:"handle,omitempty"`

	// Hints carries pre-extracted strings from an earlier pass (mentions,
	// quoted names). Optional.
	Hints []string `json:"hints,omitempty"`
}

// EventDate returns the post date as YYYY-MM-DD, or "" when the timestamp
// is unset.
func (p *Post) EventDate() string {
	if p.Timestamp.IsZero() {
		return ""
	}
	return p.Timestamp.Format("2006-01-02")
}

// ParsedPost is the fully annotated output record. It echoes the input
// fields so a batch output line is self-contained.
type ParsedPost struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Handle    string    `json:"handle,omitempty"`

	// Event classification
	EventType          string  `json:"event_type"`
	EventTypeSecondary []string `json:"event_type_secondary"`
	EventDate          string  `json:"event_date,omitempty"`
	EventScore         float64 `json:"event_score"` // 0.0-1.0, raw keyword score

	// Location resolution
	Location     *ResolvedLocation `json:"location,omitempty"`
	LocationType string            `json:"location_type,omitempty"`

	// Entities
	People        []string `json:"people_mentioned"`
	Schemes       []string `json:"schemes_mentioned"`
	WordBuckets   []string `json:"word_buckets"`
	TargetGroups  []string `json:"target_groups"`
	Communities   []string `json:"communities"`
	Organizations []string `json:"organizations"`

	// Consensus and routing
	Confidence   float64 `json:"confidence"` // 0.0-1.0, two decimals
	ReviewStatus string  `json:"review_status"`
	NeedsReview  bool    `json:"needs_review"`

	// Rescue provenance
	ContentMode string  `json:"content_mode,omitempty"`
	IsRescued   bool    `json:"is_rescued_other"`
	RescueTag   string  `json:"rescue_tag,omitempty"`
	RescueBonus float64 `json:"rescue_confidence_bonus,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// Metadata identifies the model revision that produced an annotation.
type Metadata struct {
	Model            string `json:"model"`
	Version          string `json:"version"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

// ReviewStatus constants
const (
	ReviewAutoApproved = "auto_approved"
	ReviewPending      = "pending"
)

// Model identity stamped into ParsedPost.Metadata.
const (
	ModelName    = "annotator-hi"
	ModelVersion = "4.0.0"
)
