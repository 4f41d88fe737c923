// Package annotator sequences the full per-post pipeline: normalize,
// classify, rescue, resolve location, extract entities, blend the
// signals, route for review, and stamp metadata. One Annotate call is
// one post; failures of individual stages degrade the annotation, they
// never abort it.
package annotator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/janscope/annotator/internal/classify"
	"github.com/janscope/annotator/internal/consensus"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/entity"
	"github.com/janscope/annotator/internal/location"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/normalize"
)

// ErrEmptyPost is returned for records with no usable text. The batch
// driver counts and skips these; nothing else in the pipeline errors.
var ErrEmptyPost = errors.New("post has no text")

// Annotator owns the assembled pipeline. All components are read-only
// per post; the resolver's temporal window is the single exception and
// is updated after each post.
type Annotator struct {
	classifier *classify.Classifier
	rescue     *classify.RescueEngine
	resolver   *location.Resolver
	extractor  *entity.Extractor
	scorer     *consensus.Scorer
	log        logger.Logger
}

// New wires the pipeline.
func New(
	classifier *classify.Classifier,
	rescue *classify.RescueEngine,
	resolver *location.Resolver,
	extractor *entity.Extractor,
	scorer *consensus.Scorer,
	log logger.Logger,
) *Annotator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Annotator{
		classifier: classifier,
		rescue:     rescue,
		resolver:   resolver,
		extractor:  extractor,
		scorer:     scorer,
		log:        log,
	}
}

// Fork returns an annotator with an isolated temporal window for
// concurrent batch workers. Everything else is shared read-only state.
func (a *Annotator) Fork() *Annotator {
	clone := *a
	clone.resolver = a.resolver.Fork()
	return &clone
}

// Annotate runs the pipeline over one post. The only error case is a
// post without text; an unresolvable post still yields a complete
// sparse ParsedPost with needs_review set.
func (a *Annotator) Annotate(ctx context.Context, post *domain.Post) (*domain.ParsedPost, error) {
	started := time.Now()

	clean := normalize.Clean(post.Text)
	if strings.TrimSpace(clean) == "" {
		return nil, ErrEmptyPost
	}

	result := a.classifier.Classify(clean)
	verdict := a.rescue.Rescue(result, clean)

	handles := normalize.Handles(post.Text)
	if post.Handle != "" {
		handles = append([]string{post.Handle}, handles...)
	}
	loc, locConf := a.resolver.Resolve(ctx, clean, handles, post.Hints, post.Timestamp)

	entities := a.extractor.Extract(clean)

	signals := collectSignals(result, verdict, loc, locConf)
	confidence := a.scorer.Score(signals)

	category := result.Primary
	if verdict.Rescued {
		category = verdict.Category
	}
	status, needsReview := a.scorer.Route(category, confidence)

	parsed := &domain.ParsedPost{
		ID:        post.ID,
		Text:      post.Text,
		Timestamp: post.Timestamp,
		Handle:    post.Handle,

		EventType:          category,
		EventTypeSecondary: result.Secondary,
		EventDate:          post.EventDate(),
		EventScore:         eventScore(result, verdict),

		Location: loc,

		People:        entities.People,
		Schemes:       entities.Schemes,
		WordBuckets:   entities.WordBuckets,
		TargetGroups:  entities.TargetGroups,
		Communities:   entities.Communities,
		Organizations: entities.Organizations,

		Confidence:   confidence,
		ReviewStatus: status,
		NeedsReview:  needsReview,

		ContentMode: verdict.ContentMode,
		IsRescued:   verdict.Rescued,
		RescueTag:   verdict.Tag,
		RescueBonus: verdict.Bonus,

		Metadata: domain.Metadata{
			Model:            domain.ModelName,
			Version:          domain.ModelVersion,
			ProcessingTimeMs: time.Since(started).Milliseconds(),
		},
	}
	if loc != nil {
		parsed.LocationType = loc.AdminType
	}

	a.resolver.Remember(loc, post.Timestamp)

	a.log.Debug("post annotated",
		logger.String("id", post.ID),
		logger.String("category", parsed.EventType),
		logger.Float64("confidence", parsed.Confidence),
		logger.Bool("needs_review", parsed.NeedsReview))

	return parsed, nil
}

// collectSignals gathers whatever evidence the stages produced. Stages
// with nothing to say contribute no signal rather than a zero.
func collectSignals(
	result domain.ClassificationResult,
	verdict domain.RescueVerdict,
	loc *domain.ResolvedLocation,
	locConf float64,
) domain.ConfidenceSignals {
	signals := make(domain.ConfidenceSignals, 4)

	if !result.IsUncategorized() {
		signals[domain.SignalKeyword] = result.Confidence
	}
	if verdict.Rescued {
		signals[domain.SignalRescue] = domain.UncategorizedConfidence + verdict.Bonus
	}
	if loc != nil {
		signals[domain.SignalLocation] = locConf
		switch loc.Source {
		case domain.SourceExactDictionary, domain.SourceLandmark:
			signals[domain.SignalDictionaryAgreement] = locConf
		case domain.SourceSemanticSearch:
			signals[domain.SignalSemanticAgreement] = locConf
		}
	}

	return signals
}

// eventScore is the raw classification strength carried into the output
// record: the keyword score, or for rescued posts the uncategorized
// floor plus the tier bonus.
func eventScore(result domain.ClassificationResult, verdict domain.RescueVerdict) float64 {
	if verdict.Rescued {
		return domain.UncategorizedConfidence + verdict.Bonus
	}
	return result.Confidence
}
