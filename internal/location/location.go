// Package location resolves the administrative location a post talks
// about. Resolution is a fixed-order chain of tiers, each trying one
// evidence source: landmark phrases, gazetteer lookup over extracted
// candidates, handle inference, semantic nearest-neighbor search, and
// finally temporal inference from recent posts. The first tier with a
// hit wins; a post no tier can place yields (nil, 0), never an error.
package location

import (
	"context"
	"strconv"
	"time"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/semantic"
)

// Query carries everything a tier may consult. Candidates and the
// context flags are computed once by the resolver so tiers stay cheap.
type Query struct {
	Text       string
	Handles    []string
	Hints      []string
	Timestamp  time.Time
	Candidates []Candidate

	urbanContext bool
	ruralContext bool
	ward         int
	zone         int
}

// Tier is one resolution strategy. A miss returns (nil, 0, false);
// tiers never return errors, backend failures count as misses.
type Tier interface {
	Name() string
	Resolve(ctx context.Context, q *Query) (*domain.ResolvedLocation, float64, bool)
}

// Resolver runs the tier chain. The chain itself is immutable after
// construction; the only mutable piece is the temporal window, updated
// via Remember after each post.
type Resolver struct {
	tiers  []Tier
	window *Window
	cfg    config.ResolverConfig
	index  *gazetteer.Index
	log    logger.Logger
}

// NewResolver assembles the standard chain. searcher may be nil, which
// disables the semantic tier; with TemporalEnabled false the temporal
// tier is left out and Remember becomes a no-op.
func NewResolver(
	cfg config.ResolverConfig,
	index *gazetteer.Index,
	landmarks *LandmarkTable,
	searcher semantic.Searcher,
	log logger.Logger,
) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}

	r := &Resolver{cfg: cfg, index: index, log: log}

	if landmarks != nil {
		r.tiers = append(r.tiers, &landmarkTier{table: landmarks})
	}
	r.tiers = append(r.tiers,
		&gazetteerTier{index: index, tie: cfg.TieBreak},
		&handleTier{index: index},
	)
	if searcher != nil {
		r.tiers = append(r.tiers, &semanticTier{
			searcher: searcher,
			index:    index,
			minScore: cfg.SemanticMinScore,
			limit:    cfg.SemanticLimit,
			scale:    cfg.SemanticScale,
			log:      log,
		})
	}
	if cfg.TemporalEnabled {
		r.window = NewWindow(cfg.WindowSize, cfg.WindowMaxAge)
		r.tiers = append(r.tiers, &temporalTier{
			window:     r.window,
			confidence: cfg.TemporalConf,
		})
	}

	return r
}

// Resolve runs the chain over post text. The returned confidence is 0
// and the location nil when no tier produced evidence.
func (r *Resolver) Resolve(ctx context.Context, text string, handles, hints []string, ts time.Time) (*domain.ResolvedLocation, float64) {
	q := &Query{
		Text:         text,
		Handles:      handles,
		Hints:        hints,
		Timestamp:    ts,
		Candidates:   ExtractCandidates(text),
		urbanContext: HasUrbanContext(text),
		ruralContext: HasRuralContext(text),
		ward:         WardNumber(text),
		zone:         ZoneNumber(text),
	}

	for _, tier := range r.tiers {
		loc, conf, ok := tier.Resolve(ctx, q)
		if !ok {
			continue
		}
		attachWard(loc, q)
		r.log.Debug("location resolved",
			logger.String("tier", tier.Name()),
			logger.String("canonical", loc.Canonical),
			logger.Float64("confidence", conf))
		return loc, conf
	}

	return nil, 0
}

// Remember records a resolved location in the temporal window. No-op
// when temporal inference is disabled or the location is nil.
func (r *Resolver) Remember(loc *domain.ResolvedLocation, at time.Time) {
	if r.window == nil || loc == nil {
		return
	}
	// Temporally inferred locations never feed back into the window;
	// otherwise one resolved post could echo indefinitely.
	if loc.Source == domain.SourceTemporalInference {
		return
	}
	r.window.Add(loc, at)
}

// Fork returns a resolver sharing the read-only chain state but with
// its own temporal window, for concurrent batch workers.
func (r *Resolver) Fork() *Resolver {
	clone := *r
	if r.window != nil {
		clone.window = NewWindow(r.cfg.WindowSize, r.cfg.WindowMaxAge)
		clone.tiers = make([]Tier, len(r.tiers))
		copy(clone.tiers, r.tiers)
		for i, t := range clone.tiers {
			if tt, ok := t.(*temporalTier); ok {
				forked := *tt
				forked.window = clone.window
				clone.tiers[i] = &forked
			}
		}
	}
	return &clone
}

// WindowDepth reports the temporal window fill, 0 when disabled.
func (r *Resolver) WindowDepth() int {
	if r.window == nil {
		return 0
	}
	return r.window.Len()
}

// attachWard binds separately extracted ward/zone numbers to urban
// matches and extends the hierarchy path with the ward.
func attachWard(loc *domain.ResolvedLocation, q *Query) {
	if loc == nil || !loc.IsUrban() {
		return
	}
	if q.ward > 0 && loc.Ward == 0 {
		loc.Ward = q.ward
		loc.Hierarchy = append(loc.Hierarchy, "वार्ड "+strconv.Itoa(q.ward))
	}
	if q.zone > 0 && loc.Zone == 0 {
		loc.Zone = q.zone
	}
}

// FromRecord builds a ResolvedLocation from a gazetteer record with the
// given provenance and confidence. The hierarchy is taken from the
// record or derived from its containment fields.
func FromRecord(rec *domain.GazetteerRecord, source string, confidence float64) *domain.ResolvedLocation {
	loc := &domain.ResolvedLocation{
		Canonical:     rec.Canonical,
		CanonicalKey:  domain.CanonicalKeyFor(rec.AdminType, rec.Canonical),
		AdminType:     rec.AdminType,
		District:      rec.District,
		Assembly:      rec.Assembly,
		Block:         rec.Block,
		GramPanchayat: rec.GramPanchayat,
		Source:        source,
		Confidence:    confidence,
	}

	switch rec.AdminType {
	case domain.AdminVillage, domain.AdminGramPanchayat:
		loc.Village = rec.Canonical
	case domain.AdminULB:
		loc.ULB = rec.Canonical
	case domain.AdminDistrict:
		loc.District = rec.Canonical
	}

	if len(rec.Hierarchy) > 0 {
		loc.Hierarchy = append([]string(nil), rec.Hierarchy...)
	} else {
		loc.Hierarchy = gazetteer.BuildHierarchy(rec)
	}
	return loc
}
