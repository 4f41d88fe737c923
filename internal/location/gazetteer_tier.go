package location

import (
	"context"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
)

// gazetteerTier checks every extracted candidate against the three
// administrative indices. One match wins outright; several matches go
// through the additive tie-break score.
type gazetteerTier struct {
	index *gazetteer.Index
	tie   config.TieBreakConfig
}

func (t *gazetteerTier) Name() string { return domain.SourceExactDictionary }

// scoredMatch pairs a gazetteer record with the candidate that found it.
type scoredMatch struct {
	rec       *domain.GazetteerRecord
	candidate Candidate
	order     int
}

func (t *gazetteerTier) Resolve(_ context.Context, q *Query) (*domain.ResolvedLocation, float64, bool) {
	var matches []scoredMatch
	seen := make(map[*domain.GazetteerRecord]bool)

	lookup := func(name string, marker bool, order int) {
		for _, rec := range t.index.LookupAll(name) {
			if seen[rec] {
				continue
			}
			seen[rec] = true
			matches = append(matches, scoredMatch{
				rec:       rec,
				candidate: Candidate{Name: name, Marker: marker},
				order:     order,
			})
		}
	}

	for i, c := range q.Candidates {
		lookup(c.Name, c.Marker, i)
	}
	// Hints come from an earlier pass (quoted names, mentions); they
	// rank after in-text candidates.
	for i, h := range q.Hints {
		lookup(h, false, len(q.Candidates)+i)
	}

	if len(matches) == 0 {
		return nil, 0, false
	}

	best := matches[0]
	if len(matches) > 1 {
		bestScore := t.score(best, q)
		for _, m := range matches[1:] {
			if s := t.score(m, q); s > bestScore {
				best, bestScore = m, s
			}
		}
	}

	confidence := gazetteer.LevelConfidence(best.rec.AdminType)
	loc := FromRecord(best.rec, domain.SourceExactDictionary, confidence)
	return loc, confidence, true
}

// score computes the tie-break value for one simultaneous match:
// base + specificity + context agreement + marker adjacency + path
// depth + the raw lookup confidence. The constants are configuration
// knobs tuned against labelled posts.
func (t *gazetteerTier) score(m scoredMatch, q *Query) float64 {
	s := t.tie.Base

	switch m.rec.AdminType {
	case domain.AdminVillage, domain.AdminGramPanchayat:
		s += t.tie.VillageBonus
	case domain.AdminULB:
		s += t.tie.ULBBonus
	case domain.AdminDistrict:
		s += t.tie.DistrictBonus
	}

	urban := m.rec.AdminType == domain.AdminULB
	if urban && q.urbanContext {
		s += t.tie.ContextBonus
	}
	if !urban && m.rec.AdminType != domain.AdminDistrict && q.ruralContext {
		s += t.tie.ContextBonus
	}

	if m.candidate.Marker {
		s += t.tie.MarkerBonus
	}

	depth := len(m.rec.Hierarchy)
	if depth == 0 {
		depth = len(gazetteer.BuildHierarchy(m.rec))
	}
	s += t.tie.DepthBonus * float64(depth)

	s += gazetteer.LevelConfidence(m.rec.AdminType)

	// Earlier candidates edge out later ones when everything else is
	// equal.
	s -= 0.001 * float64(m.order)

	return s
}
