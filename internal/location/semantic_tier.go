package location

import (
	"context"
	"unicode/utf8"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/semantic"
)

// minSemanticCandidateLen filters out fragments too short to embed
// meaningfully.
const minSemanticCandidateLen = 3

// semanticTier sends surviving candidates to the nearest-neighbor
// backend. Backend failure is a silent miss for this post: the scorer
// simply sees one signal fewer.
type semanticTier struct {
	searcher semantic.Searcher
	index    *gazetteer.Index
	minScore float64
	limit    int
	scale    float64
	log      logger.Logger
}

func (t *semanticTier) Name() string { return domain.SourceSemanticSearch }

func (t *semanticTier) Resolve(ctx context.Context, q *Query) (*domain.ResolvedLocation, float64, bool) {
	for _, c := range q.Candidates {
		if utf8.RuneCountInString(c.Name) < minSemanticCandidateLen {
			continue
		}

		matches, err := t.searcher.Search(ctx, c.Name, t.limit, t.minScore)
		if err != nil {
			t.log.Debug("semantic tier skipped",
				logger.String("candidate", c.Name),
				logger.String("kind", semantic.ErrorKind(err)),
				logger.Error(err))
			return nil, 0, false
		}
		if len(matches) == 0 {
			continue
		}

		best := matches[0]
		confidence := best.Score * t.scale

		if rec, ok := t.index.ResolveByName(best.Name); ok {
			loc := FromRecord(rec, domain.SourceSemanticSearch, confidence)
			return loc, confidence, true
		}

		// The embedding index can hold names the in-process gazetteer
		// lacks; return the bare name rather than losing the evidence.
		loc := &domain.ResolvedLocation{
			Canonical:    best.Name,
			CanonicalKey: domain.CanonicalKeyFor(domain.AdminVillage, best.Name),
			AdminType:    domain.AdminVillage,
			Source:       domain.SourceSemanticSearch,
			Confidence:   confidence,
		}
		return loc, confidence, true
	}

	return nil, 0, false
}
