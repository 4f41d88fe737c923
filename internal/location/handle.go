package location

import (
	"context"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
)

// HandleConfidence applies when a district or urban-body name is found
// inside an author or mention handle ("RaipurCollector"). Weaker than a
// dictionary hit in the text itself, stronger than semantic search.
const HandleConfidence = 0.85

type handleTier struct {
	index *gazetteer.Index
}

func (t *handleTier) Name() string { return domain.SourceHandleInference }

func (t *handleTier) Resolve(_ context.Context, q *Query) (*domain.ResolvedLocation, float64, bool) {
	for _, h := range q.Handles {
		rec, ok := t.index.ContainsKnownName(h)
		if !ok {
			continue
		}
		loc := FromRecord(rec, domain.SourceHandleInference, HandleConfidence)
		return loc, HandleConfidence, true
	}
	return nil, 0, false
}
