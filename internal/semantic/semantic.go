// Package semantic provides nearest-neighbor search over gazetteer names
// for the resolver's semantic tier. Two backends implement the same
// interface: an HTTP sidecar service and an in-memory cosine index whose
// query vectors come from an OpenAI-compatible embeddings API.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/logger"
)

// ErrUnavailable indicates the search backend is unreachable. The
// resolver treats it as "tier skipped for this post", not as a pipeline
// failure.
var ErrUnavailable = errors.New("semantic search unavailable")

// Match is one nearest neighbor: a gazetteer name and its similarity in [0,1].
type Match struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Searcher finds gazetteer names semantically close to a text fragment.
type Searcher interface {
	// Search returns up to k matches with similarity >= minScore, best
	// first.
	Search(ctx context.Context, text string, k int, minScore float64) ([]Match, error)
	// Healthy reports whether the backend can serve queries.
	Healthy(ctx context.Context) error
}

// New builds the configured Searcher. Mode "off" (or empty) returns nil;
// the resolver disables the semantic tier when no Searcher is present.
func New(cfg config.SemanticConfig, log logger.Logger) (Searcher, error) {
	switch cfg.Mode {
	case "", config.SemanticOff:
		return nil, nil
	case config.SemanticSidecar:
		return NewSidecar(cfg, log)
	case config.SemanticMemory:
		embedder, err := NewOpenAIEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		return NewMemoryIndex(cfg, embedder, log)
	default:
		return nil, fmt.Errorf("semantic: unknown mode %q", cfg.Mode)
	}
}

// ErrorKind buckets a backend error for logging and metrics.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "deadline exceeded") || strings.Contains(lower, "timeout"):
		return "timeout"
	case strings.Contains(lower, "returned 5"):
		return "5xx"
	case strings.Contains(lower, "returned 4"):
		return "4xx"
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "dial tcp") ||
		strings.Contains(lower, "no such host"):
		return "connection"
	case strings.Contains(lower, "decode") || strings.Contains(lower, "unmarshal") ||
		strings.Contains(lower, "eof"):
		return "decode"
	default:
		return "unknown"
	}
}
