package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/logger"
)

const defaultSidecarTimeout = 5 * time.Second

// searchRequest is the body for POST /search.
type searchRequest struct {
	Text     string  `json:"text"`
	K        int     `json:"k"`
	MinScore float64 `json:"min_score"`
}

// searchResponse is the body returned by the sidecar.
type searchResponse struct {
	Matches []Match `json:"matches"`
}

// Sidecar is an HTTP client for the semantic search service.
type Sidecar struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewSidecar creates a client for the sidecar at cfg.SidecarURL.
func NewSidecar(cfg config.SemanticConfig, log logger.Logger) (*Sidecar, error) {
	if cfg.SidecarURL == "" {
		return nil, errors.New("semantic: sidecar_url is required in sidecar mode")
	}
	if log == nil {
		log = logger.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSidecarTimeout
	}
	return &Sidecar{
		baseURL: strings.TrimRight(cfg.SidecarURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

// Search sends a search request to the sidecar.
func (s *Sidecar) Search(ctx context.Context, text string, k int, minScore float64) ([]Match, error) {
	body, err := json.Marshal(&searchRequest{Text: text, K: k, MinScore: minScore})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic sidecar returned %d", resp.StatusCode)
	}

	var result searchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	// The sidecar applies k and min_score itself; enforce them again so
	// a lax server cannot widen the tier.
	matches := make([]Match, 0, len(result.Matches))
	for _, m := range result.Matches {
		if m.Score >= minScore {
			matches = append(matches, m)
		}
		if len(matches) == k {
			break
		}
	}
	return matches, nil
}

// Healthy checks GET /healthz on the sidecar.
func (s *Sidecar) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}
	return nil
}
