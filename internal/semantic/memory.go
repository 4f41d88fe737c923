package semantic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/logger"
)

const (
	defaultEmbedModel   = string(openai.SmallEmbedding3)
	defaultEmbedTimeout = 10 * time.Second
	defaultEmbedRPS     = 5.0
	defaultCacheTTL     = 15 * time.Minute
)

// Embedder turns a text fragment into a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// embeddingsFile is the on-disk shape produced by the offline indexing
// job: one vector per gazetteer name, all of one dimension.
type embeddingsFile struct {
	Model     string           `json:"model"`
	Dimension int              `json:"dimension"`
	Entries   []embeddingEntry `json:"entries"`
}

type embeddingEntry struct {
	Name   string    `json:"name"`
	Vector []float32 `json:"vector"`
}

// MemoryIndex is an exhaustive cosine-similarity index over precomputed
// gazetteer-name embeddings. Vectors are unit-normalized at load, so
// similarity is a dot product. Query embeddings are cached by text.
type MemoryIndex struct {
	names    []string
	vectors  [][]float32
	dim      int
	embedder Embedder
	cache    *gocache.Cache
	log      logger.Logger
}

// NewMemoryIndex loads cfg.EmbeddingsFile and wires the query embedder.
func NewMemoryIndex(cfg config.SemanticConfig, embedder Embedder, log logger.Logger) (*MemoryIndex, error) {
	if embedder == nil {
		return nil, errors.New("semantic: embedder is required in memory mode")
	}
	if cfg.EmbeddingsFile == "" {
		return nil, errors.New("semantic: embeddings_file is required in memory mode")
	}
	if log == nil {
		log = logger.NewNop()
	}

	raw, err := os.ReadFile(cfg.EmbeddingsFile)
	if err != nil {
		return nil, fmt.Errorf("read embeddings file: %w", err)
	}
	var file embeddingsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse embeddings file: %w", err)
	}
	if file.Dimension <= 0 {
		return nil, fmt.Errorf("embeddings file %s: dimension must be positive", cfg.EmbeddingsFile)
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("embeddings file %s: no entries", cfg.EmbeddingsFile)
	}

	idx := &MemoryIndex{
		names:    make([]string, 0, len(file.Entries)),
		vectors:  make([][]float32, 0, len(file.Entries)),
		dim:      file.Dimension,
		embedder: embedder,
		log:      log,
	}
	for _, e := range file.Entries {
		if len(e.Vector) != file.Dimension {
			return nil, fmt.Errorf("embeddings entry %q: got %d dimensions, want %d", e.Name, len(e.Vector), file.Dimension)
		}
		unit, err := normalizeVector(e.Vector)
		if err != nil {
			return nil, fmt.Errorf("embeddings entry %q: %w", e.Name, err)
		}
		idx.names = append(idx.names, e.Name)
		idx.vectors = append(idx.vectors, unit)
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	idx.cache = gocache.New(ttl, 2*ttl)

	log.Info("semantic index loaded",
		logger.String("file", cfg.EmbeddingsFile),
		logger.String("model", file.Model),
		logger.Int("entries", len(idx.names)),
		logger.Int("dimension", idx.dim))
	return idx, nil
}

// Search embeds text and scans the index.
func (m *MemoryIndex) Search(ctx context.Context, text string, k int, minScore float64) ([]Match, error) {
	text = strings.TrimSpace(text)
	if text == "" || k <= 0 {
		return nil, nil
	}

	query, err := m.queryVector(ctx, text)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, k)
	for i, vec := range m.vectors {
		score := dot(query, vec)
		if score >= minScore {
			matches = append(matches, Match{Name: m.names[i], Score: score})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Healthy reports nil once the index is loaded; embedding failures
// surface per query.
func (m *MemoryIndex) Healthy(context.Context) error {
	if len(m.vectors) == 0 {
		return errors.New("semantic index is empty")
	}
	return nil
}

// Size returns the number of indexed names.
func (m *MemoryIndex) Size() int {
	return len(m.names)
}

func (m *MemoryIndex) queryVector(ctx context.Context, text string) ([]float32, error) {
	key := strings.ToLower(text)
	if cached, ok := m.cache.Get(key); ok {
		return cached.([]float32), nil
	}

	raw, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(raw) != m.dim {
		return nil, fmt.Errorf("embed query: got %d dimensions, want %d", len(raw), m.dim)
	}
	unit, err := normalizeVector(raw)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	m.cache.Set(key, unit, gocache.DefaultExpiration)
	return unit, nil
}

func normalizeVector(v []float32) ([]float32, error) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, errors.New("zero vector")
	}
	unit := make([]float32, len(v))
	for i, x := range v {
		unit[i] = float32(float64(x) / norm)
	}
	return unit, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// OpenAIEmbedder fetches query vectors from an OpenAI-compatible
// embeddings endpoint, rate limited.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	limiter *rate.Limiter
	timeout time.Duration
}

// NewOpenAIEmbedder builds the embedder from cfg. The API key is
// mandatory; base URL and model fall back to OpenAI defaults.
func NewOpenAIEmbedder(cfg config.SemanticConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("semantic: api_key (OPENAI_API_KEY) is required in memory mode")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultEmbedModel
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = defaultEmbedRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(math.Ceil(rps))
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}

	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   openai.EmbeddingModel(model),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		timeout: timeout,
	}, nil
}

// Embed requests one embedding vector.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embeddings response has no data")
	}
	return resp.Data[0].Embedding, nil
}
