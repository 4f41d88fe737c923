package semantic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/semantic"
)

type stubEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func writeEmbeddings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "embeddings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const testEmbeddings = `{
  "model": "text-embedding-3-small",
  "dimension": 3,
  "entries": [
    {"name": "रायपुर", "vector": [1, 0, 0]},
    {"name": "बिलासपुर", "vector": [0, 1, 0]},
    {"name": "दुर्ग", "vector": [3, 1, 0]}
  ]
}`

func TestNew_OffReturnsNoSearcher(t *testing.T) {
	for _, mode := range []string{"", config.SemanticOff} {
		s, err := semantic.New(config.SemanticConfig{Mode: mode}, logger.NewNop())
		require.NoError(t, err)
		assert.Nil(t, s)
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SemanticConfig
	}{
		{name: "unknown mode", cfg: config.SemanticConfig{Mode: "quantum"}},
		{name: "sidecar without url", cfg: config.SemanticConfig{Mode: config.SemanticSidecar}},
		{name: "memory without api key", cfg: config.SemanticConfig{Mode: config.SemanticMemory}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := semantic.New(tt.cfg, logger.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestSidecar_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Text     string  `json:"text"`
			K        int     `json:"k"`
			MinScore float64 `json:"min_score"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "अभनपुर", req.Text)
		assert.Equal(t, 3, req.K)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[{"name":"अभनपुर","score":0.93},{"name":"आरंग","score":0.78}]}`))
	}))
	defer server.Close()

	client, err := semantic.NewSidecar(config.SemanticConfig{SidecarURL: server.URL}, logger.NewNop())
	require.NoError(t, err)

	matches, err := client.Search(context.Background(), "अभनपुर", 3, 0.75)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "अभनपुर", matches[0].Name)
	assert.InDelta(t, 0.93, matches[0].Score, 1e-9)
}

func TestSidecar_SearchEnforcesFloorAndK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"matches":[
			{"name":"a","score":0.9},{"name":"b","score":0.8},
			{"name":"c","score":0.7},{"name":"d","score":0.76}]}`))
	}))
	defer server.Close()

	client, err := semantic.NewSidecar(config.SemanticConfig{SidecarURL: server.URL}, logger.NewNop())
	require.NoError(t, err)

	matches, err := client.Search(context.Background(), "x", 2, 0.75)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].Name)
	assert.Equal(t, "b", matches[1].Name)
}

func TestSidecar_SearchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := semantic.NewSidecar(config.SemanticConfig{SidecarURL: url}, logger.NewNop())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "x", 1, 0.5)
	assert.ErrorIs(t, err, semantic.ErrUnavailable)
}

func TestSidecar_Healthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/healthz", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := semantic.NewSidecar(config.SemanticConfig{SidecarURL: server.URL}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, client.Healthy(context.Background()))
}

func TestSidecar_Unhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := semantic.NewSidecar(config.SemanticConfig{SidecarURL: server.URL}, logger.NewNop())
	require.NoError(t, err)
	assert.Error(t, client.Healthy(context.Background()))
}

func TestMemoryIndex_SearchRanksByCosine(t *testing.T) {
	path := writeEmbeddings(t, testEmbeddings)
	emb := &stubEmbedder{vec: []float32{1, 0, 0}}

	idx, err := semantic.NewMemoryIndex(
		config.SemanticConfig{EmbeddingsFile: path, CacheTTL: time.Minute}, emb, logger.NewNop())
	require.NoError(t, err)
	require.Equal(t, 3, idx.Size())

	matches, err := idx.Search(context.Background(), "रायपुर शहर", 5, 0.75)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "रायपुर", matches[0].Name)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.Equal(t, "दुर्ग", matches[1].Name)
	assert.InDelta(t, 0.9487, matches[1].Score, 1e-3)
}

func TestMemoryIndex_RespectsK(t *testing.T) {
	path := writeEmbeddings(t, testEmbeddings)
	emb := &stubEmbedder{vec: []float32{1, 0, 0}}

	idx, err := semantic.NewMemoryIndex(config.SemanticConfig{EmbeddingsFile: path}, emb, logger.NewNop())
	require.NoError(t, err)

	matches, err := idx.Search(context.Background(), "रायपुर", 1, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "रायपुर", matches[0].Name)
}

func TestMemoryIndex_CachesQueryEmbeddings(t *testing.T) {
	path := writeEmbeddings(t, testEmbeddings)
	emb := &stubEmbedder{vec: []float32{0, 1, 0}}

	idx, err := semantic.NewMemoryIndex(config.SemanticConfig{EmbeddingsFile: path}, emb, logger.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := idx.Search(context.Background(), "बिलासपुर", 1, 0.5)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, emb.calls)

	_, err = idx.Search(context.Background(), "कोरबा", 1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, emb.calls)
}

func TestMemoryIndex_EmptyQuerySkipsEmbedding(t *testing.T) {
	path := writeEmbeddings(t, testEmbeddings)
	emb := &stubEmbedder{vec: []float32{1, 0, 0}}

	idx, err := semantic.NewMemoryIndex(config.SemanticConfig{EmbeddingsFile: path}, emb, logger.NewNop())
	require.NoError(t, err)

	matches, err := idx.Search(context.Background(), "   ", 3, 0.5)
	require.NoError(t, err)
	assert.Nil(t, matches)
	assert.Zero(t, emb.calls)
}

func TestMemoryIndex_EmbedderErrorPropagates(t *testing.T) {
	path := writeEmbeddings(t, testEmbeddings)
	emb := &stubEmbedder{err: errors.New("quota exhausted")}

	idx, err := semantic.NewMemoryIndex(config.SemanticConfig{EmbeddingsFile: path}, emb, logger.NewNop())
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), "रायपुर", 1, 0.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query")
}

func TestMemoryIndex_FileErrors(t *testing.T) {
	emb := &stubEmbedder{vec: []float32{1, 0, 0}}

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "no entries", body: `{"dimension": 3, "entries": []}`},
		{name: "bad dimension", body: `{"dimension": 0, "entries": [{"name":"x","vector":[1]}]}`},
		{
			name: "dimension mismatch",
			body: `{"dimension": 3, "entries": [{"name":"x","vector":[1, 0]}]}`,
		},
		{
			name: "zero vector",
			body: `{"dimension": 3, "entries": [{"name":"x","vector":[0, 0, 0]}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEmbeddings(t, tt.body)
			_, err := semantic.NewMemoryIndex(config.SemanticConfig{EmbeddingsFile: path}, emb, logger.NewNop())
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		cfg := config.SemanticConfig{EmbeddingsFile: filepath.Join(t.TempDir(), "absent.json")}
		_, err := semantic.NewMemoryIndex(cfg, emb, logger.NewNop())
		assert.Error(t, err)
	})
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: context.DeadlineExceeded, want: "timeout"},
		{err: errors.New("semantic sidecar returned 503"), want: "5xx"},
		{err: errors.New("semantic sidecar returned 404"), want: "4xx"},
		{err: errors.New("dial tcp 127.0.0.1:9999: connection refused"), want: "connection"},
		{err: errors.New("decode response: unexpected EOF"), want: "decode"},
		{err: errors.New("something else entirely"), want: "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, semantic.ErrorKind(tt.err))
	}
}
