package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/semantic"
	"github.com/janscope/annotator/internal/server"
)

type unhealthySearcher struct{}

func (unhealthySearcher) Search(context.Context, string, int, float64) ([]semantic.Match, error) {
	return nil, semantic.ErrUnavailable
}

func (unhealthySearcher) Healthy(context.Context) error {
	return errors.New("connection refused")
}

func getHealth(t *testing.T, components server.Components) (int, map[string]interface{}) {
	t.Helper()

	s := server.New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, components, nil, logger.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.Handler().ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_AllComponentsLoaded(t *testing.T) {
	code, body := getHealth(t, server.Components{
		Gazetteer:  gazetteer.Build(config.GazetteerConfig{}, logger.NewNop()),
		Categories: 18,
		Tiers:      8,
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "annotator", body["service"])
	assert.NotEmpty(t, body["version"])

	checks := body["checks"].(map[string]interface{})
	gaz := checks["gazetteer"].(map[string]interface{})
	assert.Equal(t, "ok", gaz["status"])
	assert.Greater(t, gaz["villages"], float64(0))
	assert.Equal(t, "disabled", checks["semantic"].(map[string]interface{})["status"])
}

func TestHealth_EmptyGazetteerUnhealthy(t *testing.T) {
	code, body := getHealth(t, server.Components{
		Gazetteer:  gazetteer.NewIndex(logger.NewNop()),
		Categories: 18,
		Tiers:      8,
	})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", body["status"])
}

func TestHealth_SemanticUnreachableIsDegradedOnly(t *testing.T) {
	code, body := getHealth(t, server.Components{
		Gazetteer:  gazetteer.Build(config.GazetteerConfig{}, logger.NewNop()),
		Categories: 18,
		Tiers:      8,
		Searcher:   unhealthySearcher{},
	})

	// The resolver skips a failing semantic tier, so the service stays up.
	assert.Equal(t, http.StatusOK, code)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "unreachable", checks["semantic"].(map[string]interface{})["status"])
}
