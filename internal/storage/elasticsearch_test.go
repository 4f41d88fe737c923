package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/storage"
)

func TestIndexName_DatedByPostTimestamp(t *testing.T) {
	sink, err := storage.NewSink(config.ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "annotations",
	}, logger.NewNop())
	require.NoError(t, err)

	ts := time.Date(2026, 3, 7, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "annotations-2026.03.07", sink.IndexName(ts))
}

func TestIndexName_DefaultsPrefixAndToday(t *testing.T) {
	sink, err := storage.NewSink(config.ElasticsearchConfig{
		URL: "http://localhost:9200",
	}, nil)
	require.NoError(t, err)

	today := time.Now().UTC().Format("2006.01.02")
	assert.Equal(t, "annotations-"+today, sink.IndexName(time.Time{}))
}
