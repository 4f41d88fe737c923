// Package storage holds the optional Elasticsearch annotation sink.
// Annotated posts land in a dated index consumed by the downstream
// review service.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
)

const defaultIndexPrefix = "annotations"

// Sink indexes annotated posts into Elasticsearch.
type Sink struct {
	client *es.Client
	prefix string
	log    logger.Logger
}

// NewSink builds a sink from configuration. Call TestConnection before
// relying on it.
func NewSink(cfg config.ElasticsearchConfig, log logger.Logger) (*Sink, error) {
	esCfg := es.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	}
	if cfg.MaxRetries > 0 {
		esCfg.MaxRetries = cfg.MaxRetries
		esCfg.RetryOnStatus = []int{429, 502, 503, 504}
	}

	client, err := es.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = defaultIndexPrefix
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Sink{client: client, prefix: prefix, log: log}, nil
}

// IndexName returns the dated index an annotation belongs to, keyed by
// the post timestamp (or today when the post carries none).
func (s *Sink) IndexName(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return fmt.Sprintf("%s-%s", s.prefix, ts.Format("2006.01.02"))
}

// TestConnection verifies the cluster is reachable.
func (s *Sink) TestConnection(ctx context.Context) error {
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error response from Elasticsearch: %s", res.String())
	}
	return nil
}

// IndexAnnotation indexes one annotated post by its post ID.
func (s *Sink) IndexAnnotation(ctx context.Context, post *domain.ParsedPost) error {
	docBytes, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal annotation: %w", err)
	}

	res, err := s.client.Index(
		s.IndexName(post.Timestamp),
		bytes.NewReader(docBytes),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(post.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index annotation: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing annotation: %s", res.String())
	}
	return nil
}

// BulkIndex indexes a batch of annotated posts in one request.
func (s *Sink) BulkIndex(ctx context.Context, posts []*domain.ParsedPost) error {
	if len(posts) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, post := range posts {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": s.IndexName(post.Timestamp),
				"_id":    post.ID,
			},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("failed to encode bulk meta: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(post); err != nil {
			return fmt.Errorf("failed to encode annotation: %w", err)
		}
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing error: %s", res.String())
	}

	s.log.Debug("annotations bulk indexed", logger.Int("count", len(posts)))
	return nil
}

// UpdateReviewStatus flips the review fields on an already-indexed
// annotation, used when a human reviewer settles a pending post.
func (s *Sink) UpdateReviewStatus(ctx context.Context, postID string, ts time.Time, status string) error {
	update := map[string]interface{}{
		"doc": map[string]interface{}{
			"review_status": status,
			"needs_review":  status == domain.ReviewPending,
			"reviewed_at":   time.Now().UTC(),
		},
	}

	updateBytes, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	res, err := s.client.Update(
		s.IndexName(ts),
		postID,
		bytes.NewReader(updateBytes),
		s.client.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error updating annotation: %s", res.String())
	}
	return nil
}
