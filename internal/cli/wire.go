package cli

import (
	"context"
	"fmt"

	"github.com/janscope/annotator/internal/annotator"
	"github.com/janscope/annotator/internal/classify"
	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/consensus"
	"github.com/janscope/annotator/internal/database"
	"github.com/janscope/annotator/internal/entity"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/location"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/semantic"
	"github.com/janscope/annotator/internal/server"
	"github.com/janscope/annotator/internal/taxonomy"
)

// pipeline holds everything a command needs after bootstrap.
type pipeline struct {
	cfg        *config.Config
	log        logger.Logger
	index      *gazetteer.Index
	classifier *classify.Classifier
	rescue     *classify.RescueEngine
	searcher   semantic.Searcher
	annotator  *annotator.Annotator
}

// buildPipeline assembles the annotation pipeline from configuration.
// Reference data is best-effort: a missing gazetteer file or an
// unreachable reference database degrades the resolver, it never aborts
// startup. Only an unparseable config or taxonomy is fatal.
func buildPipeline(ctx context.Context, cfgPath string) (*pipeline, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	index := gazetteer.Build(cfg.Gazetteer, log)
	loadReferenceStore(ctx, cfg, index, log)
	landmarks := location.NewLandmarkTable(cfg.Gazetteer.LandmarksFile, index, log)

	categories := taxonomy.DefaultCategories()
	if cfg.Taxonomy.File != "" {
		categories, err = taxonomy.LoadCategories(cfg.Taxonomy.File)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
	}
	classifier := classify.NewClassifier(categories, log)

	rescue, err := classify.NewRescueEngine(taxonomy.DefaultRescueTiers(), log)
	if err != nil {
		return nil, fmt.Errorf("build rescue engine: %w", err)
	}
	if cfg.Taxonomy.RescueOverlay != "" {
		if err := rescue.ReloadOverlay(cfg.Taxonomy.RescueOverlay); err != nil {
			log.Warn("rescue overlay rejected, keeping built-in tiers",
				logger.String("path", cfg.Taxonomy.RescueOverlay),
				logger.Error(err))
		}
	}

	searcher, err := semantic.New(cfg.Semantic, log)
	if err != nil {
		log.Warn("semantic search disabled", logger.Error(err))
		searcher = nil
	}

	resolver := location.NewResolver(cfg.Resolver, index, landmarks, searcher, log)

	ann := annotator.New(
		classifier,
		rescue,
		resolver,
		entity.NewExtractor(log),
		consensus.NewScorer(cfg.Consensus),
		log,
	)

	return &pipeline{
		cfg:        cfg,
		log:        log,
		index:      index,
		classifier: classifier,
		rescue:     rescue,
		searcher:   searcher,
		annotator:  ann,
	}, nil
}

// loadReferenceStore merges SQL gazetteer records into the index when a
// reference database is configured.
func loadReferenceStore(ctx context.Context, cfg *config.Config, index *gazetteer.Index, log logger.Logger) {
	if !cfg.Database.Enabled {
		return
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Warn("reference database unavailable, continuing with embedded gazetteer",
			logger.Error(err))
		return
	}
	defer db.Close()

	records, err := database.NewGazetteerRepository(db).ListAll(ctx)
	if err != nil {
		log.Warn("reference records unreadable, continuing with embedded gazetteer",
			logger.Error(err))
		return
	}

	for _, rec := range records {
		index.AddRecord(rec)
	}
	log.Info("reference store merged", logger.Int("records", len(records)))
}

// components reports the health-check view of the pipeline.
func (p *pipeline) components() server.Components {
	return server.Components{
		Gazetteer:  p.index,
		Categories: p.classifier.CategoryCount(),
		Tiers:      p.rescue.TierCount(),
		Searcher:   p.searcher,
	}
}
