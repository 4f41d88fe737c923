package gazetteer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
)

// snapshotRow is one entry of a reference snapshot file. The files are
// exported by the upstream registry tooling as JSON arrays.
type snapshotRow struct {
	Name          string   `json:"name"`
	Aliases       []string `json:"aliases"`
	District      string   `json:"district"`
	Assembly      string   `json:"assembly"`
	Block         string   `json:"block"`
	GramPanchayat string   `json:"gp"`
}

// Build assembles the index from the embedded seed plus any configured
// snapshot files. Missing or malformed files are logged and skipped; Build
// never fails, because the resolver must run against a partial or even
// empty gazetteer.
func Build(cfg config.GazetteerConfig, log logger.Logger) *Index {
	if log == nil {
		log = logger.NewNop()
	}
	x := NewIndex(log)

	if !cfg.SeedDisabled {
		for _, rec := range seedRecords() {
			x.AddRecord(rec)
		}
	}

	loadSnapshot(x, cfg.DistrictsFile, domain.AdminDistrict, log)
	loadSnapshot(x, cfg.UrbanBodiesFile, domain.AdminULB, log)
	loadSnapshot(x, cfg.VillagesFile, domain.AdminVillage, log)

	stats := x.Stats()
	log.Info("gazetteer index built",
		logger.Int("villages", stats.Villages),
		logger.Int("urban_bodies", stats.UrbanBodies),
		logger.Int("districts", stats.Districts))

	return x
}

// loadSnapshot reads one reference file into the index. Every row becomes
// a record of the given administrative type.
func loadSnapshot(x *Index, path, adminType string, log logger.Logger) {
	if path == "" {
		return
	}

	rows, err := readSnapshot(path)
	if err != nil {
		log.Warn("gazetteer snapshot unavailable, continuing with partial data",
			logger.String("path", path),
			logger.String("admin_type", adminType),
			logger.Error(err))
		return
	}

	added := 0
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		rec := domain.GazetteerRecord{
			Canonical:     row.Name,
			Aliases:       row.Aliases,
			AdminType:     adminType,
			District:      row.District,
			Assembly:      row.Assembly,
			Block:         row.Block,
			GramPanchayat: row.GramPanchayat,
		}
		rec.Hierarchy = BuildHierarchy(&rec)
		x.AddRecord(rec)
		added++
	}

	log.Info("gazetteer snapshot loaded",
		logger.String("path", path),
		logger.String("admin_type", adminType),
		logger.Int("records", added))
}

func readSnapshot(path string) ([]snapshotRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var rows []snapshotRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return rows, nil
}
