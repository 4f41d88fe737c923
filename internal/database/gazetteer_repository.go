package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/janscope/annotator/internal/domain"
)

// gazetteerRow mirrors the reference-store schema. Aliases are stored
// as a JSON array in a text column so the same schema works on both
// Postgres and SQLite snapshots.
type gazetteerRow struct {
	Canonical     string `db:"canonical"`
	Aliases       []byte `db:"aliases"`
	AdminType     string `db:"admin_type"`
	District      string `db:"district"`
	Assembly      string `db:"assembly"`
	Block         string `db:"block"`
	GramPanchayat string `db:"gp"`
}

// GazetteerRepository reads reference place records.
type GazetteerRepository struct {
	db *sqlx.DB
}

// NewGazetteerRepository creates a gazetteer repository.
func NewGazetteerRepository(db *sqlx.DB) *GazetteerRepository {
	return &GazetteerRepository{db: db}
}

// ListAll returns every place record in the store.
func (r *GazetteerRepository) ListAll(ctx context.Context) ([]domain.GazetteerRecord, error) {
	return r.query(ctx,
		`SELECT canonical, aliases, admin_type, district, assembly, block, gp
		 FROM gazetteer
		 ORDER BY admin_type, canonical`)
}

// ListByType returns the records for one administrative level, one call
// per resolver index (villages, urban bodies, districts).
func (r *GazetteerRepository) ListByType(ctx context.Context, adminType string) ([]domain.GazetteerRecord, error) {
	return r.query(ctx, r.db.Rebind(
		`SELECT canonical, aliases, admin_type, district, assembly, block, gp
		 FROM gazetteer
		 WHERE admin_type = ?
		 ORDER BY canonical`), adminType)
}

// Count returns the number of stored place records.
func (r *GazetteerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM gazetteer`); err != nil {
		return 0, fmt.Errorf("count gazetteer records: %w", err)
	}
	return n, nil
}

func (r *GazetteerRepository) query(ctx context.Context, stmt string, args ...interface{}) ([]domain.GazetteerRecord, error) {
	var rows []gazetteerRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, fmt.Errorf("query gazetteer records: %w", err)
	}

	records := make([]domain.GazetteerRecord, 0, len(rows))
	for _, row := range rows {
		rec := domain.GazetteerRecord{
			Canonical:     row.Canonical,
			AdminType:     row.AdminType,
			District:      row.District,
			Assembly:      row.Assembly,
			Block:         row.Block,
			GramPanchayat: row.GramPanchayat,
		}
		if len(row.Aliases) > 0 {
			if err := json.Unmarshal(row.Aliases, &rec.Aliases); err != nil {
				return nil, fmt.Errorf("decode aliases for %q: %w", row.Canonical, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
