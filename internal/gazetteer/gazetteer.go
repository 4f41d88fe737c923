// Package gazetteer builds the administrative reference index used by the
// location resolver. Three name→record maps (villages, urban local bodies,
// districts) are populated once at startup and read-only afterwards, so the
// index is safe for concurrent readers.
package gazetteer

import (
	"strings"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/normalize"
)

// Lookup confidence by administrative level. More specific units carry
// more evidence about where an event actually happened.
const (
	VillageConfidence  = 0.95
	UrbanConfidence    = 0.90
	DistrictConfidence = 0.85
)

// Index holds the three administrative lookup tables. Keys are
// normalize.FoldKey forms of canonical names and every registered alias.
type Index struct {
	villages    map[string]*domain.GazetteerRecord
	urbanBodies map[string]*domain.GazetteerRecord
	districts   map[string]*domain.GazetteerRecord

	log logger.Logger
}

// NewIndex creates an empty index. An empty index is fully functional:
// every lookup misses and resolution falls through to lower tiers.
func NewIndex(log logger.Logger) *Index {
	if log == nil {
		log = logger.NewNop()
	}
	return &Index{
		villages:    make(map[string]*domain.GazetteerRecord),
		urbanBodies: make(map[string]*domain.GazetteerRecord),
		districts:   make(map[string]*domain.GazetteerRecord),
		log:         log,
	}
}

// AddRecord indexes rec under its canonical name and all aliases. When the
// canonical already exists in the target table the alias sets merge, so
// later sources enrich rather than duplicate earlier ones.
func (x *Index) AddRecord(rec domain.GazetteerRecord) {
	if rec.Canonical == "" {
		return
	}

	table := x.tableFor(rec.AdminType)
	if table == nil {
		x.log.Warn("gazetteer record with unknown admin type skipped",
			logger.String("canonical", rec.Canonical),
			logger.String("admin_type", rec.AdminType))
		return
	}

	key := normalize.FoldKey(rec.Canonical)
	existing, ok := table[key]
	if !ok {
		stored := rec
		table[key] = &stored
		existing = &stored
	} else {
		existing.Aliases = mergeAliases(existing.Aliases, rec.Aliases)
		fillMissing(existing, &rec)
	}

	for _, alias := range rec.Aliases {
		ak := normalize.FoldKey(alias)
		if ak == "" || ak == key {
			continue
		}
		if _, taken := table[ak]; !taken {
			table[ak] = existing
		}
	}
}

// ResolveByName returns the record registered under name, checking the most
// specific table first (village, then urban body, then district). O(1).
func (x *Index) ResolveByName(name string) (*domain.GazetteerRecord, bool) {
	key := normalize.FoldKey(name)
	if key == "" {
		return nil, false
	}
	if rec, ok := x.villages[key]; ok {
		return rec, true
	}
	if rec, ok := x.urbanBodies[key]; ok {
		return rec, true
	}
	if rec, ok := x.districts[key]; ok {
		return rec, true
	}
	return nil, false
}

// LookupAll returns the matches for name across every table, most specific
// first. The resolver tie-breaks when more than one table matches.
func (x *Index) LookupAll(name string) []*domain.GazetteerRecord {
	key := normalize.FoldKey(name)
	if key == "" {
		return nil
	}

	var out []*domain.GazetteerRecord
	if rec, ok := x.villages[key]; ok {
		out = append(out, rec)
	}
	if rec, ok := x.urbanBodies[key]; ok {
		out = append(out, rec)
	}
	if rec, ok := x.districts[key]; ok {
		out = append(out, rec)
	}
	return out
}

// ResolveVillage looks up name in the village table only.
func (x *Index) ResolveVillage(name string) (*domain.GazetteerRecord, bool) {
	rec, ok := x.villages[normalize.FoldKey(name)]
	return rec, ok
}

// ResolveUrbanBody looks up name in the urban local body table only.
func (x *Index) ResolveUrbanBody(name string) (*domain.GazetteerRecord, bool) {
	rec, ok := x.urbanBodies[normalize.FoldKey(name)]
	return rec, ok
}

// ResolveDistrict looks up name in the district table only.
func (x *Index) ResolveDistrict(name string) (*domain.GazetteerRecord, bool) {
	rec, ok := x.districts[normalize.FoldKey(name)]
	return rec, ok
}

// ContainsKnownName reports whether any registered name or alias occurs as
// a substring of s. Used by the handle-inference tier, which sees
// concatenated handles like "RaipurCollector".
func (x *Index) ContainsKnownName(s string) (*domain.GazetteerRecord, bool) {
	folded := normalize.FoldKey(s)
	if folded == "" {
		return nil, false
	}
	// Districts and urban bodies only: village names are too short and
	// too numerous to infer from handles safely.
	if rec, ok := scanTable(x.districts, folded); ok {
		return rec, true
	}
	if rec, ok := scanTable(x.urbanBodies, folded); ok {
		return rec, true
	}
	return nil, false
}

// Stats reports table sizes for health checks and startup logs.
type Stats struct {
	Villages    int `json:"villages"`
	UrbanBodies int `json:"urban_bodies"`
	Districts   int `json:"districts"`
}

// Stats returns the number of indexed keys per table (canonicals plus
// aliases).
func (x *Index) Stats() Stats {
	return Stats{
		Villages:    len(x.villages),
		UrbanBodies: len(x.urbanBodies),
		Districts:   len(x.districts),
	}
}

// Empty reports whether no records are indexed at all.
func (x *Index) Empty() bool {
	return len(x.villages) == 0 && len(x.urbanBodies) == 0 && len(x.districts) == 0
}

// LevelConfidence returns the lookup confidence for an administrative
// level.
func LevelConfidence(adminType string) float64 {
	switch adminType {
	case domain.AdminVillage, domain.AdminGramPanchayat:
		return VillageConfidence
	case domain.AdminULB, domain.AdminBlock:
		return UrbanConfidence
	default:
		return DistrictConfidence
	}
}

func (x *Index) tableFor(adminType string) map[string]*domain.GazetteerRecord {
	switch adminType {
	case domain.AdminVillage, domain.AdminGramPanchayat:
		return x.villages
	case domain.AdminULB:
		return x.urbanBodies
	case domain.AdminDistrict:
		return x.districts
	default:
		return nil
	}
}

func scanTable(table map[string]*domain.GazetteerRecord, folded string) (*domain.GazetteerRecord, bool) {
	var (
		best    *domain.GazetteerRecord
		bestLen int
	)
	for key, rec := range table {
		// Very short keys (initialisms, two-letter aliases) match too
		// much inside handle strings.
		if len(key) < 4 || len(key) <= bestLen {
			continue
		}
		if strings.Contains(folded, key) {
			best = rec
			bestLen = len(key)
		}
	}
	return best, best != nil
}

func mergeAliases(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// fillMissing copies hierarchy fields from src when dst lacks them, so a
// richer source can complete an earlier sparse record.
func fillMissing(dst, src *domain.GazetteerRecord) {
	if dst.District == "" {
		dst.District = src.District
	}
	if dst.Assembly == "" {
		dst.Assembly = src.Assembly
	}
	if dst.Block == "" {
		dst.Block = src.Block
	}
	if dst.GramPanchayat == "" {
		dst.GramPanchayat = src.GramPanchayat
	}
	if len(dst.Hierarchy) < len(src.Hierarchy) {
		dst.Hierarchy = src.Hierarchy
	}
}
