package gazetteer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/logger"
)

func builtIndex(t *testing.T) *gazetteer.Index {
	t.Helper()
	return gazetteer.Build(config.GazetteerConfig{}, logger.NewNop())
}

func TestResolveByName_SeededRecords(t *testing.T) {
	idx := builtIndex(t)

	tests := []struct {
		name          string
		query         string
		wantCanonical string
		wantType      string
	}{
		{name: "district by devanagari", query: "रायपुर", wantCanonical: "रायपुर", wantType: domain.AdminDistrict},
		{name: "district by latin alias", query: "Raipur", wantCanonical: "रायपुर", wantType: domain.AdminDistrict},
		{name: "district alias case folded", query: "raigarh", wantCanonical: "रायगढ़", wantType: domain.AdminDistrict},
		{name: "urban body", query: "भिलाई", wantCanonical: "भिलाई", wantType: domain.AdminULB},
		{name: "village by alias", query: "Siltara", wantCanonical: "सिलोतरा", wantType: domain.AdminVillage},
		{name: "candrabindu variant", query: "कोंडागाँव", wantCanonical: "कोंडागाँव", wantType: domain.AdminDistrict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := idx.ResolveByName(tt.query)
			require.True(t, ok, "expected a match for %q", tt.query)
			assert.Equal(t, tt.wantCanonical, rec.Canonical)
			assert.Equal(t, tt.wantType, rec.AdminType)
		})
	}
}

func TestResolveByName_Miss(t *testing.T) {
	idx := builtIndex(t)

	_, ok := idx.ResolveByName("अज्ञातनगर")
	assert.False(t, ok)

	_, ok = idx.ResolveByName("")
	assert.False(t, ok)
}

// Every canonical record must be reachable through each of its registered
// aliases.
func TestAliasRoundTrip(t *testing.T) {
	idx := gazetteer.NewIndex(logger.NewNop())
	rec := domain.GazetteerRecord{
		Canonical: "खरसिया",
		Aliases:   []string{"Kharsia", "Kharsiya"},
		AdminType: domain.AdminULB,
		District:  "रायगढ़",
	}
	rec.Hierarchy = gazetteer.BuildHierarchy(&rec)
	idx.AddRecord(rec)

	for _, alias := range append([]string{rec.Canonical}, rec.Aliases...) {
		got, ok := idx.ResolveByName(alias)
		require.True(t, ok, "alias %q did not resolve", alias)
		assert.Equal(t, "खरसिया", got.Canonical)
	}
}

func TestEmptyIndexIsUsable(t *testing.T) {
	idx := gazetteer.NewIndex(logger.NewNop())

	assert.True(t, idx.Empty())
	_, ok := idx.ResolveByName("रायपुर")
	assert.False(t, ok)
	assert.Nil(t, idx.LookupAll("रायपुर"))
}

func TestAddRecord_MergesSources(t *testing.T) {
	idx := gazetteer.NewIndex(logger.NewNop())

	idx.AddRecord(domain.GazetteerRecord{
		Canonical: "तमनार",
		AdminType: domain.AdminVillage,
	})
	// A later, richer source adds the alias and the district.
	idx.AddRecord(domain.GazetteerRecord{
		Canonical: "तमनार",
		Aliases:   []string{"Tamnar"},
		AdminType: domain.AdminVillage,
		District:  "रायगढ़",
	})

	rec, ok := idx.ResolveByName("Tamnar")
	require.True(t, ok)
	assert.Equal(t, "तमनार", rec.Canonical)
	assert.Equal(t, "रायगढ़", rec.District)
	// One canonical key plus one alias key, not a duplicate record.
	assert.Equal(t, 2, idx.Stats().Villages)
}

func TestLookupAll_SpecificityOrder(t *testing.T) {
	idx := gazetteer.NewIndex(logger.NewNop())

	// The same name registered as both a village and a district.
	idx.AddRecord(domain.GazetteerRecord{Canonical: "बस्तर", AdminType: domain.AdminVillage})
	idx.AddRecord(domain.GazetteerRecord{Canonical: "बस्तर", AdminType: domain.AdminDistrict})

	all := idx.LookupAll("बस्तर")
	require.Len(t, all, 2)
	assert.Equal(t, domain.AdminVillage, all[0].AdminType)
	assert.Equal(t, domain.AdminDistrict, all[1].AdminType)
}

func TestContainsKnownName(t *testing.T) {
	idx := builtIndex(t)

	rec, ok := idx.ContainsKnownName("RaipurCollector")
	require.True(t, ok)
	assert.Equal(t, "रायपुर", rec.Canonical)

	_, ok = idx.ContainsKnownName("SomeRandomHandle")
	assert.False(t, ok)
}

func TestBuild_MissingSnapshotTolerated(t *testing.T) {
	cfg := config.GazetteerConfig{
		VillagesFile: filepath.Join(t.TempDir(), "missing.json"),
	}

	idx := gazetteer.Build(cfg, logger.NewNop())
	assert.False(t, idx.Empty(), "seed records must still load")
}

func TestBuild_SnapshotFileExtendsSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "villages.json")
	data := []byte(`[
		{"name": "गोढ़ी", "aliases": ["Godhi"], "district": "रायगढ़", "block": "खरसिया"},
		{"name": ""}
	]`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	idx := gazetteer.Build(config.GazetteerConfig{VillagesFile: path}, logger.NewNop())

	rec, ok := idx.ResolveVillage("Godhi")
	require.True(t, ok)
	assert.Equal(t, "गोढ़ी", rec.Canonical)
	assert.Contains(t, rec.Hierarchy, "रायगढ़ जिला")
	assert.Contains(t, rec.Hierarchy, "खरसिया विकासखंड")
}

func TestLevelConfidence(t *testing.T) {
	assert.InDelta(t, 0.95, gazetteer.LevelConfidence(domain.AdminVillage), 1e-9)
	assert.InDelta(t, 0.90, gazetteer.LevelConfidence(domain.AdminULB), 1e-9)
	assert.InDelta(t, 0.85, gazetteer.LevelConfidence(domain.AdminDistrict), 1e-9)
}

func TestBuildHierarchy(t *testing.T) {
	village := domain.GazetteerRecord{
		Canonical:     "गोढ़ी",
		AdminType:     domain.AdminVillage,
		District:      "रायगढ़",
		Block:         "खरसिया",
		GramPanchayat: "गोढ़ी",
	}
	got := gazetteer.BuildHierarchy(&village)
	assert.Equal(t, []string{"छत्तीसगढ़", "रायगढ़ जिला", "खरसिया विकासखंड", "गोढ़ी पंचायत", "गोढ़ी"}, got)

	district := domain.GazetteerRecord{Canonical: "रायपुर", AdminType: domain.AdminDistrict}
	assert.Equal(t, []string{"छत्तीसगढ़", "रायपुर जिला"}, gazetteer.BuildHierarchy(&district))
}
