package location

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/normalize"
)

// LandmarkConfidence is fixed: a landmark phrase is unambiguous evidence
// of where an event took place.
const LandmarkConfidence = 0.95

// landmarkEntry maps one well-known phrase to a canonical place.
type landmarkEntry struct {
	Phrase    string `json:"phrase"`
	Canonical string `json:"canonical"`
	AdminType string `json:"admin_type"`
}

// defaultLandmarks are the venue and monument phrases that recur in
// field-visit posts without any administrative marker nearby.
var defaultLandmarks = []landmarkEntry{
	{Phrase: "मरीन ड्राइव", Canonical: "रायपुर", AdminType: domain.AdminDistrict},
	{Phrase: "तेलीबांधा तालाब", Canonical: "रायपुर", AdminType: domain.AdminDistrict},
	{Phrase: "जंगल सफारी", Canonical: "नया रायपुर", AdminType: domain.AdminULB},
	{Phrase: "महामाया मंदिर", Canonical: "रतनपुर", AdminType: domain.AdminULB},
	{Phrase: "दंतेश्वरी मंदिर", Canonical: "दंतेवाड़ा", AdminType: domain.AdminDistrict},
	{Phrase: "चित्रकोट जलप्रपात", Canonical: "जगदलपुर", AdminType: domain.AdminULB},
	{Phrase: "राजिम कुंभ", Canonical: "गरियाबंद", AdminType: domain.AdminDistrict},
	{Phrase: "मैनपाट महोत्सव", Canonical: "सरगुजा", AdminType: domain.AdminDistrict},
	{Phrase: "भिलाई स्टील प्लांट", Canonical: "भिलाई", AdminType: domain.AdminULB},
}

// LandmarkTable is the phrase→place table consulted by the first
// resolver tier. Phrases are stored folded; matching is plain substring
// search over the folded post text.
type LandmarkTable struct {
	entries []landmarkEntry
	folded  []string
	index   *gazetteer.Index
}

// NewLandmarkTable builds the table from the embedded defaults plus an
// optional JSON file of extra entries. A missing or malformed file is
// logged and skipped, mirroring how gazetteer snapshots load.
func NewLandmarkTable(path string, index *gazetteer.Index, log logger.Logger) *LandmarkTable {
	if log == nil {
		log = logger.NewNop()
	}

	entries := append([]landmarkEntry(nil), defaultLandmarks...)
	if path != "" {
		extra, err := readLandmarks(path)
		if err != nil {
			log.Warn("landmark file unavailable, using defaults only",
				logger.String("path", path), logger.Error(err))
		} else {
			entries = append(entries, extra...)
			log.Info("landmark table extended",
				logger.String("path", path), logger.Int("entries", len(extra)))
		}
	}

	t := &LandmarkTable{index: index}
	for _, e := range entries {
		folded := normalize.FoldKey(e.Phrase)
		if folded == "" || e.Canonical == "" {
			continue
		}
		t.entries = append(t.entries, e)
		t.folded = append(t.folded, folded)
	}
	return t
}

// Len returns the number of landmark phrases.
func (t *LandmarkTable) Len() int { return len(t.entries) }

func readLandmarks(path string) ([]landmarkEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read landmarks: %w", err)
	}
	var entries []landmarkEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse landmarks: %w", err)
	}
	return entries, nil
}

// match returns the entry for the first landmark phrase found in text.
func (t *LandmarkTable) match(text string) (landmarkEntry, bool) {
	folded := normalize.FoldKey(text)
	if folded == "" {
		return landmarkEntry{}, false
	}
	for i, phrase := range t.folded {
		if strings.Contains(folded, phrase) {
			return t.entries[i], true
		}
	}
	return landmarkEntry{}, false
}

type landmarkTier struct {
	table *LandmarkTable
}

func (t *landmarkTier) Name() string { return domain.SourceLandmark }

func (t *landmarkTier) Resolve(_ context.Context, q *Query) (*domain.ResolvedLocation, float64, bool) {
	entry, ok := t.table.match(q.Text)
	if !ok {
		return nil, 0, false
	}

	// Prefer the gazetteer record so the hierarchy comes along; fall
	// back to a bare location when the place is not indexed.
	if rec, found := t.table.index.ResolveByName(entry.Canonical); found {
		loc := FromRecord(rec, domain.SourceLandmark, LandmarkConfidence)
		return loc, LandmarkConfidence, true
	}

	loc := &domain.ResolvedLocation{
		Canonical:    entry.Canonical,
		CanonicalKey: domain.CanonicalKeyFor(entry.AdminType, entry.Canonical),
		AdminType:    entry.AdminType,
		Source:       domain.SourceLandmark,
		Confidence:   LandmarkConfidence,
	}
	return loc, LandmarkConfidence, true
}
