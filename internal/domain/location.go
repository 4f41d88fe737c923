package domain

import "fmt"

// Administrative level constants, most specific last.
const (
	AdminState         = "state"
	AdminDistrict      = "district"
	AdminAssembly      = "assembly"
	AdminBlock         = "block"
	AdminGramPanchayat = "gram_panchayat"
	AdminVillage       = "village"
	AdminULB           = "ulb"
)

// Resolution source constants, one per resolver tier.
const (
	SourceLandmark          = "landmark"
	SourceExactDictionary   = "exact-dictionary"
	SourceRegexCandidate    = "regex-candidate"
	SourceHandleInference   = "handle-inference"
	SourceSemanticSearch    = "semantic-search"
	SourceTemporalInference = "temporal-inference"
)

// GazetteerRecord is one canonical administrative place. Aliases map
// many-to-one onto the canonical form; Hierarchy is the ordered ancestor
// path from the state root down to this record.
type GazetteerRecord struct {
	Canonical     string   `db:"canonical"  json:"canonical"`
	Aliases       []string `db:"aliases"    json:"aliases,omitempty"`
	AdminType     string   `db:"admin_type" json:"admin_type"`
	District      string   `db:"district"   json:"district,omitempty"`
	Assembly      string   `db:"assembly"   json:"assembly,omitempty"`
	Block         string   `db:"block"      json:"block,omitempty"`
	GramPanchayat string   `db:"gp"         json:"gp,omitempty"`
	Hierarchy     []string `db:"-"          json:"hierarchy_path,omitempty"`
}

// ResolvedLocation is produced once per post by the location resolver and
// never mutated afterwards.
type ResolvedLocation struct {
	Canonical     string   `json:"canonical"`
	CanonicalKey  string   `json:"canonical_key"`
	AdminType     string   `json:"location_type"`
	District      string   `json:"district,omitempty"`
	Assembly      string   `json:"assembly,omitempty"`
	Block         string   `json:"block,omitempty"`
	GramPanchayat string   `json:"gp,omitempty"`
	Village       string   `json:"village,omitempty"`
	ULB           string   `json:"ulb,omitempty"`
	Ward          int      `json:"ward,omitempty"`
	Zone          int      `json:"zone,omitempty"`
	Hierarchy     []string `json:"hierarchy_path,omitempty"`
	Source        string   `json:"source"`
	Confidence    float64  `json:"confidence"` // 0.0-1.0
}

// IsUrban reports whether the location is an urban local body.
func (l *ResolvedLocation) IsUrban() bool {
	return l.AdminType == AdminULB
}

// CanonicalKeyFor builds the stable dedup key for a place, e.g.
// "CG_DISTRICT_रायपुर".
func CanonicalKeyFor(adminType, canonical string) string {
	return fmt.Sprintf("CG_%s_%s", upperASCII(adminType), canonical)
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
