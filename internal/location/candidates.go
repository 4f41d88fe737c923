package location

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/janscope/annotator/internal/normalize"
)

// nameWord matches one word of a place name in either script.
const nameWord = `[\p{Devanagari}A-Za-z]+`

// Administrative markers that precede or follow a place name. जिले covers
// the oblique form ("रायगढ़ जिले में").
const markerAlt = `(?:जिला|जिले|विधानसभा|तहसील|थाना|विकासखंड|जनपद|ग्राम\s*पंचायत|ग्राम|गाँव|गांव|नगर\s*निगम|नगर\s*पालिका|नगर\s*पंचायत|district|tehsil|block)`

var (
	// नाम-first order: "रायगढ़ जिला", "खरसिया विधानसभा".
	nameFirstPattern = normalize.MustCompilePattern(
		`(` + nameWord + `(?:\s+` + nameWord + `)?)\s+` + markerAlt)

	// Marker-first order: "ग्राम कुकुर्दा", "जिला रायगढ़".
	markerFirstPattern = normalize.MustCompilePattern(
		markerAlt + `\s+(` + nameWord + `(?:\s+` + nameWord + `)?)`)

	// Locative postposition: "रायपुर में", "खरसिया से".
	locativePattern = normalize.MustCompilePattern(
		`(` + nameWord + `)\s+(?:में|से|के|me|se|ke)\b`)

	wardPattern = normalize.MustCompilePattern(
		`(?:वार्ड|ward)\s*(?:क्रमांक|no\.?|number|नंबर|नं\.?)?\s*[.:—–-]?\s*(\d{1,3})`)
	zonePattern = normalize.MustCompilePattern(
		`(?:जोन|zone)\s*(?:क्रमांक|no\.?|number|नंबर|नं\.?)?\s*[.:—–-]?\s*(\d{1,3})`)
)

// Context vocabulary used by the tie-break: a post that talks about wards
// and municipal works is about the town, one that talks about panchayats
// and crops is about the village.
var (
	urbanVocabulary = []string{
		"वार्ड", "जोन", "पार्षद", "निगम", "पालिका", "महापौर", "नगर", "सड़क",
		"नाली", "ward", "zone", "parshad", "nagar", "nigam", "smart city",
	}
	ruralVocabulary = []string{
		"ग्राम", "पंचायत", "सरपंच", "जनपद", "मनरेगा", "किसान", "खेत", "फसल",
		"धान", "गौठान", "आदिवासी", "gram", "panchayat", "sarpanch",
	}
)

// Candidate is one extracted place-name hypothesis. Marker-adjacent
// candidates carry stronger evidence and win tie-breaks.
type Candidate struct {
	Name   string
	Marker bool
}

// ExtractCandidates pulls place-name hypotheses from cleaned post text:
// phrases adjacent to administrative markers first, then locative
// postposition subjects, then every remaining non-stopword token.
// Order is preserved and names are deduplicated on their folded form.
func ExtractCandidates(clean string) []Candidate {
	matchable := normalize.MatchText(clean)
	if matchable == "" {
		return nil
	}

	var (
		out  []Candidate
		seen = make(map[string]bool)
	)
	add := func(name string, marker bool) {
		name = strings.TrimSpace(name)
		key := normalize.FoldKey(name)
		if key == "" || normalize.IsStopword(name) {
			return
		}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, Candidate{Name: name, Marker: marker})
	}

	for _, m := range nameFirstPattern.FindAllStringSubmatch(matchable, -1) {
		add(m[1], true)
		// The captured pair may be "<junk> <name>"; index the last word too.
		if words := strings.Fields(m[1]); len(words) == 2 {
			add(words[1], true)
		}
	}
	for _, m := range markerFirstPattern.FindAllStringSubmatch(matchable, -1) {
		add(m[1], true)
		if words := strings.Fields(m[1]); len(words) == 2 {
			add(words[0], true)
		}
	}
	for _, m := range locativePattern.FindAllStringSubmatch(matchable, -1) {
		add(m[1], false)
	}
	for _, tok := range normalize.Tokens(matchable) {
		add(tok, false)
	}

	return out
}

// WardNumber extracts the first ward number mentioned in text, 0 when none.
func WardNumber(text string) int {
	return firstNumber(wardPattern, text)
}

// ZoneNumber extracts the first zone number mentioned in text, 0 when none.
func ZoneNumber(text string) int {
	return firstNumber(zonePattern, text)
}

func firstNumber(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(normalize.FoldVariants(text))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// HasUrbanContext reports whether the post uses municipal vocabulary.
func HasUrbanContext(text string) bool {
	return containsAny(normalize.MatchText(text), urbanVocabulary)
}

// HasRuralContext reports whether the post uses village vocabulary.
func HasRuralContext(text string) bool {
	return containsAny(normalize.MatchText(text), ruralVocabulary)
}

func containsAny(matchable string, vocab []string) bool {
	for _, w := range vocab {
		if strings.Contains(matchable, w) {
			return true
		}
	}
	return false
}
