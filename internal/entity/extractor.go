// Package entity extracts welfare schemes, demographic groups,
// communities, organizations, people, and thematic word buckets from
// post text. Extraction is independent of classification and location
// resolution; all outputs are deduplicated in first-seen order.
package entity

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/normalize"
	"github.com/janscope/annotator/internal/taxonomy"
)

// Per-class confidence grows with the number of extracted entities and
// saturates below certainty.
const (
	schemeBase, schemeStep, schemeCeil = 0.65, 0.08, 0.96
	groupBase, groupStep, groupCeil    = 0.65, 0.05, 0.90
	bucketBase, bucketStep, bucketCeil = 0.55, 0.05, 0.92
)

// Honorifics anchor a person capture; titles may sit between the
// honorific and the name (माननीय मुख्यमंत्री श्री <name>). श्रीमती must
// precede श्री in the alternation so the longer form wins.
const (
	honorificAlt = `(?:श्रीमती|श्री|डॉ\.?|माननीय|Shri|Smt|Dr\.?)`
	titleAlt     = `(?:मुख्यमंत्री|उपमुख्यमंत्री|प्रधानमंत्री|राज्यपाल|मंत्री|विधायक|सांसद|अध्यक्ष|महोदय|CM|PM)`
	nameWord     = `[\p{Devanagari}A-Za-z]+`
)

var peoplePattern = normalize.MustCompilePattern(
	honorificAlt + `(?:\s+(?:` + honorificAlt + `|` + titleAlt + `))*\s+(` + nameWord + `(?:\s+` + nameWord + `)?)`,
)

type schemeMatcher struct {
	re        *regexp.Regexp
	canonical string
}

// variantMatcher locates the earliest occurrence of any surface form of
// one canonical entity. Devanagari variants match as substrings; pure
// ASCII variants (BJP, INC) are word-bounded so they cannot fire inside
// unrelated English words.
type variantMatcher struct {
	canonical string
	substrings []string
	bounded   []*regexp.Regexp
}

func (m *variantMatcher) earliestIndex(text string) (int, bool) {
	best := -1
	for _, v := range m.substrings {
		if i := strings.Index(text, v); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	for _, re := range m.bounded {
		if loc := re.FindStringIndex(text); loc != nil && (best < 0 || loc[0] < best) {
			best = loc[0]
		}
	}
	return best, best >= 0
}

// Extractor holds the compiled entity tables. Construction compiles
// every pattern once; Extract is read-only and safe for concurrent use.
type Extractor struct {
	schemes     []schemeMatcher
	groups      []variantMatcher
	communities []variantMatcher
	orgs        []variantMatcher
	buckets     []variantMatcher
	vips        []string
	titleStop   map[string]struct{}
	log         logger.Logger
}

// NewExtractor compiles the taxonomy entity tables.
func NewExtractor(log logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}

	e := &Extractor{
		titleStop: make(map[string]struct{}),
		log:       log,
	}

	for _, sp := range taxonomy.SchemePatterns() {
		p := sp.Pattern
		// Acronym patterns (PMAY, GST) get word bounds so they cannot
		// fire inside unrelated English words.
		if isASCII(p) {
			p = `\b(?:` + p + `)\b`
		}
		e.schemes = append(e.schemes, schemeMatcher{
			re:        normalize.MustCompilePattern(p),
			canonical: sp.Canonical,
		})
	}

	e.groups = buildVariantMatchers(taxonomy.TargetGroups())
	e.communities = buildVariantMatchers(taxonomy.Communities())
	e.orgs = buildVariantMatchers(taxonomy.Organizations())
	e.buckets = buildVariantMatchers(taxonomy.WordBuckets())

	for _, vip := range taxonomy.NotablePeople() {
		e.vips = append(e.vips, norm.NFC.String(vip))
	}
	for _, t := range taxonomy.PersonTitleStopwords() {
		e.titleStop[strings.ToLower(t)] = struct{}{}
	}

	log.Info("entity extractor initialized",
		logger.Int("schemes", len(e.schemes)),
		logger.Int("groups", len(e.groups)),
		logger.Int("communities", len(e.communities)),
		logger.Int("organizations", len(e.orgs)),
		logger.Int("buckets", len(e.buckets)),
		logger.Int("vips", len(e.vips)))

	return e
}

// buildVariantMatchers flattens a canonical→variants table into sorted
// matchers. Sorting keeps scan order deterministic across map iteration.
func buildVariantMatchers(table map[string][]string) []variantMatcher {
	canonicals := make([]string, 0, len(table))
	for c := range table {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)

	matchers := make([]variantMatcher, 0, len(canonicals))
	for _, c := range canonicals {
		m := variantMatcher{canonical: c}
		for _, v := range table[c] {
			v = norm.NFC.String(v)
			if isASCII(v) {
				m.bounded = append(m.bounded, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(v)+`\b`))
				continue
			}
			m.substrings = append(m.substrings, strings.ToLower(v))
		}
		matchers = append(matchers, m)
	}
	return matchers
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// Extract runs every entity table over the post text.
func (e *Extractor) Extract(text string) domain.EntityBundle {
	clean := normalize.Clean(text)
	matchable := strings.ToLower(clean)

	bundle := domain.EntityBundle{
		Schemes:       e.extractSchemes(matchable),
		TargetGroups:  collectVariants(e.groups, matchable),
		Communities:   collectVariants(e.communities, matchable),
		Organizations: collectVariants(e.orgs, matchable),
		People:        e.extractPeople(clean),
		WordBuckets:   collectVariants(e.buckets, matchable),
	}

	bundle.Confidence = confidenceMap(bundle)
	return bundle
}

func (e *Extractor) extractSchemes(matchable string) []string {
	type hit struct {
		canonical string
		index     int
	}

	hits := make([]hit, 0, 2)
	seen := make(map[string]int)
	for _, sm := range e.schemes {
		loc := sm.re.FindStringIndex(matchable)
		if loc == nil {
			continue
		}
		// Several patterns can map to one canonical name; keep the
		// earliest position for ordering.
		if prev, ok := seen[sm.canonical]; ok {
			if loc[0] < hits[prev].index {
				hits[prev].index = loc[0]
			}
			continue
		}
		seen[sm.canonical] = len(hits)
		hits = append(hits, hit{canonical: sm.canonical, index: loc[0]})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].index != hits[j].index {
			return hits[i].index < hits[j].index
		}
		return hits[i].canonical < hits[j].canonical
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.canonical)
	}
	return out
}

func collectVariants(matchers []variantMatcher, matchable string) []string {
	type hit struct {
		canonical string
		index     int
	}

	hits := make([]hit, 0, 2)
	for i := range matchers {
		if idx, ok := matchers[i].earliestIndex(matchable); ok {
			hits = append(hits, hit{canonical: matchers[i].canonical, index: idx})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].index != hits[j].index {
			return hits[i].index < hits[j].index
		}
		return hits[i].canonical < hits[j].canonical
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.canonical)
	}
	return out
}

// extractPeople combines honorific-anchored captures with the notable
// people table. Captures that are a strict word prefix of a longer
// extracted name are dropped, so "श्री विष्णु देव" folds into the full
// "विष्णु देव साय" table hit.
func (e *Extractor) extractPeople(clean string) []string {
	type hit struct {
		name  string
		index int
	}

	hits := make([]hit, 0, 2)
	seen := make(map[string]int) // name -> slice index

	add := func(name string, index int) {
		if prev, ok := seen[name]; ok {
			if index < hits[prev].index {
				hits[prev].index = index
			}
			return
		}
		seen[name] = len(hits)
		hits = append(hits, hit{name: name, index: index})
	}

	for _, vip := range e.vips {
		if i := strings.Index(clean, vip); i >= 0 {
			add(vip, i)
		}
	}

	for _, m := range peoplePattern.FindAllStringSubmatchIndex(clean, -1) {
		// m[2]:m[3] is the capture group span.
		name := e.trimCapture(clean[m[2]:m[3]])
		if name == "" {
			continue
		}
		add(name, m[2])
	}

	// Drop names subsumed by a longer capture.
	out := make([]hit, 0, len(hits))
	for _, h := range hits {
		subsumed := false
		for _, other := range hits {
			if other.name != h.name && strings.HasPrefix(other.name, h.name+" ") {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, h)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].index != out[j].index {
			return out[i].index < out[j].index
		}
		return out[i].name < out[j].name
	})

	names := make([]string, 0, len(out))
	for _, h := range out {
		names = append(names, h.name)
	}
	return names
}

// trimCapture strips trailing honorific particles (जी/ji) and trailing
// postpositions from a raw capture, and rejects captures that open with
// a postposition or are only a designation.
func (e *Extractor) trimCapture(capture string) string {
	fields := strings.Fields(capture)

	for len(fields) > 0 {
		last := strings.ToLower(fields[len(fields)-1])
		if last == "जी" || last == "ji" || normalize.IsStopword(fields[len(fields)-1]) {
			fields = fields[:len(fields)-1]
			continue
		}
		break
	}

	if len(fields) == 0 {
		return ""
	}
	// A capture opening with a postposition means the title absorber ran
	// past the name position ("श्री मुख्यमंत्री ने कहा"); there is no name.
	if normalize.IsStopword(fields[0]) {
		return ""
	}
	if len(fields) == 1 {
		if _, ok := e.titleStop[strings.ToLower(fields[0])]; ok {
			return ""
		}
	}
	return strings.Join(fields, " ")
}

func confidenceMap(b domain.EntityBundle) map[string]float64 {
	conf := make(map[string]float64, 6)

	set := func(key string, n int, base, step, ceil float64) {
		if n == 0 {
			return
		}
		c := base + step*float64(n)
		if c > ceil {
			c = ceil
		}
		conf[key] = c
	}

	set("schemes", len(b.Schemes), schemeBase, schemeStep, schemeCeil)
	set("target_groups", len(b.TargetGroups), groupBase, groupStep, groupCeil)
	set("communities", len(b.Communities), groupBase, groupStep, groupCeil)
	set("organizations", len(b.Organizations), groupBase, groupStep, groupCeil)
	set("people", len(b.People), groupBase, groupStep, groupCeil)
	set("word_buckets", len(b.WordBuckets), bucketBase, bucketStep, bucketCeil)

	if len(conf) == 0 {
		return nil
	}
	return conf
}
