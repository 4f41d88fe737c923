// Package classify assigns event categories to posts. The Classifier
// scores weighted keyword clusters in a single automaton pass; the
// RescueEngine gives uncategorized posts a second chance through an
// ordered pattern chain.
package classify

import (
	"math"
	"sort"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/normalize"
	"github.com/janscope/annotator/internal/taxonomy"
)

// Tier scoring constants. Each tier's contribution is capped before the
// category weight applies, so one spammy tier cannot dominate a score.
const (
	strongHitValue = 0.6
	mediumHitValue = 0.3
	weakHitValue   = 0.1

	strongTierCap = 1.0
	mediumTierCap = 0.6
	weakTierCap   = 0.3

	secondaryThreshold = 0.4
	maxSecondary       = 3

	estimatedKeywordsPerCategory = 12
)

type keywordTier int

const (
	tierStrong keywordTier = iota
	tierMedium
	tierWeak
	tierCount
)

type keywordRef struct {
	category int
	tier     keywordTier
}

// Classifier matches every category's keyword clusters in one pass over
// the folded post text using an Aho-Corasick automaton. Categories can
// be hot-swapped; Classify holds a read lock for the duration of a match.
type Classifier struct {
	mu         sync.RWMutex
	categories []taxonomy.Category
	matcher    *ahocorasick.Matcher
	keywords   []string // distinct folded keywords, automaton order
	refs       map[string][]keywordRef
	log        logger.Logger
}

// NewClassifier builds the automaton from the given categories.
func NewClassifier(categories []taxonomy.Category, log logger.Logger) *Classifier {
	if log == nil {
		log = logger.NewNop()
	}

	c := &Classifier{log: log}
	// No lock needed in the constructor, nothing shares the engine yet.
	c.categories = categories
	c.rebuildLocked()

	log.Info("keyword classifier initialized",
		logger.Int("categories", len(categories)),
		logger.Int("keywords", len(c.keywords)))

	return c
}

// rebuildLocked reconstructs the automaton and keyword index.
// Callers other than the constructor must hold the write lock.
func (c *Classifier) rebuildLocked() {
	c.keywords = make([]string, 0, len(c.categories)*estimatedKeywordsPerCategory)
	c.refs = make(map[string][]keywordRef, len(c.categories)*estimatedKeywordsPerCategory)

	for i, cat := range c.categories {
		c.addKeywordsLocked(i, tierStrong, cat.Strong)
		c.addKeywordsLocked(i, tierMedium, cat.Medium)
		c.addKeywordsLocked(i, tierWeak, cat.Weak)
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	} else {
		c.matcher = nil
	}
}

func (c *Classifier) addKeywordsLocked(category int, tier keywordTier, words []string) {
	for _, w := range words {
		folded := normalize.FoldKey(w)
		if folded == "" {
			continue
		}
		refs, known := c.refs[folded]
		if !known {
			c.keywords = append(c.keywords, folded)
		}
		if hasRef(refs, category, tier) {
			continue
		}
		c.refs[folded] = append(refs, keywordRef{category: category, tier: tier})
	}
}

func hasRef(refs []keywordRef, category int, tier keywordTier) bool {
	for _, r := range refs {
		if r.category == category && r.tier == tier {
			return true
		}
	}
	return false
}

// Classify scores text against every category and picks the primary and
// secondary labels. Zero keyword hits anywhere yield the uncategorized
// result, which makes the post eligible for rescue.
func (c *Classifier) Classify(text string) domain.ClassificationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	folded := normalize.FoldKey(text)
	if c.matcher == nil || folded == "" {
		return uncategorizedResult()
	}

	hits := c.matcher.Match([]byte(folded))
	if len(hits) == 0 {
		return uncategorizedResult()
	}

	// The automaton reports each distinct keyword at most once, so the
	// per-tier counters hold unique keyword presence, not frequency.
	counts := make(map[int]*[tierCount]int)
	for _, hit := range hits {
		if hit >= len(c.keywords) {
			continue
		}
		for _, ref := range c.refs[c.keywords[hit]] {
			tiers, ok := counts[ref.category]
			if !ok {
				tiers = new([tierCount]int)
				counts[ref.category] = tiers
			}
			tiers[ref.tier]++
		}
	}

	type scoredCategory struct {
		label  string
		weight float64
		score  float64
	}

	ranked := make([]scoredCategory, 0, len(counts))
	scores := make(map[string]float64, len(counts))
	for i, tiers := range counts {
		cat := c.categories[i]
		raw := tierScore(tiers[tierStrong], strongHitValue, strongTierCap) +
			tierScore(tiers[tierMedium], mediumHitValue, mediumTierCap) +
			tierScore(tiers[tierWeak], weakHitValue, weakTierCap)
		score := math.Min(raw*cat.Weight, 1.0)
		scores[cat.Label] = score
		ranked = append(ranked, scoredCategory{label: cat.Label, weight: cat.Weight, score: score})
	}

	// Deterministic order: score, then category weight, then label.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].label < ranked[j].label
	})

	secondary := make([]string, 0, maxSecondary)
	for _, s := range ranked[1:] {
		if len(secondary) == maxSecondary {
			break
		}
		if s.score > secondaryThreshold {
			secondary = append(secondary, s.label)
		}
	}

	return domain.ClassificationResult{
		Primary:    ranked[0].label,
		Secondary:  secondary,
		Scores:     scores,
		Confidence: ranked[0].score,
		Source:     domain.ClassificationSourceKeyword,
	}
}

func tierScore(hits int, perHit, limit float64) float64 {
	return math.Min(float64(hits)*perHit, limit)
}

func uncategorizedResult() domain.ClassificationResult {
	return domain.ClassificationResult{
		Primary:    domain.CategoryUncategorized,
		Secondary:  []string{},
		Scores:     map[string]float64{},
		Confidence: domain.UncategorizedConfidence,
		Source:     domain.ClassificationSourceKeyword,
	}
}

// UpdateCategories hot-swaps the taxonomy without restart. The automaton
// rebuild happens under the write lock so concurrent Classify calls see
// either the old set or the new set, never a mix.
func (c *Classifier) UpdateCategories(categories []taxonomy.Category) {
	c.mu.Lock()
	c.categories = categories
	c.rebuildLocked()
	keywords := len(c.keywords)
	c.mu.Unlock()

	c.log.Info("keyword classifier updated",
		logger.Int("categories", len(categories)),
		logger.Int("keywords", keywords))
}

// CategoryCount returns the number of loaded categories.
func (c *Classifier) CategoryCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.categories)
}

// KeywordCount returns the number of distinct folded keywords in the
// automaton.
func (c *Classifier) KeywordCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keywords)
}
