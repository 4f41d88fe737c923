package classify

import (
	"fmt"
	"math"
	"regexp"
	"sync"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/normalize"
	"github.com/janscope/annotator/internal/taxonomy"
)

// rescueThreshold is the weighted match ratio a tier must exceed to
// claim a post.
const rescueThreshold = 0.5

// RescueEngine re-examines uncategorized posts against an ordered tier
// chain. Each tier is a strategy record; the first tier whose weighted
// match ratio clears the threshold wins and later tiers are never
// consulted, so specific tiers must be ordered before generic ones.
//
// The chain can be swapped at runtime from a reviewed YAML overlay; a
// broken overlay is rejected without touching the live chain.
type RescueEngine struct {
	mu    sync.RWMutex
	tiers []compiledTier
	log   logger.Logger
}

type compiledTier struct {
	spec     taxonomy.RescueTier
	patterns []*regexp.Regexp
}

// NewRescueEngine validates and compiles the tier chain.
func NewRescueEngine(tiers []taxonomy.RescueTier, log logger.Logger) (*RescueEngine, error) {
	if log == nil {
		log = logger.NewNop()
	}

	compiled, err := compileTiers(tiers)
	if err != nil {
		return nil, err
	}

	e := &RescueEngine{tiers: compiled, log: log}
	log.Info("rescue engine initialized", logger.Int("tiers", len(compiled)))
	return e, nil
}

func compileTiers(tiers []taxonomy.RescueTier) ([]compiledTier, error) {
	if err := taxonomy.ValidateRescueTiers(tiers); err != nil {
		return nil, err
	}

	compiled := make([]compiledTier, 0, len(tiers))
	for _, tier := range tiers {
		ct := compiledTier{spec: tier, patterns: make([]*regexp.Regexp, 0, len(tier.Patterns))}
		for _, p := range tier.Patterns {
			re, err := normalize.CompilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("tier %q: pattern %q: %w", tier.Name, p, err)
			}
			ct.patterns = append(ct.patterns, re)
		}
		compiled = append(compiled, ct)
	}
	return compiled, nil
}

// Rescue runs the tier chain over a post the classifier left
// uncategorized. Categorized posts pass through untouched; the default
// content mode marks the post as a plain digital statement. A tier with
// an empty target tags the post without relabelling it.
func (e *RescueEngine) Rescue(result domain.ClassificationResult, text string) domain.RescueVerdict {
	verdict := domain.RescueVerdict{ContentMode: domain.ModeDigitalPost}
	if !result.IsUncategorized() {
		return verdict
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	matchable := normalize.MatchText(text)
	if matchable == "" {
		return verdict
	}

	for i := range e.tiers {
		tier := &e.tiers[i]

		matched := 0
		for _, re := range tier.patterns {
			if re.MatchString(matchable) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		ratio := math.Min(float64(matched)/float64(len(tier.patterns)), 1.0) * tier.spec.Weight
		if ratio <= rescueThreshold {
			continue
		}

		verdict.Tag = tier.spec.Name
		verdict.Bonus = tier.spec.Bonus
		verdict.ContentMode = tier.spec.ContentMode
		if tier.spec.Target != "" {
			verdict.Rescued = true
			verdict.Category = tier.spec.Target
		}

		e.log.Debug("post rescued",
			logger.String("tier", tier.spec.Name),
			logger.String("target", tier.spec.Target),
			logger.Float64("ratio", ratio))
		return verdict
	}

	return verdict
}

// UpdateTiers swaps in a new chain. Validation and compilation happen
// before the write lock is taken, so a broken chain never interrupts
// serving.
func (e *RescueEngine) UpdateTiers(tiers []taxonomy.RescueTier) error {
	compiled, err := compileTiers(tiers)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.tiers = compiled
	e.mu.Unlock()

	e.log.Info("rescue chain updated", logger.Int("tiers", len(compiled)))
	return nil
}

// ReloadOverlay loads the YAML overlay at path and swaps it in.
func (e *RescueEngine) ReloadOverlay(path string) error {
	tiers, err := taxonomy.LoadRescueTiers(path)
	if err != nil {
		return err
	}
	return e.UpdateTiers(tiers)
}

// TierCount returns the number of tiers in the active chain.
func (e *RescueEngine) TierCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.tiers)
}

// TierNames returns the active chain's tier names in evaluation order.
func (e *RescueEngine) TierNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, len(e.tiers))
	for i := range e.tiers {
		names[i] = e.tiers[i].spec.Name
	}
	return names
}
