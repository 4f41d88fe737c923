package taxonomy

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/janscope/annotator/internal/domain"
)

// RescueTier is one strategy record in the rescue chain. Tiers run in
// slice order against posts the keyword classifier left uncategorized;
// the first tier whose patterns clear the match ratio wins. A tier with
// an empty Target only tags the post, it does not relabel it.
type RescueTier struct {
	Name        string   `yaml:"name" json:"name"`
	Patterns    []string `yaml:"patterns" json:"patterns"`
	Weight      float64  `yaml:"weight" json:"weight"`
	Target      string   `yaml:"target" json:"target"`
	Bonus       float64  `yaml:"bonus" json:"bonus"`
	ContentMode string   `yaml:"content_mode" json:"content_mode"`
}

type rescueFile struct {
	Tiers []RescueTier `yaml:"tiers"`
}

// maximum confidence bonus a rescue tier may grant
const maxRescueBonus = 0.5

// DefaultRescueTiers returns the built-in rescue chain, most specific
// first. Order matters: a sports post mentioning बधाई must reach
// sports_critical before greetings_generic can claim it.
func DefaultRescueTiers() []RescueTier {
	return []RescueTier{
		{
			Name:        "sports_critical",
			Patterns:    []string{`(मैच|match)\s*(जीत|won|win)`, `(पदक|medal)\s*(जीत|won)`, `(ओलंपिक|olympic)`, `(चैंपियन|champion)`},
			Weight:      1.0,
			Target:      domain.CategorySports,
			Bonus:       0.25,
			ContentMode: domain.ModeSportsReaction,
		},
		{
			Name:        "security_critical",
			Patterns:    []string{`(माओवाद|naxal|नक्सल)`, `(शहीद|martyr)`, `(आत्मसमर्पण|surrender)`, `(encounter|मुठभेड़)`},
			Weight:      1.0,
			Target:      domain.CategorySecurity,
			Bonus:       0.25,
			ContentMode: domain.ModePolicyStatement,
		},
		{
			Name:        "disaster_relief",
			Patterns:    []string{`(राहत|relief)`, `(बाढ़|flood)`, `(मुआवजा|compensation)`, `(सहायता\s*राशि)`},
			Weight:      0.9,
			Target:      domain.CategoryDisaster,
			Bonus:       0.18,
			ContentMode: domain.ModeFieldEvent,
		},
		{
			Name:        "admin_high",
			Patterns:    []string{`(समीक्षा\s*बैठक)`, `(कलेक्टर|collector)`, `(अधिकारियों\s*के\s*साथ)`},
			Weight:      0.8,
			Target:      domain.CategoryAdminReview,
			Bonus:       0.18,
			ContentMode: domain.ModeFieldEvent,
		},
		{
			Name:        "political_high",
			Patterns:    []string{`(डबल\s*इंजन)`, `(भ्रष्टाचार|corruption)`, `(विकसित\s*भारत)`, `(मोदी\s*की\s*गारंटी)`},
			Weight:      0.8,
			Target:      domain.CategoryPolitical,
			Bonus:       0.18,
			ContentMode: domain.ModePolicyStatement,
		},
		{
			// weight lets two of three patterns clear the 0.5 gate
			Name:        "scheme_implementation",
			Patterns:    []string{`(लाभार्थी)`, `(वितरण)`, `(हितग्राही)`},
			Weight:      0.8,
			Target:      domain.CategoryScheme,
			Bonus:       0.18,
			ContentMode: domain.ModeFieldEvent,
		},
		{
			Name:        "greetings_generic",
			Patterns:    []string{`(शुभकामना|बधाई|मुबारक|congratulations)`, `(दीपावली|होली|रक्षा\s*बंधन|स्वतंत्रता\s*दिवस)`},
			Weight:      0.6,
			Target:      domain.CategoryGreeting,
			Bonus:       0.10,
			ContentMode: domain.ModeFestiveGreeting,
		},
		{
			// single pattern, so the weight itself must exceed the gate
			Name:        "digital_only",
			Patterns:    []string{`(online|live|जुड़ें|link)`},
			Weight:      0.6,
			Target:      "",
			Bonus:       0.05,
			ContentMode: domain.ModeDigitalPost,
		},
	}
}

// LoadRescueTiers parses a YAML rescue overlay. The overlay replaces the
// default chain wholesale, so review tooling that regenerates tiers owns
// the complete ordering. Every pattern must compile; a broken overlay is
// rejected rather than partially applied.
func LoadRescueTiers(path string) ([]RescueTier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rescue overlay: %w", err)
	}

	var file rescueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rescue overlay %s: %w", path, err)
	}
	if len(file.Tiers) == 0 {
		return nil, fmt.Errorf("rescue overlay %s: no tiers defined", path)
	}
	if err := ValidateRescueTiers(file.Tiers); err != nil {
		return nil, fmt.Errorf("rescue overlay %s: %w", path, err)
	}
	return file.Tiers, nil
}

// ValidateRescueTiers checks tier names, pattern syntax, and score
// ranges. The rescue engine calls this before swapping in a new chain.
func ValidateRescueTiers(tiers []RescueTier) error {
	seen := make(map[string]bool, len(tiers))
	for i, tier := range tiers {
		if tier.Name == "" {
			return fmt.Errorf("tier %d: name is required", i)
		}
		if seen[tier.Name] {
			return fmt.Errorf("tier %q: duplicate name", tier.Name)
		}
		seen[tier.Name] = true
		if len(tier.Patterns) == 0 {
			return fmt.Errorf("tier %q: at least one pattern is required", tier.Name)
		}
		for _, p := range tier.Patterns {
			if _, err := regexp.Compile("(?i)" + p); err != nil {
				return fmt.Errorf("tier %q: pattern %q: %w", tier.Name, p, err)
			}
		}
		if tier.Weight <= 0 || tier.Weight > 1 {
			return fmt.Errorf("tier %q: weight must be in (0, 1]", tier.Name)
		}
		if tier.Bonus < 0 || tier.Bonus > maxRescueBonus {
			return fmt.Errorf("tier %q: bonus must be in [0, %.1f]", tier.Name, maxRescueBonus)
		}
		if tier.ContentMode == "" {
			return fmt.Errorf("tier %q: content_mode is required", tier.Name)
		}
	}
	return nil
}
