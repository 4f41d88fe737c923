// Package taxonomy holds the curated classification data: event keyword
// clusters, rescue tiers, and the entity keyword tables. Defaults are
// embedded; optional YAML files override or extend them at load time.
// Everything returned by this package is freshly allocated, so callers
// can treat the data as immutable snapshots.
package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one event label with its tiered keyword sets. Strong
// keywords identify the event on their own, medium keywords support it,
// weak keywords barely nudge the score. Weight skews close calls toward
// the labels reviewers care most about getting right.
type Category struct {
	Label  string   `yaml:"label" json:"label"`
	Weight float64  `yaml:"weight" json:"weight"`
	Strong []string `yaml:"strong" json:"strong"`
	Medium []string `yaml:"medium,omitempty" json:"medium,omitempty"`
	Weak   []string `yaml:"weak,omitempty" json:"weak,omitempty"`
}

type categoriesFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategories returns the default category set merged with the YAML
// overrides at path. A file entry whose label matches a default replaces
// it in place; new labels append in file order. An empty path returns
// the defaults unchanged.
func LoadCategories(path string) ([]Category, error) {
	cats := DefaultCategories()
	if path == "" {
		return cats, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy file %s: %w", path, err)
	}
	if err := validateCategories(file.Categories); err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}

	return mergeCategories(cats, file.Categories), nil
}

func mergeCategories(base, overrides []Category) []Category {
	byLabel := make(map[string]int, len(base))
	for i, c := range base {
		byLabel[c.Label] = i
	}

	merged := make([]Category, len(base))
	copy(merged, base)
	for _, c := range overrides {
		if i, ok := byLabel[c.Label]; ok {
			merged[i] = c
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

func validateCategories(cats []Category) error {
	seen := make(map[string]bool, len(cats))
	for i, c := range cats {
		if c.Label == "" {
			return fmt.Errorf("category %d: label is required", i)
		}
		if seen[c.Label] {
			return fmt.Errorf("category %q: duplicate label", c.Label)
		}
		seen[c.Label] = true
		if c.Weight <= 0 {
			return fmt.Errorf("category %q: weight must be positive", c.Label)
		}
		if len(c.Strong)+len(c.Medium)+len(c.Weak) == 0 {
			return fmt.Errorf("category %q: at least one keyword is required", c.Label)
		}
	}
	return nil
}
