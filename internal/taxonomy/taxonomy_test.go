package taxonomy_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/taxonomy"
)

func TestDefaultCategories(t *testing.T) {
	cats := taxonomy.DefaultCategories()
	require.Len(t, cats, 18)

	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		assert.NotEmpty(t, c.Label)
		assert.False(t, seen[c.Label], "duplicate label %q", c.Label)
		seen[c.Label] = true
		assert.Positive(t, c.Weight, "category %q", c.Label)
		assert.NotEmpty(t, c.Strong, "category %q has no strong keywords", c.Label)
	}

	// The fallback label is assigned by the classifier, never scored.
	assert.False(t, seen[domain.CategoryUncategorized])

	// Security carries the heaviest weight so it wins close calls.
	var security, greeting taxonomy.Category
	for _, c := range cats {
		switch c.Label {
		case domain.CategorySecurity:
			security = c
		case domain.CategoryGreeting:
			greeting = c
		}
	}
	assert.InDelta(t, 1.5, security.Weight, 1e-9)
	assert.Greater(t, security.Weight, greeting.Weight)
}

func TestDefaultCategoriesAreIndependentCopies(t *testing.T) {
	a := taxonomy.DefaultCategories()
	b := taxonomy.DefaultCategories()

	a[0].Weight = 99
	a[0].Strong[0] = "mutated"

	assert.NotEqual(t, a[0].Weight, b[0].Weight)
	assert.NotEqual(t, a[0].Strong[0], b[0].Strong[0])
}

func TestLoadCategories_EmptyPathReturnsDefaults(t *testing.T) {
	cats, err := taxonomy.LoadCategories("")
	require.NoError(t, err)
	assert.Equal(t, taxonomy.DefaultCategories(), cats)
}

func TestLoadCategories_OverrideAndExtend(t *testing.T) {
	overlay := `
categories:
  - label: बैठक
    weight: 2.0
    strong: [बैठक]
  - label: नया लेबल
    weight: 0.9
    strong: [नूतन]
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	cats, err := taxonomy.LoadCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 19)

	var meeting, added *taxonomy.Category
	for i := range cats {
		switch cats[i].Label {
		case domain.CategoryMeeting:
			meeting = &cats[i]
		case "नया लेबल":
			added = &cats[i]
		}
	}
	require.NotNil(t, meeting)
	assert.InDelta(t, 2.0, meeting.Weight, 1e-9)
	assert.Equal(t, []string{"बैठक"}, meeting.Strong)
	require.NotNil(t, added)
	assert.Equal(t, []string{"नूतन"}, added.Strong)
}

func TestLoadCategories_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "zero weight",
			yaml: "categories:\n  - label: x\n    weight: 0\n    strong: [y]\n",
		},
		{
			name: "no keywords",
			yaml: "categories:\n  - label: x\n    weight: 1.0\n",
		},
		{
			name: "duplicate label",
			yaml: "categories:\n  - label: x\n    weight: 1.0\n    strong: [y]\n  - label: x\n    weight: 1.0\n    strong: [z]\n",
		},
		{
			name: "malformed yaml",
			yaml: "categories: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := taxonomy.LoadCategories(path)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := taxonomy.LoadCategories(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDefaultRescueTiers(t *testing.T) {
	tiers := taxonomy.DefaultRescueTiers()
	require.Len(t, tiers, 8)
	require.NoError(t, taxonomy.ValidateRescueTiers(tiers))

	// Specific tiers outrank generic ones.
	assert.Equal(t, "sports_critical", tiers[0].Name)
	assert.Equal(t, "security_critical", tiers[1].Name)
	assert.Equal(t, "greetings_generic", tiers[6].Name)
	assert.Equal(t, "digital_only", tiers[7].Name)

	for _, tier := range tiers {
		for _, p := range tier.Patterns {
			_, err := regexp.Compile("(?i)" + p)
			require.NoError(t, err, "tier %q pattern %q", tier.Name, p)
		}
	}

	// digital_only tags the post without relabelling it.
	digital := tiers[7]
	assert.Empty(t, digital.Target)
	assert.Equal(t, domain.ModeDigitalPost, digital.ContentMode)
}

func TestLoadRescueTiers_Overlay(t *testing.T) {
	overlay := `
tiers:
  - name: flood_relief
    target: आपदा / दुर्घटना
    weight: 0.9
    bonus: 0.2
    content_mode: मैदान-स्तर कार्यक्रम
    patterns:
      - (बाढ़|flood)
      - राहत\s*शिविर
`
	path := filepath.Join(t.TempDir(), "rescue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	tiers, err := taxonomy.LoadRescueTiers(path)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, "flood_relief", tiers[0].Name)
	assert.Equal(t, domain.CategoryDisaster, tiers[0].Target)
	assert.Len(t, tiers[0].Patterns, 2)
}

func TestLoadRescueTiers_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no tiers",
			yaml: "tiers: []\n",
		},
		{
			name: "broken pattern",
			yaml: "tiers:\n  - name: x\n    weight: 0.5\n    bonus: 0.1\n    content_mode: m\n    patterns: ['(unclosed']\n",
		},
		{
			name: "weight out of range",
			yaml: "tiers:\n  - name: x\n    weight: 1.5\n    bonus: 0.1\n    content_mode: m\n    patterns: [a]\n",
		},
		{
			name: "bonus out of range",
			yaml: "tiers:\n  - name: x\n    weight: 0.5\n    bonus: 0.9\n    content_mode: m\n    patterns: [a]\n",
		},
		{
			name: "missing content mode",
			yaml: "tiers:\n  - name: x\n    weight: 0.5\n    bonus: 0.1\n    patterns: [a]\n",
		},
		{
			name: "duplicate tier name",
			yaml: "tiers:\n  - name: x\n    weight: 0.5\n    bonus: 0.1\n    content_mode: m\n    patterns: [a]\n  - name: x\n    weight: 0.5\n    bonus: 0.1\n    content_mode: m\n    patterns: [b]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rescue.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := taxonomy.LoadRescueTiers(path)
			assert.Error(t, err)
		})
	}
}

func TestSchemePatternsCompile(t *testing.T) {
	patterns := taxonomy.SchemePatterns()
	require.NotEmpty(t, patterns)

	for _, sp := range patterns {
		assert.NotEmpty(t, sp.Canonical)
		_, err := regexp.Compile("(?i)" + sp.Pattern)
		require.NoError(t, err, "pattern %q", sp.Pattern)
	}
}

func TestEntityTables(t *testing.T) {
	for canonical, variants := range taxonomy.TargetGroups() {
		assert.NotEmpty(t, variants, "target group %q", canonical)
	}
	for canonical, variants := range taxonomy.Communities() {
		assert.NotEmpty(t, variants, "community %q", canonical)
	}
	for canonical, variants := range taxonomy.Organizations() {
		assert.NotEmpty(t, variants, "organization %q", canonical)
	}

	buckets := taxonomy.WordBuckets()
	assert.Len(t, buckets, 10)
	assert.Contains(t, buckets, "agriculture")
	assert.Contains(t, buckets["security"], "नक्सल")

	assert.Contains(t, taxonomy.NotablePeople(), "विष्णु देव साय")
	assert.Contains(t, taxonomy.PersonTitleStopwords(), "मुख्यमंत्री")
}
