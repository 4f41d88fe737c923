package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/classify"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/taxonomy"
)

func defaultRescue(t *testing.T) *classify.RescueEngine {
	t.Helper()
	e, err := classify.NewRescueEngine(taxonomy.DefaultRescueTiers(), logger.NewNop())
	require.NoError(t, err)
	return e
}

func uncategorized() domain.ClassificationResult {
	return domain.ClassificationResult{
		Primary:    domain.CategoryUncategorized,
		Confidence: domain.UncategorizedConfidence,
		Source:     domain.ClassificationSourceKeyword,
	}
}

func TestRescue_NeverFiresOnCategorized(t *testing.T) {
	e := defaultRescue(t)

	categorized := domain.ClassificationResult{
		Primary:    domain.CategoryMeeting,
		Confidence: 0.9,
		Source:     domain.ClassificationSourceKeyword,
	}

	// Text that would trivially rescue an uncategorized post.
	got := e.Rescue(categorized, "मैच जीत ओलंपिक चैंपियन पदक जीत")

	assert.False(t, got.Rescued)
	assert.Empty(t, got.Tag)
	assert.Empty(t, got.Category)
	assert.Zero(t, got.Bonus)
	assert.Equal(t, domain.ModeDigitalPost, got.ContentMode)
}

func TestRescue_SportsCritical(t *testing.T) {
	e := defaultRescue(t)

	got := e.Rescue(uncategorized(), "टीम इंडिया ने मैच जीता! ओलंपिक चैंपियन बने")

	assert.True(t, got.Rescued)
	assert.Equal(t, domain.CategorySports, got.Category)
	assert.Equal(t, "sports_critical", got.Tag)
	assert.InDelta(t, 0.25, got.Bonus, 1e-9)
	assert.Equal(t, domain.ModeSportsReaction, got.ContentMode)
}

func TestRescue_SpecificTierWinsOverGeneric(t *testing.T) {
	e := defaultRescue(t)

	// Both sports_critical and greetings_generic clear the threshold;
	// chain order gives sports the post.
	got := e.Rescue(uncategorized(), "मैच जीत पर बधाई, दीपावली की शुभकामना, ओलंपिक चैंपियन")

	assert.True(t, got.Rescued)
	assert.Equal(t, "sports_critical", got.Tag)
	assert.Equal(t, domain.CategorySports, got.Category)
}

func TestRescue_PoliticalHigh(t *testing.T) {
	e := defaultRescue(t)

	got := e.Rescue(uncategorized(), "डबल इंजन की सरकार, भ्रष्टाचार मुक्त विकसित भारत")

	assert.True(t, got.Rescued)
	assert.Equal(t, domain.CategoryPolitical, got.Category)
	assert.Equal(t, "political_high", got.Tag)
	assert.Equal(t, domain.ModePolicyStatement, got.ContentMode)
}

func TestRescue_BelowThresholdPassesThrough(t *testing.T) {
	e := defaultRescue(t)

	// One of four sports patterns is a 0.25 ratio, under the gate.
	got := e.Rescue(uncategorized(), "ओलंपिक की तैयारी जोरों पर")

	assert.False(t, got.Rescued)
	assert.Empty(t, got.Tag)
	assert.Equal(t, domain.ModeDigitalPost, got.ContentMode)
}

func TestRescue_DigitalTagOnly(t *testing.T) {
	e := defaultRescue(t)

	got := e.Rescue(uncategorized(), "कार्यशाला में online जुड़ें")

	// Tagged and bonused, but the post stays uncategorized.
	assert.False(t, got.Rescued)
	assert.Empty(t, got.Category)
	assert.Equal(t, "digital_only", got.Tag)
	assert.InDelta(t, 0.05, got.Bonus, 1e-9)
	assert.Equal(t, domain.ModeDigitalPost, got.ContentMode)
}

func TestRescue_GreetingsNeedFestivalContext(t *testing.T) {
	e := defaultRescue(t)

	// Greeting word alone is a 0.5 ratio times weight 0.6, under the gate.
	alone := e.Rescue(uncategorized(), "आप सभी को बधाई")
	assert.False(t, alone.Rescued)

	festive := e.Rescue(uncategorized(), "दीपावली की हार्दिक शुभकामना")
	assert.True(t, festive.Rescued)
	assert.Equal(t, domain.CategoryGreeting, festive.Category)
	assert.Equal(t, domain.ModeFestiveGreeting, festive.ContentMode)
}

func TestUpdateTiers_RejectsBrokenChain(t *testing.T) {
	e := defaultRescue(t)
	before := e.TierCount()

	err := e.UpdateTiers([]taxonomy.RescueTier{
		{Name: "broken", Patterns: []string{"("}, Weight: 0.8, Bonus: 0.1, ContentMode: "m"},
	})

	require.Error(t, err)
	assert.Equal(t, before, e.TierCount())
}

func TestReloadOverlay(t *testing.T) {
	e := defaultRescue(t)

	overlay := `
tiers:
  - name: flood_relief
    target: आपदा / दुर्घटना
    weight: 1.0
    bonus: 0.2
    content_mode: मैदान-स्तर कार्यक्रम
    patterns:
      - (बाढ़|flood)
`
	path := filepath.Join(t.TempDir(), "rescue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o600))

	require.NoError(t, e.ReloadOverlay(path))
	assert.Equal(t, []string{"flood_relief"}, e.TierNames())

	got := e.Rescue(uncategorized(), "बाढ़ प्रभावित क्षेत्र का दौरा")
	assert.True(t, got.Rescued)
	assert.Equal(t, domain.CategoryDisaster, got.Category)

	// The default chain was replaced wholesale.
	sports := e.Rescue(uncategorized(), "मैच जीत ओलंपिक चैंपियन")
	assert.False(t, sports.Rescued)
}
