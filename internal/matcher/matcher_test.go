package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfieprojectsdev/har-automation/internal/domain"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

func laharConditions(t *testing.T) map[string]schema.HazardCondition {
	t.Helper()
	s, err := schema.LoadDefault()
	require.NoError(t, err)
	rule, ok := s.VolcanicRule("lahar")
	require.True(t, ok)
	return rule.Conditions
}

func TestMatchExactTemplateWins(t *testing.T) {
	conditions := map[string]schema.HazardCondition{
		"safe":  {Template: "Safe"},
		"prone": {Template: "Prone to lava flow"},
	}

	key, ok := Match("Prone to lava flow", conditions)
	require.True(t, ok)
	assert.Equal(t, "prone", key)
}

func TestMatchFuzzyPrecedence(t *testing.T) {
	conditions := laharConditions(t)

	cases := []struct {
		status   string
		expected string
	}{
		// "Highly Prone" must never fall through to the generic prone rule.
		{"Highly Prone", "highly_prone"},
		{"Moderately Prone", "moderately_prone"},
		{"Least Prone", "least_prone"},
		{"Prone; Within the lahar channel", "prone"},
		{"High Potential", "high_potential"},
		{"Moderately Susceptible", "moderately_susceptible"},
		{"Within the buffer zone", "buffer_zone"},
		{"Within the Zone of Avoidance", "buffer_zone"},
		{"Transected by an active fault", "transected"},
		{"Within PDZ", "within_pdz"},
		{"Zone 3", "zone_3"},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			key, ok := Match(tc.status, conditions)
			require.True(t, ok)
			assert.Equal(t, tc.expected, key)
		})
	}
}

func TestMatchNoMatch(t *testing.T) {
	conditions := laharConditions(t)

	_, ok := Match("", conditions)
	assert.False(t, ok)

	_, ok = Match("--", conditions)
	assert.False(t, ok)

	_, ok = Match("Completely unrelated text", conditions)
	assert.False(t, ok)
}

func TestMatchSafeIsExactOnly(t *testing.T) {
	conditions := laharConditions(t)

	key, ok := Match("Safe", conditions)
	require.True(t, ok)
	assert.Equal(t, "safe", key)

	// "safe" embedded in a longer status must not fuzzy-match the safe
	// rule; here it matches nothing and falls through.
	_, ok = Match("unsafe structures nearby", conditions)
	assert.False(t, ok)
}

func TestMatchLiquefaction(t *testing.T) {
	assert.Equal(t, "high_potential", MatchLiquefaction("High Potential"))
	assert.Equal(t, "moderate_potential", MatchLiquefaction("Moderate Potential"))
	assert.Equal(t, "low_potential", MatchLiquefaction("Low Potential"))
	assert.Equal(t, "safe", MatchLiquefaction("Safe"))
	assert.Equal(t, "safe", MatchLiquefaction("anything else"))
}

func TestMatchLandslide(t *testing.T) {
	assert.Equal(t, "highly_susceptible", MatchLandslide("Highly Susceptible"))
	assert.Equal(t, "moderately_susceptible", MatchLandslide("Moderately Susceptible"))
	assert.Equal(t, "least_susceptible", MatchLandslide("Least Susceptible"))
	assert.Equal(t, "safe", MatchLandslide("Safe"))
	// A bare susceptibility with no level defaults to moderate.
	assert.Equal(t, "moderately_susceptible", MatchLandslide("Susceptible"))
	assert.Equal(t, "safe", MatchLandslide("unknown"))
}

func TestMatchTsunami(t *testing.T) {
	assert.Equal(t, "prone", MatchTsunami("Prone; Within the tsunami inundation zone"))
	assert.Equal(t, "safe", MatchTsunami("Safe"))
	assert.Equal(t, "safe", MatchTsunami(""))
}

func TestMatchLahar(t *testing.T) {
	t.Run("pinatubo zones", func(t *testing.T) {
		assert.Equal(t, "zone_1", MatchLahar("Zone 1", domain.VolcanoPinatubo))
		assert.Equal(t, "zone_5", MatchLahar("Within Zone 5 of the lahar map", domain.VolcanoPinatubo))
		assert.Equal(t, "safe", MatchLahar("Safe", domain.VolcanoPinatubo))
		assert.Equal(t, "safe", MatchLahar("Prone", domain.VolcanoPinatubo))
	})

	t.Run("mayon prone levels", func(t *testing.T) {
		assert.Equal(t, "highly_prone", MatchLahar("Highly Prone", domain.VolcanoMayon))
		assert.Equal(t, "moderately_prone", MatchLahar("Moderately Prone", domain.VolcanoMayon))
		assert.Equal(t, "least_prone", MatchLahar("Least Prone", domain.VolcanoMayon))
		assert.Equal(t, "safe", MatchLahar("Safe", domain.VolcanoMayon))
		// Bare prone defaults to the moderate level.
		assert.Equal(t, "moderately_prone", MatchLahar("Prone", domain.VolcanoMayon))
	})

	t.Run("generic volcano", func(t *testing.T) {
		assert.Equal(t, "prone", MatchLahar("Prone to lahar", domain.VolcanoGeneric))
		assert.Equal(t, "safe", MatchLahar("Safe", domain.VolcanoGeneric))
		assert.Equal(t, "prone", MatchLahar("Highly Prone", domain.VolcanoTaal))
	})
}
