package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	s, err := LoadDefault()
	require.NoError(t, err)

	for _, key := range requiredSeismicHazards {
		_, ok := s.SeismicRule(key)
		assert.True(t, ok, "seismic rule %q", key)
	}
	for _, key := range requiredVolcanicHazards {
		_, ok := s.VolcanicRule(key)
		assert.True(t, ok, "volcanic rule %q", key)
	}

	assert.NotEmpty(t, s.Metadata["version"])
	assert.NotEmpty(t, s.DecisionLogic["seismic"])
	assert.NotEmpty(t, s.DecisionLogic["volcanic"])
}

func TestLoadDefaultRuleContent(t *testing.T) {
	s, err := LoadDefault()
	require.NoError(t, err)

	t.Run("active fault wording", func(t *testing.T) {
		rule, ok := s.SeismicRule("active_fault")
		require.True(t, ok)
		assert.Equal(t, "Ground Rupture", rule.Name)
		assert.Contains(t, rule.Recommendation, "5 meters on both sides")
		assert.Contains(t, rule.Conditions, "safe")
		assert.Contains(t, rule.Conditions, "transected")
	})

	t.Run("liquefaction is recommendation only", func(t *testing.T) {
		rule, ok := s.SeismicRule("liquefaction")
		require.True(t, ok)
		assert.Empty(t, rule.Explanation)
		assert.Contains(t, rule.Recommendation, "National Building Code")
	})

	t.Run("lahar special cases", func(t *testing.T) {
		rule, ok := s.VolcanicRule("lahar")
		require.True(t, ok)

		text, ok := rule.SpecialCaseString("pinatubo_zones", "zone_3", "explanation")
		require.True(t, ok)
		assert.Contains(t, text, "Zone 3")

		text, ok = rule.SpecialCaseString("mayon_prone_levels", "highly_prone", "explanation")
		require.True(t, ok)
		assert.Contains(t, text, "highly prone")
	})

	t.Run("ashfall template reachable through common", func(t *testing.T) {
		rule, ok := s.VolcanicRule("common")
		require.True(t, ok)
		template, ok := rule.SpecialCaseString("ashfall", "template")
		require.True(t, ok)
		assert.Contains(t, template, "{volcano_name}")
	})

	t.Run("base surge applies to taal", func(t *testing.T) {
		rule, ok := s.VolcanicRule("base_surge")
		require.True(t, ok)
		assert.Equal(t, []string{"Taal"}, rule.AppliesTo)
	})
}

func TestLoadMissingTopLevelKey(t *testing.T) {
	data := []byte(`
metadata:
  version: "1"
seismic_rules: {}
volcanic_rules: {}
decision_logic: {}
`)
	_, err := Load(data)
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "matching_parameters")
}

func TestLoadMissingHazardKey(t *testing.T) {
	data := []byte(`
metadata:
  version: "1"
seismic_rules:
  active_fault:
    explanation: x
    recommendation: y
volcanic_rules: {}
decision_logic: {}
matching_parameters: {}
`)
	_, err := Load(data)
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "liquefaction")
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load([]byte("metadata: [unclosed"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadPreservesUnknownConditionFields(t *testing.T) {
	data := []byte(`
metadata: {version: "1"}
seismic_rules:
  active_fault:
    explanation: x
    recommendation: y
    conditions:
      buffer_zone:
        template: Within the buffer zone
        threshold_m: 5
        future_field: kept
  liquefaction: {recommendation: y}
  tsunami: {explanation: x, recommendation: y}
  earthquake_induced_landslide: {explanation: x, recommendation: y}
  fissure: {explanation: x, recommendation: y}
volcanic_rules:
  pdz_danger_zone: {explanation: x, recommendation: y}
  lava_flow: {explanation: x, recommendation: y}
  pyroclastic_density_current: {explanation: x, recommendation: y}
  base_surge: {explanation: x, recommendation: y}
  ballistic_projectiles: {explanation: x, recommendation: y}
  lahar: {explanation: x, recommendation: y}
  volcanic_tsunami: {explanation: x, recommendation: y}
  fissure: {explanation: x, recommendation: y}
  potentially_active_volcano: {explanation: x}
decision_logic: {}
matching_parameters: {}
`)
	s, err := Load(data)
	require.NoError(t, err)

	rule, ok := s.SeismicRule("active_fault")
	require.True(t, ok)
	cond, ok := rule.Conditions["buffer_zone"]
	require.True(t, ok)
	assert.Equal(t, "Within the buffer zone", cond.Template)
	assert.Equal(t, 5.0, cond.ThresholdM)
	assert.Equal(t, "kept", cond.Extras["future_field"])
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/rules.yaml")
	assert.Error(t, err)
}

func TestSpecialCaseStringMalformed(t *testing.T) {
	rule := HazardRule{SpecialCases: map[string]any{
		"taal": "not a map",
	}}

	_, ok := rule.SpecialCaseString("taal", "reporting_instructions")
	assert.False(t, ok)

	_, ok = rule.SpecialCaseString("missing", "key")
	assert.False(t, ok)

	_, ok = rule.SpecialCaseString()
	assert.False(t, ok)
}
