package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVolcanoID(t *testing.T) {
	cases := []struct {
		name     string
		expected VolcanoID
	}{
		{"Taal", VolcanoTaal},
		{"taal", VolcanoTaal},
		{"Taal Volcano", VolcanoTaal},
		{"Mayon", VolcanoMayon},
		{"Kanlaon", VolcanoKanlaon},
		{"Canlaon", VolcanoKanlaon},
		{"Mount Pinatubo", VolcanoPinatubo},
		{"Hibok-Hibok", VolcanoHibokHibok},
		{"Bulusan", VolcanoBulusan},
		{"Biliran", VolcanoGeneric},
		// Substring containment must not select named-volcano rules.
		{"Taal Lake Resort", VolcanoGeneric},
		{"", VolcanoGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveVolcanoID(tc.name))
		})
	}
}

func TestPDZRadiusKM(t *testing.T) {
	radius, ok := VolcanoMayon.PDZRadiusKM()
	assert.True(t, ok)
	assert.Equal(t, 6.0, radius)

	radius, ok = VolcanoTaal.PDZRadiusKM()
	assert.True(t, ok)
	assert.Equal(t, 4.0, radius)

	_, ok = VolcanoGeneric.PDZRadiusKM()
	assert.False(t, ok)
}

func TestParseNearestVolcano(t *testing.T) {
	t.Run("kilometers spelling", func(t *testing.T) {
		n := ParseNearestVolcano("Approximately 67.7 kilometers east of Biliran Volcano")
		assert.True(t, n.Known)
		assert.Equal(t, 67.7, n.DistanceKM)
		assert.Equal(t, "east", n.Direction)
		assert.Equal(t, "Biliran", n.Name)
		assert.Equal(t, VolcanoGeneric, n.ID())
	})

	t.Run("km abbreviation", func(t *testing.T) {
		n := ParseNearestVolcano("Approximately 12.4 km north of Taal Volcano")
		assert.True(t, n.Known)
		assert.Equal(t, 12.4, n.DistanceKM)
		assert.Equal(t, VolcanoTaal, n.ID())
	})

	t.Run("unparsed narrative stays unknown", func(t *testing.T) {
		n := ParseNearestVolcano("Near an unnamed volcanic edifice")
		assert.False(t, n.Known)
		assert.Zero(t, n.DistanceKM)
		assert.Equal(t, VolcanoGeneric, n.ID())
	})

	t.Run("empty input", func(t *testing.T) {
		n := ParseNearestVolcano("")
		assert.False(t, n.Known)
	})
}
