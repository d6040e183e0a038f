package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// VolcanoID is the closed set of volcanoes with entity-specific rules.
// Everything else resolves to VolcanoGeneric and takes the default
// rulebook wording.
type VolcanoID int

const (
	VolcanoGeneric VolcanoID = iota
	VolcanoTaal
	VolcanoMayon
	VolcanoKanlaon
	VolcanoPinatubo
	VolcanoBulusan
	VolcanoHibokHibok
)

// pdzRadiusKM maps volcano identity to its Permanent Danger Zone radius.
// Absence means the volcano has no fixed PDZ and the step is skipped.
var pdzRadiusKM = map[VolcanoID]float64{
	VolcanoTaal:       4.0,
	VolcanoKanlaon:    4.0,
	VolcanoMayon:      6.0,
	VolcanoPinatubo:   4.0,
	VolcanoBulusan:    4.0,
	VolcanoHibokHibok: 4.0,
}

// PDZRadiusKM returns the Permanent Danger Zone radius for the volcano,
// or ok=false when no PDZ is defined for it.
func (v VolcanoID) PDZRadiusKM() (radius float64, ok bool) {
	radius, ok = pdzRadiusKM[v]
	return radius, ok
}

// ResolveVolcanoID maps a parsed volcano name to its identity.
// Matching is by normalized name token, not free substring containment,
// so "Taal Lake Resort" in narrative text cannot select Taal rules.
func ResolveVolcanoID(name string) VolcanoID {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.TrimSuffix(normalized, " volcano")
	switch normalized {
	case "taal":
		return VolcanoTaal
	case "mayon":
		return VolcanoMayon
	case "kanlaon", "canlaon":
		return VolcanoKanlaon
	case "pinatubo", "mt. pinatubo", "mount pinatubo":
		return VolcanoPinatubo
	case "bulusan":
		return VolcanoBulusan
	case "hibok-hibok", "hibok hibok", "hibokhibok":
		return VolcanoHibokHibok
	default:
		return VolcanoGeneric
	}
}

// NearestVolcano is the parsed form of an OHAS nearest-active-volcano
// narrative. Known is false when the narrative did not match the grammar;
// DistanceKM is only meaningful when Known is true.
type NearestVolcano struct {
	Name       string
	Direction  string
	DistanceKM float64
	Known      bool
}

// ID resolves the volcano identity from the parsed name.
func (n NearestVolcano) ID() VolcanoID {
	if !n.Known {
		return VolcanoGeneric
	}
	return ResolveVolcanoID(n.Name)
}

// nearestVolcanoRe parses narratives like
// "Approximately 67.7 kilometers east of Biliran Volcano".
// Both "km" and "kilometers" occur in OHAS output.
var nearestVolcanoRe = regexp.MustCompile(`(?i)Approximately\s+([\d.]+)\s*(?:km|kilometers)\s+(\w+)\s+of\s+(.+?)\s+Volcano`)

// ParseNearestVolcano extracts (distance, direction, name) from a
// nearest-active-volcano narrative. A narrative that does not match the
// grammar returns Known=false rather than a zero distance, so callers
// can skip distance-dependent rules instead of misfiring them.
func ParseNearestVolcano(text string) NearestVolcano {
	m := nearestVolcanoRe.FindStringSubmatch(text)
	if m == nil {
		return NearestVolcano{}
	}
	distance, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return NearestVolcano{}
	}
	return NearestVolcano{
		Name:       strings.TrimSpace(m[3]),
		Direction:  m[2],
		DistanceKM: distance,
		Known:      true,
	}
}
