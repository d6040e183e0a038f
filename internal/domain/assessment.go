package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NotAssessedSentinel is the OHAS marker for a hazard column that was not
// evaluated. It is recognized only at the parser boundary; domain code
// works with HazardField instead.
const NotAssessedSentinel = "--"

// Category identifies which hazard workflow applies to an assessment.
type Category string

const (
	CategorySeismic  Category = "Seismic"
	CategoryVolcanic Category = "Volcanic"
)

// ParseCategory maps an OHAS category token to a Category.
// OHAS labels the seismic workflow "Earthquake"; both spellings are accepted.
func ParseCategory(s string) (Category, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "earthquake"), strings.Contains(lower, "seismic"):
		return CategorySeismic, true
	case strings.Contains(lower, "volcan"):
		return CategoryVolcanic, true
	default:
		return "", false
	}
}

// ReportTitle returns the official document header for the category.
// HARs keep the historical "Earthquake" wording for the seismic workflow.
func (c Category) ReportTitle() string {
	if c == CategorySeismic {
		return "EARTHQUAKE HAZARD ASSESSMENT"
	}
	return "VOLCANO HAZARD ASSESSMENT"
}

// FeatureKind is the geometry of the assessed site.
type FeatureKind string

const (
	FeaturePolygon FeatureKind = "Polygon"
	FeaturePoint   FeatureKind = "Point"
	FeatureLine    FeatureKind = "Line"
)

// ParseFeatureKind maps a feature-type token to a FeatureKind,
// defaulting to Polygon when the token is empty or unrecognized.
func ParseFeatureKind(s string) FeatureKind {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "point"):
		return FeaturePoint
	case strings.Contains(lower, "line"):
		return FeatureLine
	default:
		return FeaturePolygon
	}
}

// Coordinate is a WGS-84 longitude/latitude pair.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ParseCoordinate parses the OHAS "lon,lat" location string.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: want \"lon,lat\"", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: %w", s, err)
	}
	return Coordinate{Lon: lon, Lat: lat}, nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Lon, c.Lat)
}

// HazardField is the tri-state value of one hazard column: not assessed,
// or assessed with free-text status. The zero value is "not assessed".
type HazardField struct {
	text     string
	assessed bool
}

// NewHazardField builds a HazardField from a raw OHAS cell. Empty strings
// and the "--" sentinel produce the not-assessed state.
func NewHazardField(raw string) HazardField {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NotAssessedSentinel {
		return HazardField{}
	}
	return HazardField{text: raw, assessed: true}
}

// Assessed reports whether the hazard was evaluated for the site.
func (f HazardField) Assessed() bool { return f.assessed }

// Text returns the raw status text, or "" when not assessed.
func (f HazardField) Text() string { return f.text }

// Contains reports whether the assessed status contains the given
// keyword, case-insensitively. Always false when not assessed.
func (f HazardField) Contains(keyword string) bool {
	return f.assessed && strings.Contains(strings.ToLower(f.text), strings.ToLower(keyword))
}

// SeismicAssessment holds the seismic hazard columns of one OHAS row.
type SeismicAssessment struct {
	ActiveFault  HazardField
	Liquefaction HazardField
	Landslide    HazardField
	Tsunami      HazardField
	Fissure      HazardField
}

// VolcanicAssessment holds the volcanic hazard columns of one OHAS row.
type VolcanicAssessment struct {
	NearestActiveVolcano HazardField
	NearestPAV           HazardField
	Fissure              HazardField
	Lahar                HazardField
	PyroclasticFlow      HazardField
	BaseSurge            HazardField
	LavaFlow             HazardField
	BallisticProjectile  HazardField
	VolcanicTsunami      HazardField
}

// Assessment is one canonical OHAS record: a site, its category, and
// exactly one category-specific payload.
type Assessment struct {
	ID          int
	Category    Category
	Feature     FeatureKind
	Location    Coordinate
	MapProvided bool
	Seismic     *SeismicAssessment
	Volcanic    *VolcanicAssessment
}

// Validate checks the category/payload agreement invariant.
func (a Assessment) Validate() error {
	switch a.Category {
	case CategorySeismic:
		if a.Seismic == nil {
			return &DomainError{Msg: fmt.Sprintf("assessment %d: missing seismic data", a.ID)}
		}
		if a.Volcanic != nil {
			return &DomainError{Msg: fmt.Sprintf("assessment %d: seismic category with volcanic payload", a.ID)}
		}
	case CategoryVolcanic:
		if a.Volcanic == nil {
			return &DomainError{Msg: fmt.Sprintf("assessment %d: missing volcanic data", a.ID)}
		}
		if a.Seismic != nil {
			return &DomainError{Msg: fmt.Sprintf("assessment %d: volcanic category with seismic payload", a.ID)}
		}
	default:
		return &DomainError{Msg: fmt.Sprintf("assessment %d: unknown category %q", a.ID, a.Category)}
	}
	return nil
}
