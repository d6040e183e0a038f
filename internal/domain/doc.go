// Package domain models PHIVOLCS hazard-assessment data and the Hazard
// Assessment Report (HAR) produced from it.
//
// # Data Source
//
// Assessment records originate from OHAS (the Online Hazard Assessment
// System) summary tables, copied by analysts from the browser. The copy
// is irregular: depending on the browser and the page state it arrives
// as a one-token-per-line "native" dump, a pipe-delimited markdown
// table, tab-separated values, or a single label:value block. The parser
// package normalizes all of these into [Assessment] values.
//
// # OHAS Conventions
//
// Not-assessed sentinel:
//
//	"--" marks a hazard column that was not evaluated for the site.
//	The sentinel is recognized once, at the parser boundary; inside the
//	domain a hazard is a tri-state [HazardField] and code asks
//	field.Assessed() instead of comparing strings.
//
// Location format:
//
//	"<longitude>,<latitude>" as decimal degrees, e.g.
//	"120.989669,14.537869". Longitude first, matching the OHAS export.
//
// Nearest-volcano narrative:
//
//	"Approximately <distance> (km|kilometers) <direction> of <name> Volcano"
//	e.g. "Approximately 67.7 kilometers east of Biliran Volcano".
//	Parsed by [ParseNearestVolcano]. A narrative that does not match the
//	grammar yields an explicit unknown distance, never 0 km; a zero
//	would silently force the detailed proximity-hazard branch of the
//	decision workflow.
//
// Status strings:
//
//	Free text such as "Safe", "High Potential", "Highly Prone",
//	"Prone; Within the tsunami inundation zone". The matcher package
//	maps these to canonical rulebook condition keys.
//
// # Volcano Identity
//
// Several rules are entity-specific: Permanent Danger Zone radii, the
// Pinatubo lahar zone tables, Mayon prone-level lahar wording, and the
// Taal-only base surge and fissure reporting. Identity is resolved once
// from the parsed volcano name into the closed [VolcanoID] enumeration
// rather than re-matching substrings at each rule site.
package domain
