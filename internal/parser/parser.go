// Package parser turns copy-pasted OHAS summary-table text into
// canonical assessment records.
//
// Four layouts are recognized, checked in priority order over the whole
// input: the OHAS native copy-paste dump (identified by its job-listing
// banner), a pipe-delimited markdown table, tab-separated values, and a
// single-record label:value block. Header names vary between exports,
// so raw headers are cleaned and mapped through a synonym table before
// row values are bound to canonical fields.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alfieprojectsdev/har-automation/internal/domain"
)

// ParseError reports that no input format was recognized or that no
// valid assessment row could be extracted.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// fieldSynonyms maps canonical field names to the header variants seen
// in OHAS exports, browser copies, and markdown clippings.
var fieldSynonyms = map[string][]string{
	"assessment":             {"assessment", "assessment no", "id", "assessment_id"},
	"category":               {"category"},
	"feature_type":           {"feature type", "feature_type", "type"},
	"location":               {"location", "coordinates", "coordinate"},
	"active_fault":           {"active fault", "active_fault", "ground rupture"},
	"liquefaction":           {"liquefaction", "liq"},
	"landslide":              {"landslide", "earthquake-induced landslide", "eil"},
	"tsunami":                {"tsunami", "tsu"},
	"fissure":                {"fissure"},
	"nearest_active_volcano": {"nearest active volcano", "nearest_active_volcano", "nearest volcano", "active volcano"},
	"nearest_pav":            {"nearest potentially active volcano", "nearest_potentially_active_volcano", "nearest pav", "pav"},
	"lahar":                  {"lahar"},
	"pyroclastic_flow":       {"pyroclastic flow", "pyroclastic_flow", "pdc", "pyroclastic density current"},
	"base_surge":             {"base surge", "base_surge"},
	"lava_flow":              {"lava flow", "lava_flow"},
	"ballistic_projectile":   {"ballistic projectile", "ballistic_projectile", "ballistic projectiles"},
	"volcanic_tsunami":       {"volcanic tsunami", "volcanic_tsunami"},
}

var (
	// dataRowRe identifies OHAS native data rows: a numeric assessment
	// id followed by whitespace.
	dataRowRe = regexp.MustCompile(`^\d+\s+`)

	// columnSplitRe splits native rows on runs of two or more spaces or
	// tabs. Single spaces occur inside narrative hazard text
	// ("Safe; Approximately 7.1 km west of ...") and must not split.
	columnSplitRe = regexp.MustCompile(`\s{2,}|\t`)

	// separatorRowRe matches markdown table separator rows like
	// |----|:---:|.
	separatorRowRe = regexp.MustCompile(`^\|\s*[-:]+\s*(\|\s*[-:]+\s*)*\|$`)

	// markdownLinkRe unwraps [Text](url) to Text in headers.
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
)

// Parse auto-detects the input layout and extracts assessments.
// Detection priority: native banner, pipe table, tabs, label:value.
func Parse(text string) ([]domain.Assessment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Msg: "empty input"}
	}

	switch {
	case strings.Contains(text, "Hazard Assessment") || strings.Contains(text, "Displaying"):
		return parseNative(text)
	case strings.Contains(text, "|") && strings.Contains(text, "\n"):
		return parsePipeTable(text)
	case strings.Contains(text, "\t"):
		return parseTSV(text)
	default:
		return parseFieldBased(text)
	}
}

// parseNative handles the OHAS browser copy-paste layout: banner lines,
// one column header per line, then data rows whose columns are
// separated by runs of spaces, terminated by a footer banner.
func parseNative(text string) ([]domain.Assessment, error) {
	lines := nonEmptyLines(text)

	headerKeywords := map[string]bool{
		"assessment":   true,
		"category":     true,
		"feature type": true,
		"location":     true,
	}

	headerStart := -1
	for i, line := range lines {
		if headerKeywords[strings.ToLower(line)] {
			headerStart = i
			break
		}
	}
	if headerStart < 0 {
		return nil, &ParseError{Msg: "native layout: no column headers found"}
	}

	var headers []string
	dataStart := -1
	for i := headerStart; i < len(lines); i++ {
		if dataRowRe.MatchString(lines[i]) {
			dataStart = i
			break
		}
		headers = append(headers, strings.ToLower(lines[i]))
	}
	if dataStart < 0 {
		return nil, &ParseError{Msg: "native layout: no data rows found"}
	}

	var assessments []domain.Assessment
	for _, line := range lines[dataStart:] {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "no files") || strings.Contains(lower, "attached") {
			break
		}
		if !dataRowRe.MatchString(line) {
			continue
		}

		values := columnSplitRe.Split(line, -1)
		// Short rows lose trailing not-assessed columns in the copy;
		// pad rather than reject.
		for len(values) < len(headers) {
			values = append(values, domain.NotAssessedSentinel)
		}

		if a, ok := resolveRow(zip(headers, values)); ok {
			assessments = append(assessments, a)
		}
	}

	if len(assessments) == 0 {
		return nil, &ParseError{Msg: "native layout: no valid assessment rows"}
	}
	return assessments, nil
}

// parsePipeTable handles markdown-style pipe-delimited tables.
func parsePipeTable(text string) ([]domain.Assessment, error) {
	lines := nonEmptyLines(text)

	var headers []string
	dataStart := -1
	for i, line := range lines {
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			continue
		}
		if separatorRowRe.MatchString(line) {
			continue
		}
		headers = cleanHeaders(splitPipeRow(line))
		dataStart = i + 1
		break
	}
	if headers == nil {
		return nil, &ParseError{Msg: "pipe table: no header row found"}
	}

	var assessments []domain.Assessment
	for _, line := range lines[dataStart:] {
		if !strings.HasPrefix(line, "|") || separatorRowRe.MatchString(line) {
			continue
		}
		values := splitPipeRow(line)
		if a, ok := resolveRow(zip(headers, values)); ok {
			assessments = append(assessments, a)
		}
	}

	if len(assessments) == 0 {
		return nil, &ParseError{Msg: "pipe table: no valid assessment rows"}
	}
	return assessments, nil
}

// parseTSV handles tab-separated values: first line headers, one record
// per subsequent line.
func parseTSV(text string) ([]domain.Assessment, error) {
	lines := nonEmptyLines(text)
	if len(lines) < 2 {
		return nil, &ParseError{Msg: "tsv: need a header line and at least one data line"}
	}

	headers := cleanHeaders(strings.Split(lines[0], "\t"))

	var assessments []domain.Assessment
	for _, line := range lines[1:] {
		values := strings.Split(line, "\t")
		if a, ok := resolveRow(zip(headers, values)); ok {
			assessments = append(assessments, a)
		}
	}

	if len(assessments) == 0 {
		return nil, &ParseError{Msg: "tsv: no valid assessment rows"}
	}
	return assessments, nil
}

// parseFieldBased handles a single label:value record. Each canonical
// field is located via a case-insensitive "label: value" scan over its
// synonyms; the first match per field wins.
func parseFieldBased(text string) ([]domain.Assessment, error) {
	row := make(map[string]string)
	for canonical, variants := range fieldSynonyms {
		for _, variant := range variants {
			re := regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(variant) + `\s*:\s*(.+)$`)
			if m := re.FindStringSubmatch(text); m != nil {
				row[canonical] = strings.TrimSpace(m[1])
				break
			}
		}
	}

	a, ok := resolveRow(row)
	if !ok {
		return nil, &ParseError{Msg: "unrecognized input: no table markers, tabs, or label:value fields"}
	}
	return []domain.Assessment{a}, nil
}

// resolveRow binds normalized row values to an Assessment. Rows missing
// an id, category, or parseable location are dropped (ok=false) rather
// than failing the whole parse.
func resolveRow(row map[string]string) (domain.Assessment, bool) {
	normalized := make(map[string]string, len(row))
	for field, value := range row {
		if canonical, ok := canonicalField(field); ok {
			normalized[canonical] = strings.TrimSpace(value)
		}
	}

	id, err := strconv.Atoi(normalized["assessment"])
	if err != nil {
		return domain.Assessment{}, false
	}

	category, ok := domain.ParseCategory(normalized["category"])
	if !ok {
		return domain.Assessment{}, false
	}

	locationStr := normalized["location"]
	if locationStr == "" || locationStr == domain.NotAssessedSentinel {
		return domain.Assessment{}, false
	}
	location, err := domain.ParseCoordinate(locationStr)
	if err != nil {
		return domain.Assessment{}, false
	}

	a := domain.Assessment{
		ID:       id,
		Category: category,
		Feature:  domain.ParseFeatureKind(normalized["feature_type"]),
		Location: location,
		// OHAS table copies come from assessments with a vicinity map
		// on file.
		MapProvided: true,
	}

	field := func(name string) domain.HazardField {
		return domain.NewHazardField(normalized[name])
	}

	switch category {
	case domain.CategorySeismic:
		a.Seismic = &domain.SeismicAssessment{
			ActiveFault:  field("active_fault"),
			Liquefaction: field("liquefaction"),
			Landslide:    field("landslide"),
			Tsunami:      field("tsunami"),
			Fissure:      field("fissure"),
		}
	case domain.CategoryVolcanic:
		a.Volcanic = &domain.VolcanicAssessment{
			NearestActiveVolcano: field("nearest_active_volcano"),
			NearestPAV:           field("nearest_pav"),
			Fissure:              field("fissure"),
			Lahar:                field("lahar"),
			PyroclasticFlow:      field("pyroclastic_flow"),
			BaseSurge:            field("base_surge"),
			LavaFlow:             field("lava_flow"),
			BallisticProjectile:  field("ballistic_projectile"),
			VolcanicTsunami:      field("volcanic_tsunami"),
		}
	}

	return a, true
}

// canonicalField maps a cleaned header to its canonical field name.
func canonicalField(header string) (string, bool) {
	header = strings.ToLower(strings.TrimSpace(header))
	for canonical, variants := range fieldSynonyms {
		if header == canonical {
			return canonical, true
		}
		for _, variant := range variants {
			if header == variant {
				return canonical, true
			}
		}
	}
	return "", false
}

// cleanHeaders unwraps markdown links, collapses whitespace, and
// lowercases raw header cells.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		h = markdownLinkRe.ReplaceAllString(h, "$1")
		h = strings.Join(strings.Fields(h), " ")
		cleaned[i] = strings.ToLower(h)
	}
	return cleaned
}

// splitPipeRow extracts the cells of a |-bounded row.
func splitPipeRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}
	cells := make([]string, 0, len(parts)-2)
	for _, p := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// zip pairs headers with row values; extra values are ignored, missing
// values stay absent.
func zip(headers, values []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(values) {
			row[h] = values[i]
		}
	}
	return row
}
