package domain

import (
	"fmt"
	"strings"
	"time"
)

// Section is one numbered hazard entry in a HAR. Text carries the
// explanation and recommendation as a single unit: in official HARs the
// recommendation is never a separate paragraph from its explanation.
type Section struct {
	Heading string
	Status  string
	Text    string
}

// JoinExplanation combines explanation and recommendation into the
// single text unit used by Section and common statements. Empty parts
// are dropped.
func JoinExplanation(explanation, recommendation string) string {
	parts := make([]string, 0, 2)
	if explanation != "" {
		parts = append(parts, explanation)
	}
	if recommendation != "" {
		parts = append(parts, recommendation)
	}
	return strings.Join(parts, " ")
}

// Report is the assembled HAR for one assessment. Sections and
// Statements keep insertion order; rendering numbers them continuously.
type Report struct {
	AssessmentID              int
	Category                  Category
	Intro                     string
	Sections                  []Section
	Statements                []string // unheaded common statements, numbered after Sections
	Supersedes                string
	AdditionalRecommendations []string
	GeneratedAt               time.Time
}

// NewReport creates an empty report stamped with the domain clock.
func NewReport(id int, category Category) Report {
	return Report{
		AssessmentID: id,
		Category:     category,
		GeneratedAt:  clock.Now().UTC(),
	}
}

// AddSection appends a numbered hazard section.
func (r *Report) AddSection(s Section) {
	r.Sections = append(r.Sections, s)
}

// AddStatement appends an unheaded common statement.
func (r *Report) AddStatement(text string) {
	r.Statements = append(r.Statements, text)
}

// RenderText produces the official plain-text HAR layout:
// category header, intro, EXPLANATION AND RECOMMENDATION banner,
// numbered sections, common statements continuing the numbering,
// supersedes sentence, additional recommendations.
func (r Report) RenderText() string {
	var b strings.Builder

	b.WriteString(r.Category.ReportTitle())
	b.WriteString("\n\n")
	b.WriteString(r.Intro)
	b.WriteString("\n\n")
	b.WriteString("EXPLANATION AND RECOMMENDATION\n\n")

	number := 1
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "%d. %s: %s. %s\n\n", number, s.Heading, s.Status, s.Text)
		number++
	}
	for _, stmt := range r.Statements {
		fmt.Fprintf(&b, "%d. %s\n\n", number, stmt)
		number++
	}

	b.WriteString(r.Supersedes)
	b.WriteString("\n\n")
	for _, rec := range r.AdditionalRecommendations {
		b.WriteString(rec)
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderMap mirrors RenderText's structure as key/value pairs for
// machine consumption.
func (r Report) RenderMap() map[string]any {
	sections := make([]map[string]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		sections = append(sections, map[string]string{
			"heading": s.Heading,
			"status":  s.Status,
			"text":    s.Text,
		})
	}
	return map[string]any{
		"assessment_id":              r.AssessmentID,
		"category":                   string(r.Category),
		"intro":                      r.Intro,
		"sections":                   sections,
		"statements":                 append([]string(nil), r.Statements...),
		"supersedes":                 r.Supersedes,
		"additional_recommendations": append([]string(nil), r.AdditionalRecommendations...),
		"generated_at":               r.GeneratedAt.Format(time.RFC3339),
	}
}
