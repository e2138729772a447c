package bundle

import r4 "github.com/hcxlabs/go-labdoc/internal/fhir/r4"

// RenderNarrative wraps a title and an inner XHTML fragment into the
// locale-tagged narrative every resource carries. Neither argument is
// escaped; inner markup is trusted by contract.
func RenderNarrative(title, inner string) *r4.Narrative {
	div := `<div xmlns="http://www.w3.org/1999/xhtml" lang="` + r4.LanguageIndia +
		`" xml:lang="` + r4.LanguageIndia + `"><h3>` + title + `</h3>` + inner + `</div>`
	return &r4.Narrative{Status: "generated", Div: div}
}
