package bundle

import (
	r4 "github.com/hcxlabs/go-labdoc/internal/fhir/r4"
)

// compositionRefs carries the locators of everything the Composition may
// reference. Optional locators are empty when the resource was not built.
type compositionRefs struct {
	Patient      string
	Practitioner string
	Report       string
	Observations []string
	DocumentRefs []string
	Encounter    string
	Custodian    string
	AttesterOrg  string
}

// buildComposition assembles the single summary resource. The section entry
// list is fixed-order: the report, then every observation, then every
// document reference. When there is nothing to list the section carries an
// explanatory narrative instead of an entry list.
func buildComposition(id string, docMeta DocumentMeta, refs compositionRefs, authored string) *r4.Composition {
	c := &r4.Composition{
		ResourceType: "Composition",
		ID:           id,
		Meta:         meta(r4.ProfileComposition),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative(docMeta.Title, "<p>Laboratory report document</p>"),
		Identifier:   &r4.Identifier{System: r4.SystemLocalRecord, Value: id},
		Status:       docMeta.Status,
		Type:         r4.LabReportConcept(docMeta.TestCode),
		Subject:      &r4.Reference{Reference: refs.Patient},
		Date:         authored,
		Author:       []r4.Reference{{Reference: refs.Practitioner}},
		Title:        docMeta.Title,
	}

	if refs.Encounter != "" {
		c.Encounter = &r4.Reference{Reference: refs.Encounter}
	}
	if refs.Custodian != "" {
		c.Custodian = &r4.Reference{Reference: refs.Custodian}
	}
	c.Attester = attesters(docMeta, refs)

	section := r4.CompositionSection{
		Title: "Lab Reports",
		Code:  r4.LabReportConcept(docMeta.TestCode),
	}
	var entries []r4.Reference
	if refs.Report != "" {
		entries = append(entries, r4.Reference{Reference: refs.Report})
	}
	for _, urn := range refs.Observations {
		entries = append(entries, r4.Reference{Reference: urn})
	}
	for _, urn := range refs.DocumentRefs {
		entries = append(entries, r4.Reference{Reference: urn})
	}
	if len(entries) > 0 {
		section.Entry = entries
	} else {
		section.Text = RenderNarrative("Lab Reports", "<p>No report content available</p>")
	}
	c.Section = []r4.CompositionSection{section}
	return c
}

// attesters picks the attestation list: one entry per chosen party under the
// configured mode, defaulting to a single official-mode attestation naming
// the author when no party resolves.
func attesters(docMeta DocumentMeta, refs compositionRefs) []r4.CompositionAttester {
	mode := docMeta.AttesterMode
	if mode == "" {
		mode = "official"
	}
	switch docMeta.AttesterPartyType {
	case "organization":
		if refs.AttesterOrg != "" {
			return []r4.CompositionAttester{{Mode: mode, Party: &r4.Reference{Reference: refs.AttesterOrg}}}
		}
	case "practitioner":
		return []r4.CompositionAttester{{Mode: mode, Party: &r4.Reference{Reference: refs.Practitioner}}}
	}
	return []r4.CompositionAttester{{Mode: "official", Party: &r4.Reference{Reference: refs.Practitioner}}}
}
