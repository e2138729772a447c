package bundle

import (
	"strconv"
	"strings"

	r4 "github.com/hcxlabs/go-labdoc/internal/fhir/r4"
)

func meta(profile string) *r4.Meta {
	return &r4.Meta{Profile: []string{profile}}
}

// buildPatient maps a raw subject record to a Patient resource. Identifiers
// come from whichever of the known reference fields are present, plus an
// ABDM-style health id when the record carries one. Malformed fields are
// omitted, never fatal.
func buildPatient(id string, rec SubjectRecord, addresses []NormalizedAddress) *r4.Patient {
	name := rec.str("name")
	p := &r4.Patient{
		ResourceType: "Patient",
		ID:           id,
		Meta:         meta(r4.ProfilePatient),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative("Patient", "<p>"+name+"</p>"),
	}
	if name != "" {
		p.Name = []r4.HumanName{{Text: name}}
	}

	for _, src := range []struct{ field, system string }{
		{"referenceId", r4.SystemLocalRecord},
		{"mrn", r4.SystemMRN},
		{"externalRef", r4.SystemLocalRecord},
		{"id", r4.SystemLocalRecord},
	} {
		if v := rec.str(src.field); v != "" {
			p.Identifier = append(p.Identifier, r4.Identifier{System: src.system, Value: v})
		}
	}
	if abha := rec.str("abhaNumber"); abha != "" {
		p.Identifier = append(p.Identifier, r4.Identifier{System: r4.SystemABHA, Value: abha})
	}

	if phone := rec.str("phone"); phone != "" {
		p.Telecom = append(p.Telecom, r4.ContactPoint{System: "phone", Value: phone})
	}
	if email := rec.str("email"); email != "" {
		p.Telecom = append(p.Telecom, r4.ContactPoint{System: "email", Value: email})
	}
	if len(addresses) > 0 {
		p.Telecom = append(p.Telecom, r4.ContactPoint{System: "other", Value: addresses[0].Value})
	}

	if g := rec.str("gender"); g != "" {
		p.Gender = strings.ToLower(g)
	}
	if birth, ok := CanonicalDate(rec.str("birthDate")); ok {
		p.BirthDate = birth
	}
	return p
}

// buildPractitioner maps the author identity to a Practitioner resource with
// a medical-license identifier.
func buildPractitioner(id string, a AuthorIdentity) *r4.Practitioner {
	return &r4.Practitioner{
		ResourceType: "Practitioner",
		ID:           id,
		Meta:         meta(r4.ProfilePractitioner),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative("Practitioner", "<p>"+a.Display+"</p>"),
		Identifier: []r4.Identifier{{
			Type: &r4.CodeableConcept{
				Coding: []r4.Coding{{
					System:  r4.SystemV2IdentifierType,
					Code:    "MD",
					Display: "Medical License number",
				}},
			},
			Value: a.License,
		}},
		Name: []r4.HumanName{{Text: a.Display}},
	}
}

// buildEncounter produces the optional visit record. Period start and end are
// both the build time.
func buildEncounter(id, visitText, patientURN, buildTime string) *r4.Encounter {
	return &r4.Encounter{
		ResourceType: "Encounter",
		ID:           id,
		Meta:         meta(r4.ProfileEncounter),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative("Encounter", "<p>"+visitText+"</p>"),
		Status:       "finished",
		Class:        &r4.Coding{System: r4.SystemActCode, Code: "AMB", Display: "ambulatory"},
		Subject:      &r4.Reference{Reference: patientURN},
		Period:       &r4.Period{Start: buildTime, End: buildTime},
	}
}

func buildOrganization(id, name string) *r4.Organization {
	return &r4.Organization{
		ResourceType: "Organization",
		ID:           id,
		Meta:         meta(r4.ProfileOrganization),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative("Organization", "<p>"+name+"</p>"),
		Name:         name,
	}
}

// buildObservation maps one measurement row. Value encoding takes exactly one
// of two paths: a structured quantity when the unit is set and the value text
// parses as a number, otherwise free text when the value text is non-empty.
// A row may carry no value at all.
func buildObservation(id string, m MeasurementInput, patientURN, performerURN, authored string) *r4.Observation {
	o := &r4.Observation{
		ResourceType:      "Observation",
		ID:                id,
		Meta:              meta(r4.ProfileObservation),
		Language:          r4.LanguageIndia,
		Text:              RenderNarrative("Observation", "<p>"+m.Code+"</p>"),
		Status:            "final",
		Subject:           &r4.Reference{Reference: patientURN},
		Performer:         []r4.Reference{{Reference: performerURN}},
		EffectiveDateTime: EffectiveTime(m.Date, authored),
	}
	if m.Code != "" {
		o.Code = &r4.CodeableConcept{Text: m.Code}
	}

	value := strings.TrimSpace(m.Value)
	unit := strings.TrimSpace(m.Unit)
	if unit != "" {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			o.ValueQuantity = &r4.Quantity{Value: n, Unit: unit}
			return o
		}
	}
	if value != "" {
		o.ValueString = value
	}
	return o
}

// buildDiagnosticReport produces the single report resource enumerating every
// observation in creation order.
func buildDiagnosticReport(id string, docMeta DocumentMeta, patientURN, performerURN string, results []r4.Reference, authored string) *r4.DiagnosticReport {
	return &r4.DiagnosticReport{
		ResourceType:      "DiagnosticReport",
		ID:                id,
		Meta:              meta(r4.ProfileDiagnosticReport),
		Language:          r4.LanguageIndia,
		Text:              RenderNarrative("DiagnosticReport", "<p>"+docMeta.Title+"</p>"),
		Status:            docMeta.Status,
		Category:          []r4.CodeableConcept{*r4.LabReportConcept("")},
		Code:              r4.LabReportConcept(docMeta.TestCode),
		Subject:           &r4.Reference{Reference: patientURN},
		EffectiveDateTime: authored,
		Issued:            authored,
		Performer:         []r4.Reference{{Reference: performerURN}},
		Result:            results,
	}
}

// buildDocumentPair produces one DocumentReference/Binary pair for an encoded
// attachment; the reference's attachment URL points at its paired Binary.
func buildDocumentPair(refID, binID string, enc EncodedAttachment, patientURN string) (*r4.DocumentReference, *r4.Binary) {
	ref := &r4.DocumentReference{
		ResourceType: "DocumentReference",
		ID:           refID,
		Meta:         meta(r4.ProfileDocumentReference),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative("DocumentReference", "<p>"+enc.Title+"</p>"),
		Status:       "current",
		Type:         r4.LabReportConcept(enc.Title),
		Subject:      &r4.Reference{Reference: patientURN},
		Content: []r4.DocumentReferenceContent{{
			Attachment: r4.Attachment{
				ContentType: enc.ContentType,
				URL:         URN(binID),
				Title:       enc.Title,
			},
		}},
	}
	bin := &r4.Binary{
		ResourceType: "Binary",
		ID:           binID,
		Meta:         meta(r4.ProfileBinary),
		Language:     r4.LanguageIndia,
		Text:         RenderNarrative("Binary", "<p>"+enc.Title+"</p>"),
		ContentType:  enc.ContentType,
		Data:         enc.Data,
	}
	return ref, bin
}
