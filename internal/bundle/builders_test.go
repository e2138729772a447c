package bundle

import (
	"strings"
	"testing"

	r4 "github.com/hcxlabs/go-labdoc/internal/fhir/r4"
)

func TestBuildObservationValueEncoding(t *testing.T) {
	cases := []struct {
		name         string
		m            MeasurementInput
		wantQuantity *r4.Quantity
		wantString   string
	}{
		{
			name:         "numeric with unit",
			m:            MeasurementInput{Code: "HGB", Value: "13.2", Unit: "g/dL"},
			wantQuantity: &r4.Quantity{Value: 13.2, Unit: "g/dL"},
		},
		{
			name:       "non-numeric with unit falls back to text",
			m:          MeasurementInput{Code: "COLOR", Value: "amber", Unit: "visual"},
			wantString: "amber",
		},
		{
			name:       "text without unit",
			m:          MeasurementInput{Code: "NOTE", Value: "trace protein"},
			wantString: "trace protein",
		},
		{
			name: "no value at all",
			m:    MeasurementInput{Code: "PENDING", Unit: "g/dL"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := buildObservation("obs-id", tc.m, "urn:uuid:p", "urn:uuid:dr", "2024-01-01")
			if tc.wantQuantity != nil {
				if o.ValueQuantity == nil || *o.ValueQuantity != *tc.wantQuantity {
					t.Errorf("valueQuantity = %+v, want %+v", o.ValueQuantity, tc.wantQuantity)
				}
				if o.ValueString != "" {
					t.Errorf("both value kinds set")
				}
				return
			}
			if o.ValueQuantity != nil {
				t.Errorf("unexpected valueQuantity %+v", o.ValueQuantity)
			}
			if o.ValueString != tc.wantString {
				t.Errorf("valueString = %q, want %q", o.ValueString, tc.wantString)
			}
		})
	}
}

func TestBuildObservationWiring(t *testing.T) {
	o := buildObservation("obs-id", MeasurementInput{Code: "HGB", Value: "13.2", Unit: "g/dL"},
		"urn:uuid:patient", "urn:uuid:doc", "2024-01-01")
	if o.Status != "final" {
		t.Errorf("status = %q", o.Status)
	}
	if o.Subject == nil || o.Subject.Reference != "urn:uuid:patient" {
		t.Errorf("subject = %+v", o.Subject)
	}
	if len(o.Performer) != 1 || o.Performer[0].Reference != "urn:uuid:doc" {
		t.Errorf("performer = %+v", o.Performer)
	}
	if o.EffectiveDateTime != "2024-01-01" {
		t.Errorf("effective = %q", o.EffectiveDateTime)
	}
	if o.Code == nil || o.Code.Text != "HGB" {
		t.Errorf("code = %+v", o.Code)
	}
}

func TestBuildPatientIdentifiers(t *testing.T) {
	rec := SubjectRecord{
		"name":        "Asha Rao",
		"referenceId": "ref-1",
		"mrn":         "MRN-9",
		"abhaNumber":  "12-3456-7890-1234",
		"gender":      "Female",
		"birthDate":   "25-12-1990",
		"phone":       "+91-9999999999",
		"email":       "asha@example.com",
	}
	p := buildPatient("pid", rec, NormalizeAddresses(rec))

	if p.Gender != "female" {
		t.Errorf("gender = %q", p.Gender)
	}
	if p.BirthDate != "1990-12-25" {
		t.Errorf("birthDate = %q", p.BirthDate)
	}
	if len(p.Identifier) != 3 {
		t.Fatalf("identifiers = %+v", p.Identifier)
	}
	if p.Identifier[0].System != r4.SystemLocalRecord || p.Identifier[0].Value != "ref-1" {
		t.Errorf("first identifier = %+v", p.Identifier[0])
	}
	if p.Identifier[1].System != r4.SystemMRN || p.Identifier[1].Value != "MRN-9" {
		t.Errorf("mrn identifier = %+v", p.Identifier[1])
	}
	if p.Identifier[2].System != r4.SystemABHA {
		t.Errorf("abha identifier = %+v", p.Identifier[2])
	}
	if len(p.Telecom) != 2 {
		t.Errorf("telecom = %+v", p.Telecom)
	}
}

func TestBuildPatientPrimaryAddressInTelecom(t *testing.T) {
	rec := SubjectRecord{
		"name": "Asha Rao",
		"addresses": []any{
			"secondary@x",
			map[string]any{"address": "primary@x", "isPrimary": true},
		},
	}
	p := buildPatient("pid", rec, NormalizeAddresses(rec))
	found := false
	for _, tp := range p.Telecom {
		if tp.System == "other" && tp.Value == "primary@x" {
			found = true
		}
	}
	if !found {
		t.Errorf("primary address missing from telecom: %+v", p.Telecom)
	}
}

func TestBuildPatientMalformedFieldsOmitted(t *testing.T) {
	rec := SubjectRecord{
		"name":      "X",
		"birthDate": "someday",
		"gender":    123, // wrong type
	}
	p := buildPatient("pid", rec, nil)
	if p.BirthDate != "" {
		t.Errorf("unparseable birthDate kept: %q", p.BirthDate)
	}
	if p.Gender != "" {
		t.Errorf("non-string gender kept: %q", p.Gender)
	}
}

func TestBuildPractitionerLicense(t *testing.T) {
	pr := buildPractitioner("prid", AuthorIdentity{Display: "Dr. Mehta", License: "MH-123"})
	if len(pr.Identifier) != 1 || pr.Identifier[0].Value != "MH-123" {
		t.Fatalf("identifier = %+v", pr.Identifier)
	}
	coding := pr.Identifier[0].Type.Coding
	if len(coding) != 1 || coding[0].Code != "MD" || coding[0].System != r4.SystemV2IdentifierType {
		t.Errorf("coding = %+v", coding)
	}
	if pr.Name[0].Text != "Dr. Mehta" {
		t.Errorf("name = %+v", pr.Name)
	}
}

func TestBuildEncounterPeriod(t *testing.T) {
	e := buildEncounter("eid", "OPD visit", "urn:uuid:p", "2024-01-01T10:00:00+05:30")
	if e.Status != "finished" {
		t.Errorf("status = %q", e.Status)
	}
	if e.Class == nil || e.Class.Code != "AMB" {
		t.Errorf("class = %+v", e.Class)
	}
	if e.Period == nil || e.Period.Start != e.Period.End || e.Period.Start != "2024-01-01T10:00:00+05:30" {
		t.Errorf("period = %+v", e.Period)
	}
}

func TestBuildDiagnosticReportCoding(t *testing.T) {
	meta := DocumentMeta{Status: "final", Title: "CBC Report", TestCode: "CBC"}
	results := []r4.Reference{{Reference: "urn:uuid:o1"}, {Reference: "urn:uuid:o2"}}
	r := buildDiagnosticReport("rid", meta, "urn:uuid:p", "urn:uuid:dr", results, "2024-01-01T00:00:00+05:30")

	if r.Code == nil || r.Code.Text != "CBC" {
		t.Errorf("code = %+v", r.Code)
	}
	if len(r.Code.Coding) != 1 || r.Code.Coding[0].Code != r4.CodeLabReport {
		t.Errorf("coding = %+v", r.Code.Coding)
	}
	if len(r.Category) != 1 {
		t.Errorf("category = %+v", r.Category)
	}
	if len(r.Result) != 2 || r.Result[0].Reference != "urn:uuid:o1" {
		t.Errorf("results = %+v", r.Result)
	}
}

func TestBuildDocumentPairLinksBinary(t *testing.T) {
	enc := EncodedAttachment{ContentType: "application/pdf", Data: "QUJD", Title: "scan.pdf"}
	ref, bin := buildDocumentPair("ref-id", "bin-id", enc, "urn:uuid:p")

	if len(ref.Content) != 1 {
		t.Fatalf("content = %+v", ref.Content)
	}
	att := ref.Content[0].Attachment
	if att.URL != "urn:uuid:bin-id" {
		t.Errorf("attachment url = %q", att.URL)
	}
	if att.ContentType != bin.ContentType {
		t.Errorf("content types diverge: %q vs %q", att.ContentType, bin.ContentType)
	}
	if bin.Data != "QUJD" {
		t.Errorf("binary data = %q", bin.Data)
	}
	if ref.Status != "current" {
		t.Errorf("status = %q", ref.Status)
	}
}

func TestNarrativePresentOnEveryResource(t *testing.T) {
	p := buildPatient("pid", SubjectRecord{"name": "X"}, nil)
	if p.Text == nil || p.Text.Status != "generated" {
		t.Fatalf("patient narrative = %+v", p.Text)
	}
	if !strings.Contains(p.Text.Div, `xmlns="http://www.w3.org/1999/xhtml"`) {
		t.Errorf("narrative missing xhtml namespace: %q", p.Text.Div)
	}
	if p.Language != r4.LanguageIndia {
		t.Errorf("language = %q", p.Language)
	}
}
