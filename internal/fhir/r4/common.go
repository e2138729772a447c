// Package r4 provides FHIR R4 data structures for the lab report document engine.
package r4

// Meta contains metadata about a resource.
type Meta struct {
	VersionID   string   `json:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Profile     []string `json:"profile,omitempty"`
}

// Narrative is the human-readable text block carried by every resource.
// Div holds an XHTML fragment; content is trusted, not escaped.
type Narrative struct {
	Status string `json:"status"`
	Div    string `json:"div"`
}

// Identifier represents a FHIR Identifier.
type Identifier struct {
	Use    string           `json:"use,omitempty"`
	Type   *CodeableConcept `json:"type,omitempty"`
	System string           `json:"system,omitempty"`
	Value  string           `json:"value,omitempty"`
}

// CodeableConcept represents a concept with text and codings.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Coding represents a code from a terminology system.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// Reference represents a reference to another resource. Within a document
// bundle every reference is a urn:uuid locator.
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

// Period represents a time period. Values are preformatted FHIR dateTime
// strings so the engine controls the exact offset rendering.
type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Quantity represents a measured amount.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// HumanName represents a human name. The engine emits text-only names.
type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

// ContactPoint represents a contact detail.
type ContactPoint struct {
	System string `json:"system,omitempty"` // phone | email | other
	Value  string `json:"value,omitempty"`
	Use    string `json:"use,omitempty"`
}

// Attachment represents content either inline or by reference.
type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Data        string `json:"data,omitempty"`
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
}

// LanguageIndia is the locale tag carried by every emitted resource.
const LanguageIndia = "en-IN"

// NDHM profile URLs, one fixed URL per resource kind.
const (
	ProfileDocumentBundle    = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/DocumentBundle"
	ProfileComposition       = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/DiagnosticReportRecord"
	ProfilePatient           = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/Patient"
	ProfilePractitioner      = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/Practitioner"
	ProfileEncounter         = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/Encounter"
	ProfileOrganization      = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/Organization"
	ProfileObservation       = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/Observation"
	ProfileDiagnosticReport  = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/DiagnosticReportLab"
	ProfileDocumentReference = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/DocumentReference"
	ProfileBinary            = "https://nrces.in/ndhm/fhir/r4/StructureDefinition/Binary"
)

// Common code systems.
const (
	SystemLOINC            = "http://loinc.org"
	SystemV2IdentifierType = "http://terminology.hl7.org/CodeSystem/v2-0203"
	SystemActCode          = "http://terminology.hl7.org/CodeSystem/v3-ActCode"
	SystemABHA             = "https://healthid.ndhm.gov.in"
	SystemMRN              = "https://healthfacility.example.in/mrn"
	SystemLocalRecord      = "https://healthfacility.example.in/patient"
)

// LOINC coding for a laboratory report, used on both DiagnosticReport
// code/category and Composition type.
const (
	CodeLabReport    = "11502-2"
	DisplayLabReport = "Laboratory report"
)

// LabReportConcept returns the fixed laboratory-report codeable concept.
func LabReportConcept(text string) *CodeableConcept {
	return &CodeableConcept{
		Coding: []Coding{{System: SystemLOINC, Code: CodeLabReport, Display: DisplayLabReport}},
		Text:   text,
	}
}
