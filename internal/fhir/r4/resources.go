package r4

// Bundle is the top-level container. For document bundles the first entry is
// always the Composition and Type is "document".
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
	Identifier   *Identifier   `json:"identifier,omitempty"`
	Type         string        `json:"type"`
	Timestamp    string        `json:"timestamp,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

// BundleEntry pairs a urn:uuid locator with its embedded resource.
type BundleEntry struct {
	FullURL  string `json:"fullUrl"`
	Resource any    `json:"resource"`
}

// Composition is the document summary resource.
type Composition struct {
	ResourceType string               `json:"resourceType"`
	ID           string               `json:"id,omitempty"`
	Meta         *Meta                `json:"meta,omitempty"`
	Language     string               `json:"language,omitempty"`
	Text         *Narrative           `json:"text,omitempty"`
	Identifier   *Identifier          `json:"identifier,omitempty"`
	Status       string               `json:"status"`
	Type         *CodeableConcept     `json:"type,omitempty"`
	Subject      *Reference           `json:"subject,omitempty"`
	Encounter    *Reference           `json:"encounter,omitempty"`
	Date         string               `json:"date,omitempty"`
	Author       []Reference          `json:"author,omitempty"`
	Title        string               `json:"title,omitempty"`
	Attester     []CompositionAttester `json:"attester,omitempty"`
	Custodian    *Reference           `json:"custodian,omitempty"`
	Section      []CompositionSection `json:"section,omitempty"`
}

// CompositionAttester is one attestation entry.
type CompositionAttester struct {
	Mode  string     `json:"mode"`
	Time  string     `json:"time,omitempty"`
	Party *Reference `json:"party,omitempty"`
}

// CompositionSection groups the document's clinical references.
type CompositionSection struct {
	Title string           `json:"title,omitempty"`
	Code  *CodeableConcept `json:"code,omitempty"`
	Text  *Narrative       `json:"text,omitempty"`
	Entry []Reference      `json:"entry,omitempty"`
}

// Patient represents a FHIR R4 Patient resource.
type Patient struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id,omitempty"`
	Meta         *Meta          `json:"meta,omitempty"`
	Language     string         `json:"language,omitempty"`
	Text         *Narrative     `json:"text,omitempty"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
}

// Practitioner represents a FHIR R4 Practitioner resource.
type Practitioner struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id,omitempty"`
	Meta         *Meta        `json:"meta,omitempty"`
	Language     string       `json:"language,omitempty"`
	Text         *Narrative   `json:"text,omitempty"`
	Identifier   []Identifier `json:"identifier,omitempty"`
	Name         []HumanName  `json:"name,omitempty"`
}

// Encounter represents a FHIR R4 Encounter resource.
type Encounter struct {
	ResourceType string     `json:"resourceType"`
	ID           string     `json:"id,omitempty"`
	Meta         *Meta      `json:"meta,omitempty"`
	Language     string     `json:"language,omitempty"`
	Text         *Narrative `json:"text,omitempty"`
	Status       string     `json:"status"`
	Class        *Coding    `json:"class,omitempty"`
	Subject      *Reference `json:"subject,omitempty"`
	Period       *Period    `json:"period,omitempty"`
}

// Organization represents a FHIR R4 Organization resource.
type Organization struct {
	ResourceType string     `json:"resourceType"`
	ID           string     `json:"id,omitempty"`
	Meta         *Meta      `json:"meta,omitempty"`
	Language     string     `json:"language,omitempty"`
	Text         *Narrative `json:"text,omitempty"`
	Name         string     `json:"name,omitempty"`
}

// Observation represents one discrete test result. At most one of
// ValueQuantity and ValueString is set, never both.
type Observation struct {
	ResourceType      string           `json:"resourceType"`
	ID                string           `json:"id,omitempty"`
	Meta              *Meta            `json:"meta,omitempty"`
	Language          string           `json:"language,omitempty"`
	Text              *Narrative       `json:"text,omitempty"`
	Status            string           `json:"status"`
	Code              *CodeableConcept `json:"code,omitempty"`
	Subject           *Reference       `json:"subject,omitempty"`
	Performer         []Reference      `json:"performer,omitempty"`
	EffectiveDateTime string           `json:"effectiveDateTime,omitempty"`
	ValueQuantity     *Quantity        `json:"valueQuantity,omitempty"`
	ValueString       string           `json:"valueString,omitempty"`
}

// DiagnosticReport is the top-level clinical result resource.
type DiagnosticReport struct {
	ResourceType      string            `json:"resourceType"`
	ID                string            `json:"id,omitempty"`
	Meta              *Meta             `json:"meta,omitempty"`
	Language          string            `json:"language,omitempty"`
	Text              *Narrative        `json:"text,omitempty"`
	Status            string            `json:"status"`
	Category          []CodeableConcept `json:"category,omitempty"`
	Code              *CodeableConcept  `json:"code,omitempty"`
	Subject           *Reference        `json:"subject,omitempty"`
	EffectiveDateTime string            `json:"effectiveDateTime,omitempty"`
	Issued            string            `json:"issued,omitempty"`
	Performer         []Reference       `json:"performer,omitempty"`
	Result            []Reference       `json:"result,omitempty"`
}

// DocumentReference describes an attached (or placeholder) report artifact.
type DocumentReference struct {
	ResourceType string                     `json:"resourceType"`
	ID           string                     `json:"id,omitempty"`
	Meta         *Meta                      `json:"meta,omitempty"`
	Language     string                     `json:"language,omitempty"`
	Text         *Narrative                 `json:"text,omitempty"`
	Status       string                     `json:"status"`
	Type         *CodeableConcept           `json:"type,omitempty"`
	Subject      *Reference                 `json:"subject,omitempty"`
	Content      []DocumentReferenceContent `json:"content,omitempty"`
}

// DocumentReferenceContent is one attachment slot; its URL points at the
// paired Binary's locator.
type DocumentReferenceContent struct {
	Attachment Attachment `json:"attachment"`
}

// Binary carries the raw encoded bytes of an attachment. Text and language
// are emitted here as well because the downstream consumer expects every
// resource in the document to carry them.
type Binary struct {
	ResourceType string     `json:"resourceType"`
	ID           string     `json:"id,omitempty"`
	Meta         *Meta      `json:"meta,omitempty"`
	Language     string     `json:"language,omitempty"`
	Text         *Narrative `json:"text,omitempty"`
	ContentType  string     `json:"contentType"`
	Data         string     `json:"data,omitempty"`
}
