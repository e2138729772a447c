package bundle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	r4 "github.com/hcxlabs/go-labdoc/internal/fhir/r4"
	"github.com/hcxlabs/go-labdoc/pkg/workerpool"
)

// Composer builds document bundles. Safe for concurrent use; every build is
// independent and all build state is discarded once the container is handed
// back.
type Composer struct {
	logger *zap.Logger
	pool   *workerpool.Pool
}

// NewComposer creates a composer. encodeWorkers bounds concurrent attachment
// reads.
func NewComposer(encodeWorkers int, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		logger: logger,
		pool:   workerpool.New(encodeWorkers, logger),
	}
}

// BuildResult is one finished build: the container plus the identifiers the
// caller needs for submission and retention.
type BuildResult struct {
	Bundle    *r4.Bundle
	BundleID  string
	SubjectID string
}

// Build runs the full pipeline: validation gate, identifier minting,
// attachment encoding, resource builders, composition assembly and container
// composition. It returns *ValidationError for input violations and a wrapped
// read error when any attachment fails; in both cases nothing partial is
// emitted.
func (c *Composer) Build(ctx context.Context, in BuildInput) (*BuildResult, error) {
	if verr := Validate(in); verr != nil {
		return nil, verr
	}

	var authoredAt time.Time
	if t, ok := ParseLocalInstant(in.Meta.AuthoredOn); ok {
		authoredAt = t
	}
	authored := OffsetTimestamp(authoredAt)
	buildTime := OffsetTimestamp(time.Time{})

	// Encode attachments first: reads are concurrent with no completion
	// ordering, but pairs must keep the original selection order, and a
	// single failed read aborts the build before any resource exists.
	encoded, err := c.encodeAttachments(ctx, in.Attachments)
	if err != nil {
		return nil, err
	}

	// One identifier per resource to be created.
	compositionID := GenerateID()
	patientID := GenerateID()
	practitionerID := ResolveID(in.Author.ID)
	reportID := GenerateID()
	obsIDs := make([]string, len(in.Measurements))
	for i := range obsIDs {
		obsIDs[i] = GenerateID()
	}
	refIDs := make([]string, len(encoded))
	binIDs := make([]string, len(encoded))
	for i := range encoded {
		refIDs[i] = GenerateID()
		binIDs[i] = GenerateID()
	}

	patientURN := URN(patientID)
	practitionerURN := URN(practitionerID)

	patient := buildPatient(patientID, in.Subject, NormalizeAddresses(in.Subject))
	practitioner := buildPractitioner(practitionerID, in.Author)

	var encounter *r4.Encounter
	if in.Meta.VisitText != "" {
		encounter = buildEncounter(GenerateID(), in.Meta.VisitText, patientURN, buildTime)
	}
	var custodian *r4.Organization
	if in.Meta.CustodianName != "" {
		custodian = buildOrganization(GenerateID(), in.Meta.CustodianName)
	}
	var attesterOrg *r4.Organization
	if in.Meta.AttesterOrgName != "" {
		attesterOrg = buildOrganization(GenerateID(), in.Meta.AttesterOrgName)
	}

	observations := make([]*r4.Observation, len(in.Measurements))
	resultRefs := make([]r4.Reference, len(in.Measurements))
	obsURNs := make([]string, len(in.Measurements))
	for i, m := range in.Measurements {
		observations[i] = buildObservation(obsIDs[i], m, patientURN, practitionerURN, authored)
		resultRefs[i] = r4.Reference{Reference: URN(obsIDs[i])}
		obsURNs[i] = URN(obsIDs[i])
	}

	report := buildDiagnosticReport(reportID, in.Meta, patientURN, practitionerURN, resultRefs, authored)

	docRefs := make([]*r4.DocumentReference, len(encoded))
	binaries := make([]*r4.Binary, len(encoded))
	refURNs := make([]string, len(encoded))
	for i, enc := range encoded {
		docRefs[i], binaries[i] = buildDocumentPair(refIDs[i], binIDs[i], enc, patientURN)
		refURNs[i] = URN(refIDs[i])
	}

	refs := compositionRefs{
		Patient:      patientURN,
		Practitioner: practitionerURN,
		Report:       URN(reportID),
		Observations: obsURNs,
		DocumentRefs: refURNs,
	}
	if encounter != nil {
		refs.Encounter = URN(encounter.ID)
	}
	if custodian != nil {
		refs.Custodian = URN(custodian.ID)
	}
	if attesterOrg != nil {
		refs.AttesterOrg = URN(attesterOrg.ID)
	}
	composition := buildComposition(compositionID, in.Meta, refs, authored)

	bundleID := GenerateID()
	container := &r4.Bundle{
		ResourceType: "Bundle",
		Meta:         meta(r4.ProfileDocumentBundle),
		Identifier:   &r4.Identifier{System: r4.SystemLocalRecord, Value: bundleID},
		Type:         "document",
		Timestamp:    buildTime,
	}

	// Entry order is fixed: Composition first, then the remaining resources
	// in builder completion order.
	container.Entry = append(container.Entry,
		entry(compositionID, composition),
		entry(patientID, patient),
		entry(practitionerID, practitioner),
		entry(reportID, report),
	)
	if encounter != nil {
		container.Entry = append(container.Entry, entry(encounter.ID, encounter))
	}
	if custodian != nil {
		container.Entry = append(container.Entry, entry(custodian.ID, custodian))
	}
	if attesterOrg != nil {
		container.Entry = append(container.Entry, entry(attesterOrg.ID, attesterOrg))
	}
	for _, o := range observations {
		container.Entry = append(container.Entry, entry(o.ID, o))
	}
	for _, d := range docRefs {
		container.Entry = append(container.Entry, entry(d.ID, d))
	}
	for _, b := range binaries {
		container.Entry = append(container.Entry, entry(b.ID, b))
	}

	c.logger.Debug("document built",
		zap.String("bundle_id", bundleID),
		zap.String("subject_id", patientID),
		zap.Int("entries", len(container.Entry)),
	)

	return &BuildResult{Bundle: container, BundleID: bundleID, SubjectID: patientID}, nil
}

// encodeAttachments encodes every selected file concurrently, substituting
// the constant placeholder pair when none were supplied.
func (c *Composer) encodeAttachments(ctx context.Context, files []*FileAttachment) ([]EncodedAttachment, error) {
	if len(files) == 0 {
		return []EncodedAttachment{PlaceholderAttachment()}, nil
	}

	tasks := make([]workerpool.Task, len(files))
	for i, f := range files {
		f := f
		tasks[i] = func(ctx context.Context) (any, error) {
			return EncodeAttachment(ctx, f)
		}
	}
	results, err := c.pool.Run(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}

	encoded := make([]EncodedAttachment, len(results))
	for i, r := range results {
		encoded[i] = r.(EncodedAttachment)
	}
	return encoded, nil
}

func entry(id string, resource any) r4.BundleEntry {
	return r4.BundleEntry{FullURL: URN(id), Resource: resource}
}
