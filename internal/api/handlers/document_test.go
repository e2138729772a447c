package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hcxlabs/go-labdoc/internal/bundle"
	"github.com/hcxlabs/go-labdoc/internal/submission"
)

func testHandler(t *testing.T, submissionStatus int) *DocumentHandler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(submissionStatus)
	}))
	t.Cleanup(srv.Close)

	author := bundle.AuthorIdentity{
		ID:      "9e3023cd-12a5-4e52-9b22-1fa300d5a213",
		Display: "Dr. Mehta",
		License: "MH-123",
	}
	return NewDocumentHandler(
		bundle.NewComposer(2, nil),
		submission.NewClient(srv.URL, nil, nil),
		nil, // no retention in unit tests
		nil, // no audit trail in unit tests
		author,
		nil,
		nil,
	)
}

func buildBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(BuildRequest{
		Patient: map[string]any{"name": "Asha Rao"},
		Measurements: []bundle.MeasurementInput{
			{Code: "HGB", Value: "13.2", Unit: "g/dL"},
		},
		Document: bundle.DocumentMeta{Status: "final", Title: "CBC Report", TestCode: "CBC"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(body)
}

func TestCreateSubmitted(t *testing.T) {
	h := testHandler(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/", buildBody(t))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp BuildResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "submitted" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.EntryCount != 7 {
		t.Errorf("entryCount = %d", resp.EntryCount)
	}
	if !bundle.ValidateID(resp.ID) || !bundle.ValidateID(resp.SubjectID) {
		t.Errorf("ids = %q, %q", resp.ID, resp.SubjectID)
	}
}

func TestCreateSubmissionFailureIsAccepted(t *testing.T) {
	h := testHandler(t, http.StatusInternalServerError)

	req := httptest.NewRequest(http.MethodPost, "/", buildBody(t))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp BuildResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "submission_failed" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Error == "" {
		t.Error("error detail missing")
	}
	// The document itself was built fine.
	if resp.EntryCount != 7 || resp.ID == "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCreateValidationFailure(t *testing.T) {
	h := testHandler(t, http.StatusOK)

	body, _ := json.Marshal(BuildRequest{})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) == 0 {
		t.Error("violations not listed")
	}
}

func TestCreateBadBody(t *testing.T) {
	h := testHandler(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPreviewReturnsContainer(t *testing.T) {
	h := testHandler(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/preview", buildBody(t))
	rec := httptest.NewRecorder()
	h.Preview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var container map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &container); err != nil {
		t.Fatal(err)
	}
	if container["resourceType"] != "Bundle" || container["type"] != "document" {
		t.Errorf("container = %v", container)
	}
	entries, ok := container["entry"].([]any)
	if !ok || len(entries) != 7 {
		t.Errorf("entries = %v", container["entry"])
	}
}

func TestDecodePayload(t *testing.T) {
	// Data URIs are handed through for the encoder to strip.
	uri := "data:application/pdf;base64,JVBERi0="
	if got, _ := decodePayload(uri); string(got) != uri {
		t.Errorf("data URI mangled: %q", got)
	}
	// Plain base64 is decoded to raw bytes.
	if got, _ := decodePayload("aGVsbG8="); string(got) != "hello" {
		t.Errorf("base64 = %q", got)
	}
	// Anything else is raw text.
	if got, _ := decodePayload("not base64!!"); string(got) != "not base64!!" {
		t.Errorf("raw = %q", got)
	}
}
