package bundle

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func fileOf(name, contentType string, raw []byte) *FileAttachment {
	return &FileAttachment{
		Name:        name,
		ContentType: contentType,
		Open: func(ctx context.Context) ([]byte, error) {
			return raw, nil
		},
	}
}

func TestEncodeAttachmentRawBytes(t *testing.T) {
	got, err := EncodeAttachment(context.Background(), fileOf("report.pdf", "application/pdf", []byte("hello")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data != base64.StdEncoding.EncodeToString([]byte("hello")) {
		t.Errorf("data = %q", got.Data)
	}
	if got.ContentType != "application/pdf" || got.Title != "report.pdf" {
		t.Errorf("metadata = %+v", got)
	}
}

func TestEncodeAttachmentDataURIStripped(t *testing.T) {
	uri := "data:image/png;base64,iVBORw0KGgo="
	got, err := EncodeAttachment(context.Background(), fileOf("scan.png", "image/png", []byte(uri)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data != "iVBORw0KGgo=" {
		t.Errorf("data URI payload not stripped: %q", got.Data)
	}
}

func TestEncodeAttachmentDefaultsContentType(t *testing.T) {
	got, err := EncodeAttachment(context.Background(), fileOf("x", "", []byte("x")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ContentType != PlaceholderContentType {
		t.Errorf("content type = %q", got.ContentType)
	}
}

func TestEncodeAttachmentNilYieldsPlaceholder(t *testing.T) {
	got, err := EncodeAttachment(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != PlaceholderAttachment() {
		t.Errorf("got %+v", got)
	}
}

func TestEncodeAttachmentReadFailure(t *testing.T) {
	boom := errors.New("boom")
	f := &FileAttachment{
		Name: "bad.pdf",
		Open: func(ctx context.Context) ([]byte, error) { return nil, boom },
	}
	_, err := EncodeAttachment(context.Background(), f)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("cause not wrapped: %v", err)
	}
	if !strings.Contains(err.Error(), "bad.pdf") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestPlaceholderIsValidBase64PDF(t *testing.T) {
	a := PlaceholderAttachment()
	raw, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		t.Fatalf("placeholder is not valid base64: %v", err)
	}
	if !strings.HasPrefix(string(raw), "%PDF-") {
		t.Errorf("placeholder does not decode to a PDF header")
	}
	if a.ContentType != "application/pdf" || a.Title != "Laboratory Report" {
		t.Errorf("placeholder metadata = %+v", a)
	}
}
