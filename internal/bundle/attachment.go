package bundle

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodedAttachment is the binary content + media type of one document pair.
type EncodedAttachment struct {
	ContentType string
	Data        string // base64
	Title       string
}

// Placeholder emitted when a build carries no files, so that every document
// produces at least one DocumentReference/Binary pair.
const (
	PlaceholderContentType = "application/pdf"
	PlaceholderTitle       = "Laboratory Report"
	placeholderData        = "JVBERi0xLjQKMSAwIG9iago8PCAvVHlwZSAvQ2F0YWxvZyAvUGFnZXMgMiAwIFIgPj4KZW5kb2JqCjIgMCBvYmoKPDwgL1R5cGUgL1BhZ2VzIC9LaWRzIFtdIC9Db3VudCAwID4+CmVuZG9iagp0cmFpbGVyCjw8IC9Sb290IDEgMCBSID4+CiUlRU9GCg=="
)

// PlaceholderAttachment returns the constant payload used when no file is
// supplied.
func PlaceholderAttachment() EncodedAttachment {
	return EncodedAttachment{
		ContentType: PlaceholderContentType,
		Data:        placeholderData,
		Title:       PlaceholderTitle,
	}
}

// EncodeAttachment reads and base64-encodes one file. A nil attachment yields
// the placeholder. Bytes arriving as a data URI are stripped to their base64
// payload rather than re-encoded. A read failure is fatal to the caller's
// build.
func EncodeAttachment(ctx context.Context, f *FileAttachment) (EncodedAttachment, error) {
	if f == nil {
		return PlaceholderAttachment(), nil
	}

	raw, err := f.Open(ctx)
	if err != nil {
		return EncodedAttachment{}, fmt.Errorf("read attachment %q: %w", f.Name, err)
	}

	data := ""
	if s := string(raw); strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			data = s[i+1:]
		} else {
			data = strings.TrimPrefix(s, "data:")
		}
	} else {
		data = base64.StdEncoding.EncodeToString(raw)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = PlaceholderContentType
	}
	return EncodedAttachment{ContentType: contentType, Data: data, Title: f.Name}, nil
}
