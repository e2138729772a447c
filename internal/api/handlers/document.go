// Package handlers provides HTTP handlers for the document API.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hcxlabs/go-labdoc/internal/api/middleware"
	"github.com/hcxlabs/go-labdoc/internal/bundle"
	"github.com/hcxlabs/go-labdoc/internal/events"
	"github.com/hcxlabs/go-labdoc/internal/observability/metrics"
	"github.com/hcxlabs/go-labdoc/internal/storage"
	"github.com/hcxlabs/go-labdoc/internal/submission"
)

// DocumentHandler builds, retains and submits document bundles.
type DocumentHandler struct {
	composer  *bundle.Composer
	submitter *submission.Client
	store     *storage.Store
	audit     *events.Producer
	author    bundle.AuthorIdentity
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewDocumentHandler creates a handler. store and audit may be nil when those
// collaborators are not deployed.
func NewDocumentHandler(
	composer *bundle.Composer,
	submitter *submission.Client,
	store *storage.Store,
	audit *events.Producer,
	author bundle.AuthorIdentity,
	m *metrics.Metrics,
	logger *zap.Logger,
) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentHandler{
		composer:  composer,
		submitter: submitter,
		store:     store,
		audit:     audit,
		author:    author,
		metrics:   m,
		logger:    logger,
	}
}

// Routes returns the handler routes.
func (h *DocumentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Post("/preview", h.Preview)
	r.Get("/{id}", h.Get)
	return r
}

// AttachmentPayload is one file from the picker: raw base64 or a data URI.
type AttachmentPayload struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

// BuildRequest is the request body for building a document.
type BuildRequest struct {
	Patient      map[string]any            `json:"patient"`
	Measurements []bundle.MeasurementInput `json:"measurements"`
	Document     bundle.DocumentMeta       `json:"document"`
	Attachments  []AttachmentPayload       `json:"attachments,omitempty"`
}

// BuildResponse reports the outcome of a build-and-submit.
type BuildResponse struct {
	ID         string `json:"id"`
	SubjectID  string `json:"subjectId"`
	Status     string `json:"status"`
	EntryCount int    `json:"entryCount"`
	Error      string `json:"error,omitempty"`
}

// Create handles POST /documents: validate, build, retain, submit.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := otel.Tracer("document-handler")
	ctx, span := tracer.Start(ctx, "create_document")
	defer span.End()

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.composer.Build(ctx, h.toBuildInput(req))
	if err != nil {
		h.buildError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.DocumentsBuilt.Inc()
		h.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	}
	span.SetAttributes(
		attribute.String("bundle_id", result.BundleID),
		attribute.Int("entries", len(result.Bundle.Entry)),
	)

	raw, err := json.Marshal(result.Bundle)
	if err != nil {
		h.jsonError(w, "failed to encode document", http.StatusInternalServerError)
		return
	}
	if h.store != nil {
		if err := h.store.Insert(ctx, result.BundleID, result.SubjectID, raw); err != nil {
			h.logger.Error("retain failed", zap.Error(err))
			h.jsonError(w, "failed to retain document", http.StatusInternalServerError)
			return
		}
	}
	h.publish(ctx, events.EventDocumentBuilt, result.BundleID, result.SubjectID, "")

	resp := BuildResponse{
		ID:         result.BundleID,
		SubjectID:  result.SubjectID,
		EntryCount: len(result.Bundle.Entry),
	}

	// Submission failure is non-fatal: the container is already retained and
	// reported with a distinct status; nothing is rebuilt or discarded.
	if err := h.submitter.Submit(ctx, result.Bundle, result.SubjectID); err != nil {
		if h.metrics != nil {
			h.metrics.SubmissionsFailed.Inc()
		}
		if h.store != nil {
			if merr := h.store.MarkFailed(ctx, result.BundleID, err.Error()); merr != nil {
				h.logger.Error("mark failed", zap.Error(merr))
			}
		}
		h.publish(ctx, events.EventSubmissionFailed, result.BundleID, result.SubjectID, err.Error())

		resp.Status = "submission_failed"
		resp.Error = err.Error()
		h.writeJSON(w, http.StatusAccepted, resp)
		return
	}

	if h.metrics != nil {
		h.metrics.SubmissionsOK.Inc()
	}
	if h.store != nil {
		if merr := h.store.MarkSubmitted(ctx, result.BundleID); merr != nil {
			h.logger.Error("mark submitted", zap.Error(merr))
		}
	}
	h.publish(ctx, events.EventDocumentSubmitted, result.BundleID, result.SubjectID, "")

	h.logger.Info("document submitted",
		zap.String("bundle_id", result.BundleID),
		zap.String("subject_id", result.SubjectID),
		zap.String("request_id", middleware.GetRequestID(ctx)),
	)

	resp.Status = "submitted"
	h.writeJSON(w, http.StatusCreated, resp)
}

// Preview handles POST /documents/preview: build only, return the container.
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.composer.Build(r.Context(), h.toBuildInput(req))
	if err != nil {
		h.buildError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result.Bundle)
}

// Get handles GET /documents/{id}: load a retained submission record.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.jsonError(w, "document retention is not enabled", http.StatusNotFound)
		return
	}
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":        rec.ID,
		"subjectId": rec.SubjectID,
		"status":    rec.Status,
		"attempts":  rec.Attempts,
		"lastError": rec.LastError,
		"container": json.RawMessage(rec.Container),
	})
}

func (h *DocumentHandler) toBuildInput(req BuildRequest) bundle.BuildInput {
	attachments := make([]*bundle.FileAttachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		a := a
		attachments = append(attachments, &bundle.FileAttachment{
			Name:        a.Name,
			ContentType: a.ContentType,
			Open: func(ctx context.Context) ([]byte, error) {
				return decodePayload(a.Data)
			},
		})
	}
	return bundle.BuildInput{
		Subject:      bundle.SubjectRecord(req.Patient),
		Author:       h.author,
		Measurements: req.Measurements,
		Meta:         req.Document,
		Attachments:  attachments,
	}
}

// decodePayload recovers the raw bytes of an attachment. Data URIs pass
// through unchanged (the encoder strips them); anything else is tried as
// base64 and falls back to raw text bytes.
func decodePayload(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		return []byte(data), nil
	}
	if raw, err := base64.StdEncoding.DecodeString(data); err == nil {
		return raw, nil
	}
	return []byte(data), nil
}

func (h *DocumentHandler) buildError(w http.ResponseWriter, err error) {
	var verr *bundle.ValidationError
	if errors.As(err, &verr) {
		if h.metrics != nil {
			h.metrics.ValidationFailures.Inc()
		}
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"errors": verr.Violations,
		})
		return
	}
	if h.metrics != nil {
		h.metrics.BuildFailures.Inc()
	}
	h.logger.Error("build failed", zap.Error(err))
	h.jsonError(w, "failed to build document", http.StatusInternalServerError)
}

func (h *DocumentHandler) publish(ctx context.Context, eventType, bundleID, subjectID, detail string) {
	if h.audit == nil {
		return
	}
	h.audit.Publish(ctx, eventType, bundleID, subjectID, detail)
	if h.metrics != nil {
		h.metrics.AuditEventsEmitted.Inc()
	}
}

func (h *DocumentHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *DocumentHandler) jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
