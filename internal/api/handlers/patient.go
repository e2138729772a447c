package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hcxlabs/go-labdoc/internal/patientsource"
)

// PatientHandler exposes the patient records available for selection.
type PatientHandler struct {
	source patientsource.Source
	logger *zap.Logger
}

// NewPatientHandler creates a handler over the given source.
func NewPatientHandler(source patientsource.Source, logger *zap.Logger) *PatientHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatientHandler{source: source, logger: logger}
}

// Routes returns the handler routes.
func (h *PatientHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List handles GET /patients.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.source.List(r.Context())
	if err != nil {
		h.logger.Error("list patients failed", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to list patients"})
		return
	}
	if records == nil {
		records = []patientsource.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"patients": records,
		"count":    len(records),
	})
}
