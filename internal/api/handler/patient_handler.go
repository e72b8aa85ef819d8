package handler

import (
	"log/slog"
	"net/http"

	"careconnect/internal/api/middleware"
	"careconnect/internal/app/service"
	"careconnect/internal/common"

	"github.com/go-chi/chi/v5"
)

type PatientHandler struct {
	patientService *service.PatientService
	log            *slog.Logger
}

func NewPatientHandler(patientService *service.PatientService, log *slog.Logger) *PatientHandler {
	return &PatientHandler{patientService: patientService, log: log}
}

// RegisterRoutes expects r to already run the Authenticator; listing and
// deletion additionally require an administrator.
func (h *PatientHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createPatient)
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Get("/", h.listPatients)
		admin.Delete("/{patientID}", h.deletePatient)
	})
}

func (h *PatientHandler) createPatient(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePatientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patient, err := h.patientService.Create(r.Context(), req)
	if err != nil {
		h.log.ErrorContext(r.Context(), "create patient request failed", "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, patient)
}

func (h *PatientHandler) listPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientService.List(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list patient requests failed", "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, patients)
}

func (h *PatientHandler) deletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")
	if err := h.patientService.Delete(r.Context(), id); err != nil {
		h.log.ErrorContext(r.Context(), "delete patient request failed", "patient_id", id, "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Patient deleted"})
}
