package handler

import (
	"log/slog"
	"net/http"

	"careconnect/internal/api/middleware"
	"careconnect/internal/app/service"
	"careconnect/internal/common"

	"github.com/go-chi/chi/v5"
)

type VolunteerHandler struct {
	volunteerService *service.VolunteerService
	log              *slog.Logger
}

func NewVolunteerHandler(volunteerService *service.VolunteerService, log *slog.Logger) *VolunteerHandler {
	return &VolunteerHandler{volunteerService: volunteerService, log: log}
}

func (h *VolunteerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.registerVolunteer)
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminOnly)
		admin.Get("/", h.listVolunteers)
		admin.Delete("/{volunteerID}", h.deleteVolunteer)
	})
}

func (h *VolunteerHandler) registerVolunteer(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVolunteerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.volunteerService.Create(r.Context(), req)
	if err != nil {
		h.log.ErrorContext(r.Context(), "volunteer registration failed", "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, v)
}

func (h *VolunteerHandler) listVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := h.volunteerService.List(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list volunteers failed", "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, volunteers)
}

func (h *VolunteerHandler) deleteVolunteer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "volunteerID")
	if err := h.volunteerService.Delete(r.Context(), id); err != nil {
		h.log.ErrorContext(r.Context(), "delete volunteer failed", "volunteer_id", id, "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Volunteer deleted"})
}
