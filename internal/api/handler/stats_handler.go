package handler

import (
	"log/slog"
	"net/http"

	"careconnect/internal/app/service"
	"careconnect/internal/common"
)

type StatsHandler struct {
	dashboardService *service.DashboardService
	log              *slog.Logger
}

func NewStatsHandler(dashboardService *service.DashboardService, log *slog.Logger) *StatsHandler {
	return &StatsHandler{dashboardService: dashboardService, log: log}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "dashboard stats failed", "error", err)
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
