package handler

import (
	"net/http"

	"careconnect/internal/app/service"
	"careconnect/internal/common"
)

func Chat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := service.Chat(req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
