package service

import (
	"strings"

	"careconnect/internal/app/triage"
	"careconnect/internal/common"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers from the fixed keyword table. Blank messages are rejected.
func Chat(req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, common.ValidationError("message is required")
	}
	return &ChatResponse{Reply: triage.Reply(req.Message)}, nil
}
