package handler

import (
	"net/http"

	"github.com/greenhollow/almanac/internal/command"
	"github.com/greenhollow/almanac/internal/logger"
)

// ExecuteCommandRequest represents the body of the command endpoint
type ExecuteCommandRequest struct {
	Command string `json:"command" validate:"required,max=200"`
}

// ExecuteCommandResponse represents the command outcome
type ExecuteCommandResponse struct {
	Message string `json:"message"`
}

// CommandHandler handles text command HTTP requests
type CommandHandler struct {
	cmdSvc command.Service
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(cmdSvc command.Service) *CommandHandler {
	return &CommandHandler{cmdSvc: cmdSvc}
}

// HandleExecute runs one text command line against the session.
func (h *CommandHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ExecuteCommandRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Execute command"); err != nil {
		return
	}

	message, err := h.cmdSvc.Execute(r.Context(), req.Command)
	if err != nil {
		respondServiceError(w, r, "Execute command", err)
		return
	}

	log.Info("Command executed", "command", req.Command)
	respondJSON(w, http.StatusOK, ExecuteCommandResponse{Message: message})
}
