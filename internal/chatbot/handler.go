package chatbot

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/transport"
	"github.com/inspectra/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	Ask(ctx context.Context, actor *auth.User, dto MessageDTO) (*MessageResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// SendMessage handles POST /chatbot/message
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto MessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SendMessage: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Ask(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Error("SendMessage: service error", "error", err, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
