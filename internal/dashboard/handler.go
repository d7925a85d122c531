package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/transport"
	"github.com/inspectra/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	GetStats(actor *auth.User, orgID string) (*Stats, error)
	GetReportSummary(actor *auth.User, orgID string) (*ReportSummary, error)
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

// GetStats handles GET /dashboard/stats?org_id=
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orgID := r.URL.Query().Get("org_id")

	stats, err := h.Service.GetStats(actor, orgID)
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err, "org_id", orgID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// GetReportSummary handles GET /reports/summary?org_id=
func (h *Handler) GetReportSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orgID := r.URL.Query().Get("org_id")

	summary, err := h.Service.GetReportSummary(actor, orgID)
	if err != nil {
		h.Logger.Error("GetReportSummary: service error", "error", err, "org_id", orgID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
