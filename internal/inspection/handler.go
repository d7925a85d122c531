package inspection

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/transport"
	"github.com/inspectra/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	Create(actor *auth.User, dto CreateInspectionDTO) (*Inspection, error)
	GetByID(actor *auth.User, id int64) (*Inspection, error)
	ListByOrg(actor *auth.User) ([]*Inspection, error)
	SubmitResults(actor *auth.User, id int64, dto SubmitResultsDTO) (*Inspection, error)
	Complete(ctx context.Context, actor *auth.User, id int64) (*Inspection, error)
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

// CreateInspection handles POST /inspections
func (h *Handler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateInspectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateInspection: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insp, err := h.Service.Create(actor, dto)
	if err != nil {
		h.Logger.Error("CreateInspection: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, insp)
}

// GetInspection handles GET /inspections/{id}
func (h *Handler) GetInspection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	insp, err := h.Service.GetByID(actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, insp)
}

// ListInspections handles GET /inspections
func (h *Handler) ListInspections(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	inspections, err := h.Service.ListByOrg(actor)
	if err != nil {
		h.Logger.Error("ListInspections: service error", "error", err, "org_id", actor.OrgID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, InspectionsResponse{Inspections: inspections})
}

// SubmitResults handles POST /inspections/{id}/results
func (h *Handler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	var dto SubmitResultsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitResults: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	insp, err := h.Service.SubmitResults(actor, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, insp)
}

// CompleteInspection handles POST /inspections/{id}/complete
func (h *Handler) CompleteInspection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	insp, err := h.Service.Complete(r.Context(), actor, id)
	if err != nil {
		h.Logger.Error("CompleteInspection: service error", "error", err, "inspection_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, insp)
}
