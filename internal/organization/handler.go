package organization

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/transport"
	"github.com/inspectra/inspection-management/pkg/logger"
)

type ServiceAPI interface {
	ListHierarchy() (*HierarchyResponse, error)
	GetByID(id string) (*Organization, error)
	Create(user *auth.User, dto CreateOrganizationDTO) (*Organization, error)
	Deactivate(user *auth.User, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	hierarchy, err := h.Service.ListHierarchy()
	if err != nil {
		h.Logger.Error("GetHierarchy: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, hierarchy)
}

func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "id")
	if orgID == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid organization ID")
		return
	}

	org, err := h.Service.GetByID(orgID)
	if err != nil {
		h.Logger.Error("GetOrganization: service error", "error", err, "org_id", orgID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, org)
}

func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateOrganization: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateOrganizationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateOrganization: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.Service.Create(user, dto)
	if err != nil {
		h.Logger.Error("CreateOrganization: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateOrganization: organization created",
		"org_id", org.ID,
		"type", org.Type,
		"user_id", user.ID)

	h.WriteJSON(w, http.StatusCreated, org)
}

func (h *Handler) DeactivateOrganization(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orgID := chi.URLParam(r, "id")
	if orgID == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid organization ID")
		return
	}

	if err := h.Service.Deactivate(user, orgID); err != nil {
		h.Logger.Error("DeactivateOrganization: service error", "error", err, "org_id", orgID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
