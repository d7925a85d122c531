package organization

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
)

type RepositoryAPI interface {
	GetAll() ([]*orgDatamodel.Organization, error)
	GetByID(id string) (*orgDatamodel.Organization, error)
	Create(org *orgDatamodel.Organization) error
	Update(org *orgDatamodel.Organization) error
	Deactivate(id string) error
	CountSubsidiaries(parentID string) (int64, error)
}

type Service struct {
	repo     RepositoryAPI
	resolver *auth.Resolver
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, resolver *auth.Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// ListHierarchy loads every organization and assembles the forest the UI
// renders. The tree is rebuilt on every call; nothing is cached.
func (s *Service) ListHierarchy() (*HierarchyResponse, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load organizations", "error", err)
		return nil, err
	}

	roots, err := BuildHierarchy(FromDataModelSlice(records))
	if err != nil {
		s.logger.Error("organization hierarchy is not a tree", "error", err)
		return nil, internal.NewInternalError("cyclic organization hierarchy detected", err)
	}

	visited := make(map[string]struct{}, len(records))
	nodes, err := toNodeResponses(roots, visited)
	if err != nil {
		s.logger.Error("organization hierarchy is not a tree", "error", err)
		return nil, internal.NewInternalError("cyclic organization hierarchy detected", err)
	}

	s.logger.Info("organization hierarchy built", "organizations", len(records), "roots", len(nodes))
	return &HierarchyResponse{Organizations: nodes}, nil
}

func toNodeResponses(nodes []*Node, visited map[string]struct{}) ([]NodeResponse, error) {
	out := make([]NodeResponse, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := visited[n.ID]; seen {
			return nil, ErrCyclicHierarchy
		}
		visited[n.ID] = struct{}{}

		children, err := toNodeResponses(n.Children, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, NodeResponse{
			ID:         n.ID,
			Name:       n.Name,
			Type:       n.Type,
			Plan:       n.Plan,
			IsActive:   n.IsActive,
			Depth:      n.Depth,
			IsOrphaned: n.IsOrphaned,
			Children:   children,
		})
	}
	return out, nil
}

func (s *Service) GetByID(id string) (*Organization, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get organization", "error", err, "org_id", id)
		return nil, err
	}
	if record == nil {
		return nil, internal.ErrOrgNotFound
	}
	return FromDataModel(record), nil
}

// Create validates type and parent rules, enforces the parent's subsidiary
// quota and writes the new organization.
func (s *Service) Create(user *auth.User, dto CreateOrganizationDTO) (*Organization, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("organization validation failed", "error", err, "user_id", user.ID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	orgType := OrgType(dto.Type)

	if orgType == OrgTypeSubsidiary {
		parent, err := s.repo.GetByID(*dto.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, internal.NewValidationError("parent organization does not exist", internal.ErrCodeInvalidParent)
		}

		if !s.resolver.CanCreateSubsidiary(user, parent.ID) {
			s.logger.Warn("create subsidiary denied",
				"user_id", user.ID,
				"role", user.Role,
				"parent_id", parent.ID)
			return nil, internal.ErrUnauthorizedAccess
		}

		count, err := s.repo.CountSubsidiaries(parent.ID)
		if err != nil {
			return nil, err
		}
		if count >= int64(parent.MaxSubsidiaries) {
			s.logger.Warn("subsidiary quota reached",
				"parent_id", parent.ID,
				"count", count,
				"max", parent.MaxSubsidiaries)
			return nil, internal.ErrSubsidiaryQuota
		}
	} else if !s.resolver.HasPermission(user, auth.PermCreateOrganization) {
		s.logger.Warn("create organization denied", "user_id", user.ID, "role", user.Role)
		return nil, internal.ErrUnauthorizedAccess
	}

	plan := Plan(dto.Plan)
	if dto.Plan == "" {
		plan = PlanBasic
	}

	org := &Organization{
		ID:              uuid.NewString(),
		Name:            dto.Name,
		Type:            orgType,
		ParentID:        dto.ParentID,
		Plan:            plan,
		MaxUsers:        dto.MaxUsers,
		MaxSubsidiaries: dto.MaxSubsidiaries,
		IsActive:        true,
	}

	if err := s.repo.Create(ToDataModel(org)); err != nil {
		s.logger.Error("failed to create organization", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("organization created",
		"org_id", org.ID,
		"type", org.Type,
		"created_by", user.ID)

	return org, nil
}

// Deactivate disables an organization. Org admins may only deactivate their
// own organization; system admins may deactivate any.
func (s *Service) Deactivate(user *auth.User, id string) error {
	if !s.resolver.HasPermission(user, auth.PermManageOrganization) {
		return internal.ErrUnauthorizedAccess
	}
	if !user.IsSystemAdmin() && user.OrgID != id {
		s.logger.Warn("deactivate denied: not own organization", "user_id", user.ID, "org_id", id)
		return internal.ErrUnauthorizedAccess
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return internal.ErrOrgNotFound
	}

	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate organization", "error", err, "org_id", id)
		return err
	}

	s.logger.Info("organization deactivated", "org_id", id, "by_user", user.ID)
	return nil
}
