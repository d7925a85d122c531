package template

import (
	"log/slog"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	templateDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/template"
)

type RepositoryAPI interface {
	GetByID(id int64) (*templateDatamodel.ChecklistTemplate, error)
	GetByOrgID(orgID string) ([]*templateDatamodel.ChecklistTemplate, error)
	Create(t *templateDatamodel.ChecklistTemplate) error
	Update(t *templateDatamodel.ChecklistTemplate) error
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

// Create builds a checklist template in the actor's organization. Item
// positions follow the order of the request payload.
func (s *Service) Create(actor *auth.User, dto CreateTemplateDTO) (*ChecklistTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermManageOrganization) {
		s.logger.Warn("template creation denied", "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrUnauthorizedAccess
	}

	record := &templateDatamodel.ChecklistTemplate{
		OrgID:    actor.OrgID,
		Name:     dto.Name,
		Category: dto.Category,
		IsActive: true,
	}
	for i, item := range dto.Items {
		weight := item.Weight
		if weight == 0 {
			weight = 1
		}
		record.Items = append(record.Items, templateDatamodel.ChecklistItem{
			Text:     item.Text,
			Category: item.Category,
			Weight:   weight,
			Position: i,
		})
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create template", "error", err, "org_id", actor.OrgID)
		return nil, internal.NewInternalError("failed to create template", err)
	}

	s.logger.Info("template created", "template_id", record.ID, "org_id", actor.OrgID, "items", len(record.Items))
	return FromDataModel(record), nil
}

// GetByID returns a template visible to the actor's organization.
func (s *Service) GetByID(actor *auth.User, id int64) (*ChecklistTemplate, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load template", "error", err, "template_id", id)
		return nil, internal.NewInternalError("failed to load template", err)
	}
	if record == nil {
		return nil, internal.ErrTemplateNotFound
	}
	if record.OrgID != actor.OrgID && actor.Role != auth.RoleSystemAdmin {
		return nil, internal.ErrUnauthorizedAccess
	}
	return FromDataModel(record), nil
}

// ListByOrg returns the actor's organization templates, active first.
func (s *Service) ListByOrg(actor *auth.User) ([]*ChecklistTemplate, error) {
	records, err := s.repo.GetByOrgID(actor.OrgID)
	if err != nil {
		s.logger.Error("failed to list templates", "error", err, "org_id", actor.OrgID)
		return nil, internal.NewInternalError("failed to list templates", err)
	}

	templates := make([]*ChecklistTemplate, 0, len(records))
	for _, r := range records {
		templates = append(templates, FromDataModel(r))
	}
	return templates, nil
}

// Update mutates template metadata only. Items are immutable once the
// template exists; inspections snapshot them anyway.
func (s *Service) Update(actor *auth.User, id int64, dto UpdateTemplateDTO) (*ChecklistTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermManageOrganization) {
		return nil, internal.ErrUnauthorizedAccess
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load template", "error", err, "template_id", id)
		return nil, internal.NewInternalError("failed to load template", err)
	}
	if record == nil {
		return nil, internal.ErrTemplateNotFound
	}
	if record.OrgID != actor.OrgID && actor.Role != auth.RoleSystemAdmin {
		return nil, internal.ErrUnauthorizedAccess
	}

	if dto.Name != nil {
		record.Name = *dto.Name
	}
	if dto.Category != nil {
		record.Category = *dto.Category
	}
	if dto.IsActive != nil {
		record.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update template", "error", err, "template_id", id)
		return nil, internal.NewInternalError("failed to update template", err)
	}

	s.logger.Info("template updated", "template_id", id)
	return FromDataModel(record), nil
}
