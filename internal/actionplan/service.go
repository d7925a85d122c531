package actionplan

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	actionplanDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/actionplan"
)

type RepositoryAPI interface {
	GetByID(id int64) (*actionplanDatamodel.ActionPlan, error)
	GetByOrgID(orgID string) ([]*actionplanDatamodel.ActionPlan, error)
	GetOpenPastDue(before time.Time) ([]*actionplanDatamodel.ActionPlan, error)
	Create(p *actionplanDatamodel.ActionPlan) error
	Update(p *actionplanDatamodel.ActionPlan) error
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

// Create opens an action plan in the actor's organization.
func (s *Service) Create(actor *auth.User, dto CreateActionPlanDTO) (*ActionPlan, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermManageActionPlans) {
		s.logger.Warn("action plan creation denied", "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrUnauthorizedAccess
	}

	priority := dto.Priority
	if priority == "" {
		priority = string(PriorityMedium)
	}

	record := &actionplanDatamodel.ActionPlan{
		OrgID:        actor.OrgID,
		InspectionID: dto.InspectionID,
		ItemID:       dto.ItemID,
		Title:        dto.Title,
		Description:  dto.Description,
		AssigneeID:   dto.AssigneeID,
		Priority:     priority,
		Status:       string(StatusOpen),
		DueDate:      dto.DueDate,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create action plan", "error", err, "org_id", actor.OrgID)
		return nil, internal.NewInternalError("failed to create action plan", err)
	}

	s.logger.Info("action plan created", "action_plan_id", record.ID, "org_id", actor.OrgID, "priority", priority)
	return FromDataModel(record), nil
}

// GetByID returns an action plan visible to the actor.
func (s *Service) GetByID(actor *auth.User, id int64) (*ActionPlan, error) {
	record, err := s.loadVisible(actor, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

// ListByOrg returns the actor's organization action plans with the overdue
// flag computed against the current clock.
func (s *Service) ListByOrg(actor *auth.User) ([]*ActionPlan, error) {
	records, err := s.repo.GetByOrgID(actor.OrgID)
	if err != nil {
		s.logger.Error("failed to list action plans", "error", err, "org_id", actor.OrgID)
		return nil, internal.NewInternalError("failed to list action plans", err)
	}

	plans := make([]*ActionPlan, 0, len(records))
	for _, r := range records {
		plans = append(plans, FromDataModel(r))
	}
	return plans, nil
}

// Transition moves an action plan one step along its lifecycle. Illegal
// moves (skipping steps, leaving verified) are rejected with a conflict.
func (s *Service) Transition(actor *auth.User, id int64, dto TransitionDTO) (*ActionPlan, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermManageActionPlans) {
		return nil, internal.ErrUnauthorizedAccess
	}

	record, err := s.loadVisible(actor, id)
	if err != nil {
		return nil, err
	}

	current := Status(record.Status)
	target := Status(dto.Status)
	if !current.CanTransitionTo(target) {
		msg := fmt.Sprintf("cannot transition action plan from %s to %s", current, target)
		s.logger.Warn("illegal action plan transition", "action_plan_id", id, "from", current, "to", target)
		return nil, internal.NewConflictError(msg, internal.ErrCodeInvalidStatus)
	}

	record.Status = string(target)
	switch target {
	case StatusResolved:
		now := time.Now()
		record.ResolvedAt = &now
	case StatusOpen:
		record.ResolvedAt = nil
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update action plan", "error", err, "action_plan_id", id)
		return nil, internal.NewInternalError("failed to update action plan", err)
	}

	s.logger.Info("action plan transitioned", "action_plan_id", id, "from", current, "to", target)
	return FromDataModel(record), nil
}

func (s *Service) loadVisible(actor *auth.User, id int64) (*actionplanDatamodel.ActionPlan, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load action plan", "error", err, "action_plan_id", id)
		return nil, internal.NewInternalError("failed to load action plan", err)
	}
	if record == nil {
		return nil, internal.ErrActionPlanNotFound
	}
	if record.OrgID != actor.OrgID && actor.Role != auth.RoleSystemAdmin {
		return nil, internal.ErrUnauthorizedAccess
	}
	return record, nil
}
