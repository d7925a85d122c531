package inspection

import (
	"context"
	"log/slog"
	"time"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/core/events"
	inspectionDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/inspection"
	templateDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/template"
)

type RepositoryAPI interface {
	GetByID(id int64) (*inspectionDatamodel.Inspection, error)
	GetByOrgID(orgID string) ([]*inspectionDatamodel.Inspection, error)
	Create(i *inspectionDatamodel.Inspection) error
	Update(i *inspectionDatamodel.Inspection) error
	UpdateItems(inspectionID int64, items []inspectionDatamodel.InspectionItem) error
}

type TemplateRepositoryAPI interface {
	GetByID(id int64) (*templateDatamodel.ChecklistTemplate, error)
}

type EventPublisherAPI interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo         RepositoryAPI
	templateRepo TemplateRepositoryAPI
	resolver     *auth.Resolver
	eventBus     EventPublisherAPI
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, templateRepo TemplateRepositoryAPI, resolver *auth.Resolver, eventBus EventPublisherAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		templateRepo: templateRepo,
		resolver:     resolver,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create opens a draft inspection in the actor's organization and copies the
// template's checklist items into it. The copy is a snapshot: editing the
// template afterwards does not touch this inspection.
func (s *Service) Create(actor *auth.User, dto CreateInspectionDTO) (*Inspection, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermCreateInspection) {
		s.logger.Warn("inspection creation denied", "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrUnauthorizedAccess
	}

	tpl, err := s.templateRepo.GetByID(dto.TemplateID)
	if err != nil {
		s.logger.Error("failed to load template", "error", err, "template_id", dto.TemplateID)
		return nil, internal.NewInternalError("failed to load template", err)
	}
	if tpl == nil {
		return nil, internal.ErrTemplateNotFound
	}
	if tpl.OrgID != actor.OrgID && actor.Role != auth.RoleSystemAdmin {
		return nil, internal.ErrUnauthorizedAccess
	}
	if !tpl.IsActive {
		return nil, internal.NewValidationError("template is inactive", internal.ErrCodeValidationFailed)
	}

	record := &inspectionDatamodel.Inspection{
		OrgID:       actor.OrgID,
		TemplateID:  tpl.ID,
		InspectorID: actor.ID,
		Title:       dto.Title,
		Location:    dto.Location,
		Status:      string(StatusDraft),
		ScheduledAt: dto.ScheduledAt,
	}
	for _, item := range tpl.Items {
		record.Items = append(record.Items, inspectionDatamodel.InspectionItem{
			ChecklistID: item.ID,
			Text:        item.Text,
			Category:    item.Category,
			Weight:      item.Weight,
			Result:      string(ResultNA),
		})
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create inspection", "error", err, "org_id", actor.OrgID)
		return nil, internal.NewInternalError("failed to create inspection", err)
	}

	s.logger.Info("inspection created",
		"inspection_id", record.ID,
		"template_id", tpl.ID,
		"org_id", actor.OrgID,
		"items", len(record.Items))
	return FromDataModel(record), nil
}

// GetByID returns an inspection visible to the actor.
func (s *Service) GetByID(actor *auth.User, id int64) (*Inspection, error) {
	record, err := s.loadVisible(actor, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

// ListByOrg returns the actor's organization inspections, newest first.
func (s *Service) ListByOrg(actor *auth.User) ([]*Inspection, error) {
	records, err := s.repo.GetByOrgID(actor.OrgID)
	if err != nil {
		s.logger.Error("failed to list inspections", "error", err, "org_id", actor.OrgID)
		return nil, internal.NewInternalError("failed to list inspections", err)
	}

	inspections := make([]*Inspection, 0, len(records))
	for _, r := range records {
		inspections = append(inspections, FromDataModel(r))
	}
	return inspections, nil
}

// SubmitResults records item outcomes on a draft or in-progress inspection
// and moves a draft to in_progress. Items not named in dto keep their
// previous result, so inspectors can submit in several passes.
func (s *Service) SubmitResults(actor *auth.User, id int64, dto SubmitResultsDTO) (*Inspection, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermCreateInspection) {
		return nil, internal.ErrUnauthorizedAccess
	}

	record, err := s.loadVisible(actor, id)
	if err != nil {
		return nil, err
	}
	if record.Status == string(StatusCompleted) {
		return nil, internal.NewConflictError("inspection is already completed", internal.ErrCodeInvalidStatus)
	}

	byID := make(map[int64]*inspectionDatamodel.InspectionItem, len(record.Items))
	for i := range record.Items {
		byID[record.Items[i].ID] = &record.Items[i]
	}
	for _, res := range dto.Results {
		item, ok := byID[res.ItemID]
		if !ok {
			return nil, internal.NewValidationError("result references an item outside this inspection", internal.ErrCodeInvalidResult)
		}
		item.Result = res.Result
		item.Note = res.Note
	}

	record.Status = string(StatusInProgress)
	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to save inspection results", "error", err, "inspection_id", id)
		return nil, internal.NewInternalError("failed to save inspection results", err)
	}
	if err := s.repo.UpdateItems(record.ID, record.Items); err != nil {
		s.logger.Error("failed to save inspection items", "error", err, "inspection_id", id)
		return nil, internal.NewInternalError("failed to save inspection items", err)
	}

	s.logger.Info("inspection results submitted", "inspection_id", id, "results", len(dto.Results))
	return FromDataModel(record), nil
}

// Complete finalizes an inspection: computes the weighted score, stamps
// CompletedAt and publishes inspection.completed so failed items can spawn
// action plans downstream.
func (s *Service) Complete(ctx context.Context, actor *auth.User, id int64) (*Inspection, error) {
	if !s.resolver.HasPermission(actor, auth.PermCreateInspection) {
		return nil, internal.ErrUnauthorizedAccess
	}

	record, err := s.loadVisible(actor, id)
	if err != nil {
		return nil, err
	}
	if record.Status == string(StatusCompleted) {
		return nil, internal.NewConflictError("inspection is already completed", internal.ErrCodeInvalidStatus)
	}

	domain := FromDataModel(record)
	score, ok := ComputeScore(domain.Items)

	now := time.Now()
	record.Status = string(StatusCompleted)
	record.CompletedAt = &now
	if ok {
		record.Score = &score
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to complete inspection", "error", err, "inspection_id", id)
		return nil, internal.NewInternalError("failed to complete inspection", err)
	}

	var failed []events.FailedItem
	for _, it := range domain.Items {
		if it.Result == ResultFail {
			failed = append(failed, events.FailedItem{
				ItemID: it.ID,
				Text:   it.Text,
				Weight: it.Weight,
			})
		}
	}

	event := events.NewInspectionCompletedEvent(record.ID, record.OrgID, record.InspectorID, record.Score, failed)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		// Completion already persisted; event delivery is best effort.
		s.logger.Error("failed to publish inspection.completed", "error", err, "inspection_id", id)
	}

	s.logger.Info("inspection completed",
		"inspection_id", id,
		"scored", ok,
		"failed_items", len(failed))
	return FromDataModel(record), nil
}

func (s *Service) loadVisible(actor *auth.User, id int64) (*inspectionDatamodel.Inspection, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load inspection", "error", err, "inspection_id", id)
		return nil, internal.NewInternalError("failed to load inspection", err)
	}
	if record == nil {
		return nil, internal.ErrInspectionNotFound
	}
	if record.OrgID != actor.OrgID && actor.Role != auth.RoleSystemAdmin {
		return nil, internal.ErrUnauthorizedAccess
	}
	return record, nil
}
