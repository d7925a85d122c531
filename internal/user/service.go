package user

import (
	"log/slog"
	"time"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
	userDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetByID(userID int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByOrgID(orgID string) ([]*userDatamodel.User, error)
	CountByOrgID(orgID string) (int64, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
}

type OrgRepositoryAPI interface {
	GetByID(id string) (*orgDatamodel.Organization, error)
}

type Service struct {
	repo     RepositoryAPI
	orgRepo  OrgRepositoryAPI
	resolver *auth.Resolver
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, orgRepo OrgRepositoryAPI, resolver *auth.Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		orgRepo:  orgRepo,
		resolver: resolver,
		logger:   logger,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, err
	}
	if record == nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return FromDataModel(record), nil
}

// ListByOrg returns the users of one organization. Org admins may only list
// their own organization.
func (s *Service) ListByOrg(actor *auth.User, orgID string) ([]*User, error) {
	if !actor.IsSystemAdmin() && actor.OrgID != orgID {
		s.logger.Warn("list users denied: not own organization", "user_id", actor.ID, "org_id", orgID)
		return nil, internal.ErrUnauthorizedAccess
	}

	records, err := s.repo.GetByOrgID(orgID)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "org_id", orgID)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// Invite creates an inactive user with a one-time invite token, enforcing
// the organization's user quota.
func (s *Service) Invite(actor *auth.User, dto InviteUserDTO) (*InviteResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("invite validation failed", "error", err, "actor_id", actor.ID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.resolver.HasPermission(actor, auth.PermInviteUser) {
		s.logger.Warn("invite denied: insufficient permissions", "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrUnauthorizedAccess
	}
	if !actor.IsSystemAdmin() && actor.OrgID != dto.OrgID {
		s.logger.Warn("invite denied: not own organization", "actor_id", actor.ID, "org_id", dto.OrgID)
		return nil, internal.ErrUnauthorizedAccess
	}

	org, err := s.orgRepo.GetByID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, internal.ErrOrgNotFound
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	count, err := s.repo.CountByOrgID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	if count >= int64(org.MaxUsers) {
		s.logger.Warn("user quota reached", "org_id", dto.OrgID, "count", count, "max", org.MaxUsers)
		return nil, internal.ErrUserQuota
	}

	token, err := auth.GenerateRandomToken()
	if err != nil {
		return nil, internal.NewInternalError("failed to generate invite token", err)
	}

	now := time.Now()
	invited := &User{
		Email:       dto.Email,
		Name:        dto.Name,
		Role:        auth.Role(dto.Role),
		OrgID:       dto.OrgID,
		IsActive:    false,
		InviteToken: &token,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	record := ToDataModel(invited)
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create invited user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user invited",
		"user_id", record.ID,
		"org_id", dto.OrgID,
		"role", dto.Role,
		"invited_by", actor.ID)

	return &InviteResponse{
		UserID:      record.ID,
		Email:       dto.Email,
		InviteToken: token,
	}, nil
}
