package user

import (
	"errors"

	"github.com/inspectra/inspection-management/internal/auth"
)

// InviteUserDTO represents the request payload for inviting a user into an
// organization. The invited account stays inactive until the invite token
// is redeemed.
type InviteUserDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	OrgID string `json:"org_id"`
}

func (dto InviteUserDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if !auth.Role(dto.Role).IsValid() {
		return errors.New("role must be one of system_admin, org_admin, manager, inspector, client")
	}
	if dto.OrgID == "" {
		return errors.New("org_id is required")
	}
	return nil
}

type InviteResponse struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	InviteToken string `json:"invite_token"`
}

type UsersResponse struct {
	Users []*User `json:"users"`
}
