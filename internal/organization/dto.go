package organization

import (
	"errors"
)

// CreateOrganizationDTO represents the request payload for creating an organization
type CreateOrganizationDTO struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	ParentID        *string `json:"parent_id,omitempty"`
	Plan            string  `json:"plan"`
	MaxUsers        int     `json:"max_users"`
	MaxSubsidiaries int     `json:"max_subsidiaries"`
}

// Validate validates the CreateOrganizationDTO
func (dto CreateOrganizationDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if !OrgType(dto.Type).IsValid() {
		return errors.New("type must be one of master, enterprise, subsidiary")
	}
	if dto.Plan != "" && !Plan(dto.Plan).IsValid() {
		return errors.New("plan must be one of basic, pro, enterprise")
	}
	if dto.MaxUsers < 0 {
		return errors.New("max_users cannot be negative")
	}
	if dto.MaxSubsidiaries < 0 {
		return errors.New("max_subsidiaries cannot be negative")
	}
	if OrgType(dto.Type) == OrgTypeSubsidiary && (dto.ParentID == nil || *dto.ParentID == "") {
		return errors.New("subsidiary organizations require a parent")
	}
	if OrgType(dto.Type) == OrgTypeMaster && dto.ParentID != nil && *dto.ParentID != "" {
		return errors.New("master organizations cannot have a parent")
	}
	return nil
}

// NodeResponse is the nested tree shape returned to the UI.
type NodeResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       OrgType        `json:"type"`
	Plan       Plan           `json:"plan"`
	IsActive   bool           `json:"is_active"`
	Depth      int            `json:"depth"`
	IsOrphaned bool           `json:"is_orphaned"`
	Children   []NodeResponse `json:"children"`
}

type HierarchyResponse struct {
	Organizations []NodeResponse `json:"organizations"`
}
