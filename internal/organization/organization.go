package organization

import (
	"time"

	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
)

type OrgType string

const (
	OrgTypeMaster     OrgType = "master"
	OrgTypeEnterprise OrgType = "enterprise"
	OrgTypeSubsidiary OrgType = "subsidiary"
)

func (t OrgType) IsValid() bool {
	switch t {
	case OrgTypeMaster, OrgTypeEnterprise, OrgTypeSubsidiary:
		return true
	}
	return false
}

type Plan string

const (
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

func (p Plan) IsValid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

type Organization struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            OrgType   `json:"type"`
	ParentID        *string   `json:"parent_id,omitempty"`
	Plan            Plan      `json:"plan"`
	MaxUsers        int       `json:"max_users"`
	MaxSubsidiaries int       `json:"max_subsidiaries"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (o *Organization) IsRoot() bool {
	return o.ParentID == nil || *o.ParentID == ""
}

func ToDataModel(o *Organization) *orgDatamodel.Organization {
	return &orgDatamodel.Organization{
		ID:              o.ID,
		Name:            o.Name,
		OrgType:         string(o.Type),
		ParentID:        o.ParentID,
		Plan:            string(o.Plan),
		MaxUsers:        o.MaxUsers,
		MaxSubsidiaries: o.MaxSubsidiaries,
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromDataModel(o *orgDatamodel.Organization) *Organization {
	return &Organization{
		ID:              o.ID,
		Name:            o.Name,
		Type:            OrgType(o.OrgType),
		ParentID:        o.ParentID,
		Plan:            Plan(o.Plan),
		MaxUsers:        o.MaxUsers,
		MaxSubsidiaries: o.MaxSubsidiaries,
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromDataModelSlice(orgs []*orgDatamodel.Organization) []Organization {
	result := make([]Organization, len(orgs))
	for i, o := range orgs {
		result[i] = *FromDataModel(o)
	}
	return result
}
