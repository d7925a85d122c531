package postgres

import (
	"github.com/inspectra/inspection-management/internal/organization"
	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) organization.RepositoryAPI {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) GetAll() ([]*orgDatamodel.Organization, error) {
	var orgs []*orgDatamodel.Organization
	err := r.db.Order("created_at ASC").Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepository) GetByID(id string) (*orgDatamodel.Organization, error) {
	var org orgDatamodel.Organization
	err := r.db.Where("id = ?", id).First(&org).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Create(org *orgDatamodel.Organization) error {
	return r.db.Create(org).Error
}

func (r *OrganizationRepository) Update(org *orgDatamodel.Organization) error {
	return r.db.Save(org).Error
}

func (r *OrganizationRepository) Deactivate(id string) error {
	return r.db.Model(&orgDatamodel.Organization{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *OrganizationRepository) CountSubsidiaries(parentID string) (int64, error) {
	var count int64
	err := r.db.Model(&orgDatamodel.Organization{}).
		Where("parent_id = ? AND is_active = true", parentID).
		Count(&count).Error
	return count, err
}
