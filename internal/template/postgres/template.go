package postgres

import (
	templateDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/template"
	"github.com/inspectra/inspection-management/internal/template"
	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) template.RepositoryAPI {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) GetByID(id int64) (*templateDatamodel.ChecklistTemplate, error) {
	var t templateDatamodel.ChecklistTemplate
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) GetByOrgID(orgID string) ([]*templateDatamodel.ChecklistTemplate, error) {
	var templates []*templateDatamodel.ChecklistTemplate
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("org_id = ?", orgID).
		Order("is_active DESC, created_at DESC").
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) Create(t *templateDatamodel.ChecklistTemplate) error {
	return r.db.Create(t).Error
}

func (r *TemplateRepository) Update(t *templateDatamodel.ChecklistTemplate) error {
	return r.db.Omit("Items").Save(t).Error
}
