package postgres

import (
	"time"

	"github.com/inspectra/inspection-management/internal/actionplan"
	actionplanDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/actionplan"
	"gorm.io/gorm"
)

type ActionPlanRepository struct {
	db *gorm.DB
}

func NewActionPlanRepository(db *gorm.DB) actionplan.RepositoryAPI {
	return &ActionPlanRepository{db: db}
}

func (r *ActionPlanRepository) GetByID(id int64) (*actionplanDatamodel.ActionPlan, error) {
	var plan actionplanDatamodel.ActionPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *ActionPlanRepository) GetByOrgID(orgID string) ([]*actionplanDatamodel.ActionPlan, error) {
	var plans []*actionplanDatamodel.ActionPlan
	err := r.db.Where("org_id = ?", orgID).
		Order("due_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *ActionPlanRepository) GetOpenPastDue(before time.Time) ([]*actionplanDatamodel.ActionPlan, error) {
	var plans []*actionplanDatamodel.ActionPlan
	err := r.db.Where("status IN ? AND due_date < ?", []string{"open", "in_progress"}, before).
		Order("due_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *ActionPlanRepository) Create(p *actionplanDatamodel.ActionPlan) error {
	return r.db.Create(p).Error
}

func (r *ActionPlanRepository) Update(p *actionplanDatamodel.ActionPlan) error {
	return r.db.Save(p).Error
}
