package postgres

import (
	inspectionDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/inspection"
	"github.com/inspectra/inspection-management/internal/inspection"
	"gorm.io/gorm"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) inspection.RepositoryAPI {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) GetByID(id int64) (*inspectionDatamodel.Inspection, error) {
	var insp inspectionDatamodel.Inspection
	err := r.db.Preload("Items").Where("id = ?", id).First(&insp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &insp, nil
}

func (r *InspectionRepository) GetByOrgID(orgID string) ([]*inspectionDatamodel.Inspection, error) {
	var inspections []*inspectionDatamodel.Inspection
	err := r.db.Preload("Items").
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&inspections).Error
	return inspections, err
}

func (r *InspectionRepository) Create(i *inspectionDatamodel.Inspection) error {
	return r.db.Create(i).Error
}

func (r *InspectionRepository) Update(i *inspectionDatamodel.Inspection) error {
	return r.db.Omit("Items").Save(i).Error
}

func (r *InspectionRepository) UpdateItems(inspectionID int64, items []inspectionDatamodel.InspectionItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			items[i].InspectionID = inspectionID
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
