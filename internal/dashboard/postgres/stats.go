package postgres

import (
	"time"

	actionplanDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/actionplan"
	inspectionDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/inspection"
	"github.com/inspectra/inspection-management/internal/dashboard"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) dashboard.StatsRepositoryAPI {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) InspectionCountsByStatus(orgIDs []string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&inspectionDatamodel.Inspection{}).
		Select("status, COUNT(*) AS count").
		Where("org_id IN ?", orgIDs).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *StatsRepository) AverageScore(orgIDs []string) (*float64, error) {
	var avg *float64
	err := r.db.Model(&inspectionDatamodel.Inspection{}).
		Select("AVG(score)").
		Where("org_id IN ? AND status = ? AND score IS NOT NULL", orgIDs, "completed").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *StatsRepository) CompletedAboveScore(orgIDs []string, threshold float64) (int64, error) {
	var count int64
	err := r.db.Model(&inspectionDatamodel.Inspection{}).
		Where("org_id IN ? AND status = ? AND score >= ?", orgIDs, "completed", threshold).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) OpenActionPlanCount(orgIDs []string) (int64, error) {
	var count int64
	err := r.db.Model(&actionplanDatamodel.ActionPlan{}).
		Where("org_id IN ? AND status IN ?", orgIDs, []string{"open", "in_progress"}).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) OverdueActionPlanCount(orgIDs []string, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&actionplanDatamodel.ActionPlan{}).
		Where("org_id IN ? AND status IN ? AND due_date < ?", orgIDs, []string{"open", "in_progress"}, now).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) OrgRows(orgIDs []string) ([]dashboard.OrgRow, error) {
	var rows []dashboard.OrgRow
	err := r.db.Table("organizations AS o").
		Select(`o.id AS org_id,
			o.name AS org_name,
			COUNT(DISTINCT i.id) AS inspections,
			COUNT(DISTINCT CASE WHEN i.status = 'completed' THEN i.id END) AS completed_count,
			AVG(CASE WHEN i.status = 'completed' THEN i.score END) AS average_score,
			COUNT(DISTINCT CASE WHEN p.status IN ('open', 'in_progress') THEN p.id END) AS open_action_plans`).
		Joins("LEFT JOIN inspections i ON i.org_id = o.id").
		Joins("LEFT JOIN action_plans p ON p.org_id = o.id").
		Where("o.id IN ?", orgIDs).
		Group("o.id, o.name").
		Order("o.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
