package actionplan

import "time"

type ActionPlan struct {
	ID           int64      `gorm:"primaryKey"`
	OrgID        string     `gorm:"column:org_id;index;not null"`
	InspectionID *int64     `gorm:"column:inspection_id;index"`
	ItemID       *int64     `gorm:"column:inspection_item_id"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description"`
	AssigneeID   *int64     `gorm:"column:assignee_id"`
	Priority     string     `gorm:"column:priority;default:medium"`
	Status       string     `gorm:"column:status;default:open"`
	DueDate      time.Time  `gorm:"column:due_date"`
	ResolvedAt   *time.Time `gorm:"column:resolved_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (ActionPlan) TableName() string {
	return "action_plans"
}
