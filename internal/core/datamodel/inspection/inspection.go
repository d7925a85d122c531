package inspection

import "time"

type Inspection struct {
	ID          int64      `gorm:"primaryKey"`
	OrgID       string     `gorm:"column:org_id;index;not null"`
	TemplateID  int64      `gorm:"column:template_id;not null"`
	InspectorID int64      `gorm:"column:inspector_id;not null"`
	Title       string     `gorm:"column:title;not null"`
	Location    string     `gorm:"column:location"`
	Status      string     `gorm:"column:status;default:draft"`
	ScheduledAt time.Time  `gorm:"column:scheduled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	Score       *float64   `gorm:"column:score"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Items []InspectionItem `gorm:"foreignKey:InspectionID"`
}

func (Inspection) TableName() string {
	return "inspections"
}

type InspectionItem struct {
	ID           int64  `gorm:"primaryKey"`
	InspectionID int64  `gorm:"column:inspection_id;index;not null"`
	ChecklistID  int64  `gorm:"column:checklist_item_id"`
	Text         string `gorm:"column:text;not null"`
	Category     string `gorm:"column:category"`
	Weight       int    `gorm:"column:weight;default:1"`
	Result       string `gorm:"column:result;default:na"`
	Note         string `gorm:"column:note"`
}

func (InspectionItem) TableName() string {
	return "inspection_items"
}
