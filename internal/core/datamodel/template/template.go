package template

import "time"

type ChecklistTemplate struct {
	ID        int64     `gorm:"primaryKey"`
	OrgID     string    `gorm:"column:org_id;index;not null"`
	Name      string    `gorm:"column:name;not null"`
	Category  string    `gorm:"column:category"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Items []ChecklistItem `gorm:"foreignKey:TemplateID"`
}

func (ChecklistTemplate) TableName() string {
	return "checklist_templates"
}

type ChecklistItem struct {
	ID         int64  `gorm:"primaryKey"`
	TemplateID int64  `gorm:"column:template_id;index;not null"`
	Text       string `gorm:"column:text;not null"`
	Category   string `gorm:"column:category"`
	Weight     int    `gorm:"column:weight;default:1"`
	Position   int    `gorm:"column:position;default:0"`
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}
