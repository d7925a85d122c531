package organization

import "time"

type Organization struct {
	ID              string    `gorm:"primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	OrgType         string    `gorm:"column:org_type;not null"`
	ParentID        *string   `gorm:"column:parent_id"`
	Plan            string    `gorm:"column:plan;default:basic"`
	MaxUsers        int       `gorm:"column:max_users;default:10"`
	MaxSubsidiaries int       `gorm:"column:max_subsidiaries;default:5"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Organization) TableName() string {
	return "organizations"
}
