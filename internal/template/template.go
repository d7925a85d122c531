package template

import (
	"time"

	templateDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/template"
)

// ChecklistTemplate is a reusable inspection checklist owned by an
// organization. Items are ordered by Position and copied into inspections
// at creation time, so later edits never rewrite inspection history.
type ChecklistTemplate struct {
	ID        int64           `json:"id"`
	OrgID     string          `json:"org_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	IsActive  bool            `json:"is_active"`
	Items     []ChecklistItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ChecklistItem struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Weight   int    `json:"weight"`
	Position int    `json:"position"`
}

func (t *ChecklistTemplate) ToDataModel() *templateDatamodel.ChecklistTemplate {
	items := make([]templateDatamodel.ChecklistItem, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, templateDatamodel.ChecklistItem{
			ID:         it.ID,
			TemplateID: t.ID,
			Text:       it.Text,
			Category:   it.Category,
			Weight:     it.Weight,
			Position:   it.Position,
		})
	}
	return &templateDatamodel.ChecklistTemplate{
		ID:        t.ID,
		OrgID:     t.OrgID,
		Name:      t.Name,
		Category:  t.Category,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Items:     items,
	}
}

func FromDataModel(dm *templateDatamodel.ChecklistTemplate) *ChecklistTemplate {
	items := make([]ChecklistItem, 0, len(dm.Items))
	for _, it := range dm.Items {
		items = append(items, ChecklistItem{
			ID:       it.ID,
			Text:     it.Text,
			Category: it.Category,
			Weight:   it.Weight,
			Position: it.Position,
		})
	}
	return &ChecklistTemplate{
		ID:        dm.ID,
		OrgID:     dm.OrgID,
		Name:      dm.Name,
		Category:  dm.Category,
		IsActive:  dm.IsActive,
		Items:     items,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}
