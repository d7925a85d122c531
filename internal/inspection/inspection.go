package inspection

import (
	"time"

	inspectionDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/inspection"
)

// Status is the inspection lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Result is the outcome recorded for a single checklist item.
type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
	ResultNA   Result = "na"
)

func (r Result) IsValid() bool {
	switch r {
	case ResultPass, ResultFail, ResultNA:
		return true
	}
	return false
}

type Inspection struct {
	ID          int64      `json:"id"`
	OrgID       string     `json:"org_id"`
	TemplateID  int64      `json:"template_id"`
	InspectorID int64      `json:"inspector_id"`
	Title       string     `json:"title"`
	Location    string     `json:"location,omitempty"`
	Status      Status     `json:"status"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	Items       []Item     `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Item is an inspection checklist entry. Text, Category and Weight are
// snapshots taken from the template at creation; they never track later
// template edits.
type Item struct {
	ID          int64  `json:"id"`
	ChecklistID int64  `json:"checklist_item_id"`
	Text        string `json:"text"`
	Category    string `json:"category,omitempty"`
	Weight      int    `json:"weight"`
	Result      Result `json:"result"`
	Note        string `json:"note,omitempty"`
}

// ComputeScore returns the weighted pass rate in percent. Items marked na
// are excluded; the second return is false when every item is na, in which
// case no score is defined.
func ComputeScore(items []Item) (float64, bool) {
	var passWeight, totalWeight int
	for _, it := range items {
		switch it.Result {
		case ResultPass:
			passWeight += it.Weight
			totalWeight += it.Weight
		case ResultFail:
			totalWeight += it.Weight
		}
	}
	if totalWeight == 0 {
		return 0, false
	}
	return float64(passWeight) / float64(totalWeight) * 100, true
}

func (i *Inspection) ToDataModel() *inspectionDatamodel.Inspection {
	items := make([]inspectionDatamodel.InspectionItem, 0, len(i.Items))
	for _, it := range i.Items {
		items = append(items, inspectionDatamodel.InspectionItem{
			ID:           it.ID,
			InspectionID: i.ID,
			ChecklistID:  it.ChecklistID,
			Text:         it.Text,
			Category:     it.Category,
			Weight:       it.Weight,
			Result:       string(it.Result),
			Note:         it.Note,
		})
	}
	return &inspectionDatamodel.Inspection{
		ID:          i.ID,
		OrgID:       i.OrgID,
		TemplateID:  i.TemplateID,
		InspectorID: i.InspectorID,
		Title:       i.Title,
		Location:    i.Location,
		Status:      string(i.Status),
		ScheduledAt: i.ScheduledAt,
		CompletedAt: i.CompletedAt,
		Score:       i.Score,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		Items:       items,
	}
}

func FromDataModel(dm *inspectionDatamodel.Inspection) *Inspection {
	items := make([]Item, 0, len(dm.Items))
	for _, it := range dm.Items {
		items = append(items, Item{
			ID:          it.ID,
			ChecklistID: it.ChecklistID,
			Text:        it.Text,
			Category:    it.Category,
			Weight:      it.Weight,
			Result:      Result(it.Result),
			Note:        it.Note,
		})
	}
	return &Inspection{
		ID:          dm.ID,
		OrgID:       dm.OrgID,
		TemplateID:  dm.TemplateID,
		InspectorID: dm.InspectorID,
		Title:       dm.Title,
		Location:    dm.Location,
		Status:      Status(dm.Status),
		ScheduledAt: dm.ScheduledAt,
		CompletedAt: dm.CompletedAt,
		Score:       dm.Score,
		Items:       items,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
}
