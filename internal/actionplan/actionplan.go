package actionplan

import (
	"time"

	actionplanDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/actionplan"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusVerified   Status = "verified"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusVerified:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to target is a legal step.
// The forward path is open → in_progress → resolved → verified, one step at
// a time. Reopening is allowed from in_progress and resolved; a verified
// plan is final.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOpen:
		return target == StatusInProgress
	case StatusInProgress:
		return target == StatusResolved || target == StatusOpen
	case StatusResolved:
		return target == StatusVerified || target == StatusOpen
	case StatusVerified:
		return false
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type ActionPlan struct {
	ID           int64      `json:"id"`
	OrgID        string     `json:"org_id"`
	InspectionID *int64     `json:"inspection_id,omitempty"`
	ItemID       *int64     `json:"inspection_item_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	AssigneeID   *int64     `json:"assignee_id,omitempty"`
	Priority     Priority   `json:"priority"`
	Status       Status     `json:"status"`
	DueDate      time.Time  `json:"due_date"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	IsOverdue    bool       `json:"is_overdue"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Overdue reports whether the plan is past due and still unresolved at now.
func (p *ActionPlan) Overdue(now time.Time) bool {
	if p.Status == StatusResolved || p.Status == StatusVerified {
		return false
	}
	return !p.DueDate.IsZero() && p.DueDate.Before(now)
}

func (p *ActionPlan) ToDataModel() *actionplanDatamodel.ActionPlan {
	return &actionplanDatamodel.ActionPlan{
		ID:           p.ID,
		OrgID:        p.OrgID,
		InspectionID: p.InspectionID,
		ItemID:       p.ItemID,
		Title:        p.Title,
		Description:  p.Description,
		AssigneeID:   p.AssigneeID,
		Priority:     string(p.Priority),
		Status:       string(p.Status),
		DueDate:      p.DueDate,
		ResolvedAt:   p.ResolvedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModel(dm *actionplanDatamodel.ActionPlan) *ActionPlan {
	p := &ActionPlan{
		ID:           dm.ID,
		OrgID:        dm.OrgID,
		InspectionID: dm.InspectionID,
		ItemID:       dm.ItemID,
		Title:        dm.Title,
		Description:  dm.Description,
		AssigneeID:   dm.AssigneeID,
		Priority:     Priority(dm.Priority),
		Status:       Status(dm.Status),
		DueDate:      dm.DueDate,
		ResolvedAt:   dm.ResolvedAt,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
	p.IsOverdue = p.Overdue(time.Now())
	return p
}
