package actionplan

import (
	"errors"
	"time"
)

// CreateActionPlanDTO represents the request payload for creating an action plan
type CreateActionPlanDTO struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InspectionID *int64    `json:"inspection_id,omitempty"`
	ItemID       *int64    `json:"inspection_item_id,omitempty"`
	AssigneeID   *int64    `json:"assignee_id,omitempty"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
}

// Validate validates the CreateActionPlanDTO
func (dto CreateActionPlanDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if dto.Priority != "" && !Priority(dto.Priority).IsValid() {
		return errors.New("priority must be one of low, medium, high")
	}
	if dto.DueDate.IsZero() {
		return errors.New("due_date is required")
	}
	return nil
}

// TransitionDTO carries a single status move.
type TransitionDTO struct {
	Status string `json:"status"`
}

func (dto TransitionDTO) Validate() error {
	if !Status(dto.Status).IsValid() {
		return errors.New("status must be one of open, in_progress, resolved, verified")
	}
	return nil
}

type ActionPlansResponse struct {
	ActionPlans []*ActionPlan `json:"action_plans"`
}
