package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeInspectionCompleted = "inspection.completed"
	EventTypeActionPlanOverdue   = "actionplan.overdue"
)

// FailedItem carries the snapshot of a checklist item that failed during an
// inspection, enough for downstream consumers to open an action plan.
type FailedItem struct {
	ItemID int64  `json:"item_id"`
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

type InspectionCompletedEvent struct {
	BaseEvent
	InspectionID int64  `json:"inspection_id"`
	OrgID        string `json:"org_id"`
	InspectorID  int64  `json:"inspector_id"`
	// Score is nil when every item was marked not-applicable, so consumers
	// can tell an unscored inspection from one that scored zero.
	Score       *float64     `json:"score,omitempty"`
	FailedItems []FailedItem `json:"failed_items"`
}

func NewInspectionCompletedEvent(inspectionID int64, orgID string, inspectorID int64, score *float64, failedItems []FailedItem) *InspectionCompletedEvent {
	data := map[string]interface{}{
		"inspection_id": inspectionID,
		"org_id":        orgID,
		"inspector_id":  inspectorID,
		"failed_items":  len(failedItems),
	}
	if score != nil {
		data["score"] = *score
	}
	return &InspectionCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInspectionCompleted,
			Timestamp: time.Now(),
			Data:      data,
		},
		InspectionID: inspectionID,
		OrgID:        orgID,
		InspectorID:  inspectorID,
		Score:        score,
		FailedItems:  failedItems,
	}
}

// SubscribeInspectionCompleted attaches a typed handler for
// inspection.completed, sparing consumers the Event assertion.
func (eb *EventBus) SubscribeInspectionCompleted(h func(ctx context.Context, event *InspectionCompletedEvent) error) {
	eb.Subscribe(EventTypeInspectionCompleted, func(ctx context.Context, event Event) error {
		completed, ok := event.(*InspectionCompletedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event, EventTypeInspectionCompleted)
		}
		return h(ctx, completed)
	})
}

type ActionPlanOverdueEvent struct {
	BaseEvent
	ActionPlanID int64     `json:"action_plan_id"`
	OrgID        string    `json:"org_id"`
	AssigneeID   *int64    `json:"assignee_id,omitempty"`
	DueDate      time.Time `json:"due_date"`
}

func NewActionPlanOverdueEvent(actionPlanID int64, orgID string, assigneeID *int64, dueDate time.Time) *ActionPlanOverdueEvent {
	return &ActionPlanOverdueEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeActionPlanOverdue,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"action_plan_id": actionPlanID,
				"org_id":         orgID,
				"due_date":       dueDate,
			},
		},
		ActionPlanID: actionPlanID,
		OrgID:        orgID,
		AssigneeID:   assigneeID,
		DueDate:      dueDate,
	}
}

// SubscribeActionPlanOverdue attaches a typed handler for actionplan.overdue.
func (eb *EventBus) SubscribeActionPlanOverdue(h func(ctx context.Context, event *ActionPlanOverdueEvent) error) {
	eb.Subscribe(EventTypeActionPlanOverdue, func(ctx context.Context, event Event) error {
		overdue, ok := event.(*ActionPlanOverdueEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event, EventTypeActionPlanOverdue)
		}
		return h(ctx, overdue)
	})
}
