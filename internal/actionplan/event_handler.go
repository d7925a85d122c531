package actionplan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	actionplanDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/actionplan"
	"github.com/inspectra/inspection-management/internal/core/events"
)

// defaultDueWindow is how long an auto-opened plan gets before it is overdue.
const defaultDueWindow = 14 * 24 * time.Hour

// EventHandler opens action plans for items that failed a completed
// inspection. Registered on the in-process bus at startup.
type EventHandler struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewEventHandler(repo RepositoryAPI, logger *slog.Logger) *EventHandler {
	return &EventHandler{repo: repo, logger: logger}
}

// Register subscribes the handler to inspection.completed.
func (h *EventHandler) Register(bus *events.EventBus) {
	bus.SubscribeInspectionCompleted(h.HandleInspectionCompleted)
}

// HandleInspectionCompleted opens one plan per failed item. Higher-weight
// items get higher priority.
func (h *EventHandler) HandleInspectionCompleted(ctx context.Context, completed *events.InspectionCompletedEvent) error {
	if len(completed.FailedItems) == 0 {
		return nil
	}

	dueDate := time.Now().Add(defaultDueWindow)
	for _, item := range completed.FailedItems {
		itemID := item.ItemID
		inspectionID := completed.InspectionID
		record := &actionplanDatamodel.ActionPlan{
			OrgID:        completed.OrgID,
			InspectionID: &inspectionID,
			ItemID:       &itemID,
			Title:        fmt.Sprintf("Corrective action: %s", item.Text),
			Description:  fmt.Sprintf("Opened automatically for a failed item of inspection #%d", completed.InspectionID),
			Priority:     priorityForWeight(item.Weight),
			Status:       string(StatusOpen),
			DueDate:      dueDate,
		}
		if err := h.repo.Create(record); err != nil {
			h.logger.Error("failed to open action plan for failed item",
				"error", err,
				"inspection_id", completed.InspectionID,
				"item_id", item.ItemID)
			return err
		}
		h.logger.Info("action plan opened for failed item",
			"action_plan_id", record.ID,
			"inspection_id", completed.InspectionID,
			"item_id", item.ItemID,
			"priority", record.Priority)
	}

	return nil
}

func priorityForWeight(weight int) string {
	switch {
	case weight >= 3:
		return string(PriorityHigh)
	case weight == 2:
		return string(PriorityMedium)
	default:
		return string(PriorityLow)
	}
}
