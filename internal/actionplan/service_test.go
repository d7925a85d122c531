package actionplan

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	actionplanDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/actionplan"
	"github.com/inspectra/inspection-management/internal/core/events"
)

func f64(v float64) *float64 { return &v }

func TestActionPlan(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "ActionPlan Module Suite")
}

type mockActionPlanRepository struct {
	plans  map[int64]*actionplanDatamodel.ActionPlan
	nextID int64
}

func newMockActionPlanRepository() *mockActionPlanRepository {
	return &mockActionPlanRepository{plans: map[int64]*actionplanDatamodel.ActionPlan{}, nextID: 1}
}

func (m *mockActionPlanRepository) GetByID(id int64) (*actionplanDatamodel.ActionPlan, error) {
	return m.plans[id], nil
}

func (m *mockActionPlanRepository) GetByOrgID(orgID string) ([]*actionplanDatamodel.ActionPlan, error) {
	var out []*actionplanDatamodel.ActionPlan
	for _, p := range m.plans {
		if p.OrgID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockActionPlanRepository) GetOpenPastDue(before time.Time) ([]*actionplanDatamodel.ActionPlan, error) {
	var out []*actionplanDatamodel.ActionPlan
	for _, p := range m.plans {
		if (p.Status == "open" || p.Status == "in_progress") && p.DueDate.Before(before) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockActionPlanRepository) Create(p *actionplanDatamodel.ActionPlan) error {
	p.ID = m.nextID
	m.nextID++
	m.plans[p.ID] = p
	return nil
}

func (m *mockActionPlanRepository) Update(p *actionplanDatamodel.ActionPlan) error {
	m.plans[p.ID] = p
	return nil
}

var _ = ginkgo.Describe("Status state machine", func() {
	ginkgo.It("should allow the forward path one step at a time", func() {
		gomega.Expect(StatusOpen.CanTransitionTo(StatusInProgress)).To(gomega.BeTrue())
		gomega.Expect(StatusInProgress.CanTransitionTo(StatusResolved)).To(gomega.BeTrue())
		gomega.Expect(StatusResolved.CanTransitionTo(StatusVerified)).To(gomega.BeTrue())
	})

	ginkgo.It("should forbid skipping steps", func() {
		gomega.Expect(StatusOpen.CanTransitionTo(StatusResolved)).To(gomega.BeFalse())
		gomega.Expect(StatusOpen.CanTransitionTo(StatusVerified)).To(gomega.BeFalse())
		gomega.Expect(StatusInProgress.CanTransitionTo(StatusVerified)).To(gomega.BeFalse())
	})

	ginkgo.It("should allow reopening before verification", func() {
		gomega.Expect(StatusInProgress.CanTransitionTo(StatusOpen)).To(gomega.BeTrue())
		gomega.Expect(StatusResolved.CanTransitionTo(StatusOpen)).To(gomega.BeTrue())
	})

	ginkgo.It("should treat verified as final", func() {
		for _, target := range []Status{StatusOpen, StatusInProgress, StatusResolved, StatusVerified} {
			gomega.Expect(StatusVerified.CanTransitionTo(target)).To(gomega.BeFalse())
		}
	})
})

var _ = ginkgo.Describe("ActionPlanService", func() {
	var (
		service *Service
		repo    *mockActionPlanRepository
		manager *auth.User
		client  *auth.User
	)

	ginkgo.BeforeEach(func() {
		repo = newMockActionPlanRepository()
		manager = &auth.User{ID: 5, Email: "manager@example.com", Role: auth.RoleManager, OrgID: "org-1", IsActive: true}
		client = &auth.User{ID: 6, Email: "client@example.com", Role: auth.RoleClient, OrgID: "org-1", IsActive: true}
		service = NewService(repo, auth.NewResolver(), slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should open a plan with medium priority by default", func() {
			// Given
			dto := CreateActionPlanDTO{
				Title:   "Replace extinguisher",
				DueDate: time.Now().Add(7 * 24 * time.Hour),
			}

			// When
			plan, err := service.Create(manager, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plan.Status).To(gomega.Equal(StatusOpen))
			gomega.Expect(plan.Priority).To(gomega.Equal(PriorityMedium))
			gomega.Expect(plan.IsOverdue).To(gomega.BeFalse())
		})

		ginkgo.It("should deny clients", func() {
			dto := CreateActionPlanDTO{
				Title:   "Nope",
				DueDate: time.Now().Add(time.Hour),
			}

			_, err := service.Create(client, dto)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
		})
	})

	ginkgo.Describe("Transition", func() {
		var planID int64

		ginkgo.BeforeEach(func() {
			plan, err := service.Create(manager, CreateActionPlanDTO{
				Title:   "Replace extinguisher",
				DueDate: time.Now().Add(7 * 24 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			planID = plan.ID
		})

		ginkgo.It("should walk the full lifecycle", func() {
			for _, next := range []string{"in_progress", "resolved", "verified"} {
				plan, err := service.Transition(manager, planID, TransitionDTO{Status: next})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(string(plan.Status)).To(gomega.Equal(next))
			}
		})

		ginkgo.It("should stamp ResolvedAt on resolve and clear it on reopen", func() {
			_, err := service.Transition(manager, planID, TransitionDTO{Status: "in_progress"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			plan, err := service.Transition(manager, planID, TransitionDTO{Status: "resolved"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plan.ResolvedAt).ToNot(gomega.BeNil())

			plan, err = service.Transition(manager, planID, TransitionDTO{Status: "open"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plan.ResolvedAt).To(gomega.BeNil())
		})

		ginkgo.It("should reject an illegal jump", func() {
			_, err := service.Transition(manager, planID, TransitionDTO{Status: "verified"})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject transitions on a verified plan", func() {
			for _, next := range []string{"in_progress", "resolved", "verified"} {
				_, err := service.Transition(manager, planID, TransitionDTO{Status: next})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			}

			_, err := service.Transition(manager, planID, TransitionDTO{Status: "open"})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ListByOrg", func() {
		ginkgo.It("should flag plans past their due date as overdue", func() {
			_, err := service.Create(manager, CreateActionPlanDTO{
				Title:   "Late already",
				DueDate: time.Now().Add(-time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			plans, err := service.ListByOrg(manager)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plans).To(gomega.HaveLen(1))
			gomega.Expect(plans[0].IsOverdue).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("EventHandler", func() {
	var (
		handler *EventHandler
		repo    *mockActionPlanRepository
	)

	ginkgo.BeforeEach(func() {
		repo = newMockActionPlanRepository()
		handler = NewEventHandler(repo, slog.Default())
	})

	ginkgo.It("should open one plan per failed item", func() {
		// Given
		event := events.NewInspectionCompletedEvent(42, "org-1", 7, f64(55.0), []events.FailedItem{
			{ItemID: 1, Text: "Exits unobstructed", Weight: 3},
			{ItemID: 2, Text: "Plan posted", Weight: 1},
		})

		// When
		err := handler.HandleInspectionCompleted(context.Background(), event)

		// Then
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(repo.plans).To(gomega.HaveLen(2))

		plans, _ := repo.GetByOrgID("org-1")
		for _, p := range plans {
			gomega.Expect(p.Status).To(gomega.Equal("open"))
			gomega.Expect(*p.InspectionID).To(gomega.Equal(int64(42)))
		}
	})

	ginkgo.It("should map item weight to priority", func() {
		event := events.NewInspectionCompletedEvent(42, "org-1", 7, f64(55.0), []events.FailedItem{
			{ItemID: 1, Text: "Heavy", Weight: 3},
			{ItemID: 2, Text: "Light", Weight: 1},
		})

		err := handler.HandleInspectionCompleted(context.Background(), event)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		byItem := map[int64]string{}
		for _, p := range repo.plans {
			byItem[*p.ItemID] = p.Priority
		}
		gomega.Expect(byItem[1]).To(gomega.Equal("high"))
		gomega.Expect(byItem[2]).To(gomega.Equal("low"))
	})

	ginkgo.It("should do nothing when no items failed", func() {
		event := events.NewInspectionCompletedEvent(42, "org-1", 7, f64(100.0), nil)

		err := handler.HandleInspectionCompleted(context.Background(), event)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(repo.plans).To(gomega.BeEmpty())
	})
})
