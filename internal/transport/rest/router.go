package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/inspectra/inspection-management/internal/actionplan"
	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/chatbot"
	"github.com/inspectra/inspection-management/internal/dashboard"
	"github.com/inspectra/inspection-management/internal/inspection"
	"github.com/inspectra/inspection-management/internal/organization"
	"github.com/inspectra/inspection-management/internal/template"
	"github.com/inspectra/inspection-management/internal/transport/middleware"
	"github.com/inspectra/inspection-management/internal/transport/swagger"
	"github.com/inspectra/inspection-management/internal/user"
)

// Handlers bundles every HTTP handler the router mounts. Nil entries are
// skipped, so callers can wire a subset (the chatbot stays nil when no API
// key is configured).
type Handlers struct {
	Auth       *auth.Handler
	RBAC       *auth.RBACAuthorization
	Org        *organization.Handler
	User       *user.Handler
	Template   *template.Handler
	Inspection *inspection.Handler
	ActionPlan *actionplan.Handler
	Dashboard  *dashboard.Handler
	Chatbot    *chatbot.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sqlx.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Group(func(mr chi.Router) {
					mr.Use(h.RBAC.Require(auth.PermInviteUser))
					mr.Post("/users/invite", h.User.InviteUser)
				})
			}

			if h.Org != nil {
				pr.Route("/organizations", func(or chi.Router) {
					or.Get("/", h.Org.GetHierarchy)
					or.Get("/{id}", h.Org.GetOrganization)
					or.Post("/", h.Org.CreateOrganization)

					if h.User != nil {
						or.Group(func(mr chi.Router) {
							mr.Use(h.RBAC.Require(auth.PermManageOrganization))
							mr.Get("/{id}/users", h.User.ListOrgUsers)
						})
					}

					or.Group(func(mr chi.Router) {
						mr.Use(h.RBAC.RequireSystemAdmin())
						mr.Delete("/{id}", h.Org.DeactivateOrganization)
					})
				})
			}

			if h.Template != nil {
				pr.Route("/templates", func(tr chi.Router) {
					tr.Get("/", h.Template.ListTemplates)
					tr.Get("/{id}", h.Template.GetTemplate)

					tr.Group(func(mr chi.Router) {
						mr.Use(h.RBAC.Require(auth.PermManageOrganization))
						mr.Post("/", h.Template.CreateTemplate)
						mr.Patch("/{id}", h.Template.UpdateTemplate)
					})
				})
			}

			if h.Inspection != nil {
				pr.Route("/inspections", func(ir chi.Router) {
					ir.Get("/", h.Inspection.ListInspections)
					ir.Get("/{id}", h.Inspection.GetInspection)

					ir.Group(func(mr chi.Router) {
						mr.Use(h.RBAC.Require(auth.PermCreateInspection))
						mr.Post("/", h.Inspection.CreateInspection)
						mr.Post("/{id}/results", h.Inspection.SubmitResults)
						mr.Post("/{id}/complete", h.Inspection.CompleteInspection)
					})
				})
			}

			if h.ActionPlan != nil {
				pr.Route("/action-plans", func(ar chi.Router) {
					ar.Get("/", h.ActionPlan.ListActionPlans)
					ar.Get("/{id}", h.ActionPlan.GetActionPlan)

					ar.Group(func(mr chi.Router) {
						mr.Use(h.RBAC.Require(auth.PermManageActionPlans))
						mr.Post("/", h.ActionPlan.CreateActionPlan)
						mr.Post("/{id}/transition", h.ActionPlan.TransitionActionPlan)
					})
				})
			}

			if h.Dashboard != nil {
				pr.Group(func(dr chi.Router) {
					dr.Use(h.RBAC.Require(auth.PermViewDashboard))
					dr.Get("/dashboard/stats", h.Dashboard.GetStats)
				})
				pr.Group(func(rr chi.Router) {
					rr.Use(h.RBAC.Require(auth.PermViewReports))
					rr.Get("/reports/summary", h.Dashboard.GetReportSummary)
				})
			}

			if h.Chatbot != nil {
				pr.Group(func(cr chi.Router) {
					cr.Use(h.RBAC.Require(auth.PermViewDashboard))
					cr.Post("/chatbot/message", h.Chatbot.SendMessage)
				})
			}
		})
	})
}
