package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func userWithRole(role Role, orgID string) *User {
	return &User{
		ID:       1,
		Email:    "user@example.com",
		Name:     "Test User",
		Role:     role,
		OrgID:    orgID,
		IsActive: true,
	}
}

var _ = ginkgo.Describe("Resolver", func() {
	var resolver *Resolver

	ginkgo.BeforeEach(func() {
		resolver = NewResolver()
	})

	ginkgo.Describe("HasPermission", func() {
		ginkgo.Context("dashboard and reports", func() {
			ginkgo.It("should allow every role to view the dashboard", func() {
				for _, role := range []Role{RoleSystemAdmin, RoleOrgAdmin, RoleManager, RoleInspector, RoleClient} {
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermViewDashboard)).To(gomega.BeTrue())
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermViewReports)).To(gomega.BeTrue())
				}
			})

			ginkgo.It("should allow the dashboard even for an unrecognized role", func() {
				user := userWithRole(Role("contractor"), "org-1")
				gomega.Expect(resolver.HasPermission(user, PermViewDashboard)).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("system admin permissions", func() {
			ginkgo.It("should restrict organization creation to system admins", func() {
				gomega.Expect(resolver.HasPermission(userWithRole(RoleSystemAdmin, "org-1"), PermCreateOrganization)).To(gomega.BeTrue())

				for _, role := range []Role{RoleOrgAdmin, RoleManager, RoleInspector, RoleClient} {
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermCreateOrganization)).To(gomega.BeFalse())
				}
			})

			ginkgo.It("should restrict system administration to system admins", func() {
				gomega.Expect(resolver.HasPermission(userWithRole(RoleSystemAdmin, "org-1"), PermSystemAdmin)).To(gomega.BeTrue())
				gomega.Expect(resolver.HasPermission(userWithRole(RoleOrgAdmin, "org-1"), PermSystemAdmin)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("organization management", func() {
			ginkgo.It("should allow system and org admins only", func() {
				gomega.Expect(resolver.HasPermission(userWithRole(RoleSystemAdmin, "org-1"), PermManageOrganization)).To(gomega.BeTrue())
				gomega.Expect(resolver.HasPermission(userWithRole(RoleOrgAdmin, "org-1"), PermManageOrganization)).To(gomega.BeTrue())

				for _, role := range []Role{RoleManager, RoleInspector, RoleClient} {
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermManageOrganization)).To(gomega.BeFalse())
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermInviteUser)).To(gomega.BeFalse())
				}
			})
		})

		ginkgo.Context("operational permissions", func() {
			ginkgo.It("should exclude only clients from inspections and action plans", func() {
				for _, role := range []Role{RoleSystemAdmin, RoleOrgAdmin, RoleManager, RoleInspector} {
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermCreateInspection)).To(gomega.BeTrue())
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermManageActionPlans)).To(gomega.BeTrue())
					gomega.Expect(resolver.HasPermission(userWithRole(role, "org-1"), PermExportData)).To(gomega.BeTrue())
				}

				client := userWithRole(RoleClient, "org-1")
				gomega.Expect(resolver.HasPermission(client, PermCreateInspection)).To(gomega.BeFalse())
				gomega.Expect(resolver.HasPermission(client, PermManageActionPlans)).To(gomega.BeFalse())
				gomega.Expect(resolver.HasPermission(client, PermExportData)).To(gomega.BeFalse())
			})

			ginkgo.It("should deny role-conditioned permissions to an unrecognized role", func() {
				user := userWithRole(Role("contractor"), "org-1")
				gomega.Expect(resolver.HasPermission(user, PermCreateInspection)).To(gomega.BeFalse())
				gomega.Expect(resolver.HasPermission(user, PermManageActionPlans)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("edge cases", func() {
			ginkgo.It("should deny an unknown permission name", func() {
				user := userWithRole(RoleSystemAdmin, "org-1")
				gomega.Expect(resolver.HasPermission(user, Permission("launch_rockets"))).To(gomega.BeFalse())
			})

			ginkgo.It("should deny everything for a nil user", func() {
				gomega.Expect(resolver.HasPermission(nil, PermViewDashboard)).To(gomega.BeFalse())
				gomega.Expect(resolver.HasPermission(nil, PermCreateOrganization)).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("CanCreateSubsidiary", func() {
		ginkgo.It("should allow system admins for any organization", func() {
			admin := userWithRole(RoleSystemAdmin, "org-1")
			gomega.Expect(resolver.CanCreateSubsidiary(admin, "org-2")).To(gomega.BeTrue())
		})

		ginkgo.It("should allow org admins only under their own organization", func() {
			orgAdmin := userWithRole(RoleOrgAdmin, "org-1")
			gomega.Expect(resolver.CanCreateSubsidiary(orgAdmin, "org-1")).To(gomega.BeTrue())
			gomega.Expect(resolver.CanCreateSubsidiary(orgAdmin, "org-2")).To(gomega.BeFalse())
		})

		ginkgo.It("should deny managers everywhere", func() {
			manager := userWithRole(RoleManager, "org-1")
			gomega.Expect(resolver.CanCreateSubsidiary(manager, "org-1")).To(gomega.BeFalse())
		})
	})
})
