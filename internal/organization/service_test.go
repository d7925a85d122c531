package organization

import (
	"errors"
	"log/slog"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
)

type mockOrganizationRepository struct {
	records     []*orgDatamodel.Organization
	created     []*orgDatamodel.Organization
	deactivated []string
	getAllErr   error
}

func (m *mockOrganizationRepository) GetAll() ([]*orgDatamodel.Organization, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.records, nil
}

func (m *mockOrganizationRepository) GetByID(id string) (*orgDatamodel.Organization, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockOrganizationRepository) Create(org *orgDatamodel.Organization) error {
	m.created = append(m.created, org)
	m.records = append(m.records, org)
	return nil
}

func (m *mockOrganizationRepository) Update(org *orgDatamodel.Organization) error { return nil }

func (m *mockOrganizationRepository) Deactivate(id string) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

func (m *mockOrganizationRepository) CountSubsidiaries(parentID string) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.ParentID != nil && *r.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

var _ = ginkgo.Describe("OrganizationService", func() {
	var (
		service  *Service
		repo     *mockOrganizationRepository
		sysAdmin *auth.User
		orgAdmin *auth.User
		manager  *auth.User
	)

	rootID := "org-root"

	ginkgo.BeforeEach(func() {
		repo = &mockOrganizationRepository{
			records: []*orgDatamodel.Organization{
				{ID: rootID, Name: "Acme Holdings", OrgType: "master", Plan: "enterprise", MaxSubsidiaries: 2, IsActive: true},
			},
		}
		service = NewService(repo, auth.NewResolver(), slog.Default())
		sysAdmin = &auth.User{ID: 1, Role: auth.RoleSystemAdmin, OrgID: rootID, IsActive: true}
		orgAdmin = &auth.User{ID: 2, Role: auth.RoleOrgAdmin, OrgID: rootID, IsActive: true}
		manager = &auth.User{ID: 3, Role: auth.RoleManager, OrgID: rootID, IsActive: true}
	})

	ginkgo.Describe("Create", func() {
		ginkgo.Context("when creating a master organization", func() {
			ginkgo.It("should allow a system admin and default the plan", func() {
				// When
				org, err := service.Create(sysAdmin, CreateOrganizationDTO{Name: "Globex", Type: "master", MaxUsers: 10, MaxSubsidiaries: 3})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(org.ID).ToNot(gomega.BeEmpty())
				gomega.Expect(org.Plan).To(gomega.Equal(PlanBasic))
				gomega.Expect(org.IsActive).To(gomega.BeTrue())
				gomega.Expect(repo.created).To(gomega.HaveLen(1))
			})

			ginkgo.It("should deny an org admin", func() {
				_, err := service.Create(orgAdmin, CreateOrganizationDTO{Name: "Globex", Type: "master"})

				gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
			})

			ginkgo.It("should reject a master organization with a parent", func() {
				_, err := service.Create(sysAdmin, CreateOrganizationDTO{Name: "Globex", Type: "master", ParentID: &rootID})

				gomega.Expect(err).To(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("when creating a subsidiary", func() {
			ginkgo.It("should allow an org admin under their own organization", func() {
				org, err := service.Create(orgAdmin, CreateOrganizationDTO{Name: "Acme West", Type: "subsidiary", ParentID: &rootID})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(org.ParentID).To(gomega.Equal(&rootID))
			})

			ginkgo.It("should deny an org admin under a foreign organization", func() {
				foreign := "org-other"
				repo.records = append(repo.records, &orgDatamodel.Organization{ID: foreign, OrgType: "master", MaxSubsidiaries: 5})

				_, err := service.Create(orgAdmin, CreateOrganizationDTO{Name: "Intruder", Type: "subsidiary", ParentID: &foreign})

				gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
			})

			ginkgo.It("should reject a missing parent", func() {
				missing := "org-ghost"
				_, err := service.Create(sysAdmin, CreateOrganizationDTO{Name: "Lost", Type: "subsidiary", ParentID: &missing})

				var appErr *internal.AppError
				gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidParent))
			})

			ginkgo.It("should enforce the parent's subsidiary quota", func() {
				// Given the parent already holds its maximum of two subsidiaries
				for _, name := range []string{"Acme East", "Acme West"} {
					_, err := service.Create(sysAdmin, CreateOrganizationDTO{Name: name, Type: "subsidiary", ParentID: &rootID})
					gomega.Expect(err).ToNot(gomega.HaveOccurred())
				}

				// When
				_, err := service.Create(sysAdmin, CreateOrganizationDTO{Name: "Acme North", Type: "subsidiary", ParentID: &rootID})

				// Then
				gomega.Expect(err).To(gomega.MatchError(internal.ErrSubsidiaryQuota))
			})
		})
	})

	ginkgo.Describe("ListHierarchy", func() {
		ginkgo.It("should return nested nodes with depths", func() {
			repo.records = append(repo.records,
				&orgDatamodel.Organization{ID: "org-sub", Name: "Acme West", OrgType: "subsidiary", ParentID: &rootID, IsActive: true},
			)

			resp, err := service.ListHierarchy()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Organizations).To(gomega.HaveLen(1))
			root := resp.Organizations[0]
			gomega.Expect(root.ID).To(gomega.Equal(rootID))
			gomega.Expect(root.Depth).To(gomega.Equal(0))
			gomega.Expect(root.Children).To(gomega.HaveLen(1))
			gomega.Expect(root.Children[0].Depth).To(gomega.Equal(1))
		})

		ginkgo.It("should flag an organization whose parent is missing", func() {
			ghost := "org-ghost"
			repo.records = append(repo.records,
				&orgDatamodel.Organization{ID: "org-orphan", Name: "Orphan", OrgType: "subsidiary", ParentID: &ghost, IsActive: true},
			)

			resp, err := service.ListHierarchy()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Organizations).To(gomega.HaveLen(2))
			gomega.Expect(resp.Organizations[1].ID).To(gomega.Equal("org-orphan"))
			gomega.Expect(resp.Organizations[1].IsOrphaned).To(gomega.BeTrue())
			gomega.Expect(resp.Organizations[1].Depth).To(gomega.Equal(0))
		})

		ginkgo.It("should propagate repository errors", func() {
			repo.getAllErr = errors.New("connection refused")

			_, err := service.ListHierarchy()

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Deactivate", func() {
		ginkgo.It("should let a system admin deactivate any organization", func() {
			other := "org-other"
			repo.records = append(repo.records, &orgDatamodel.Organization{ID: other, OrgType: "master"})

			gomega.Expect(service.Deactivate(sysAdmin, other)).To(gomega.Succeed())
			gomega.Expect(repo.deactivated).To(gomega.ConsistOf(other))
		})

		ginkgo.It("should restrict an org admin to their own organization", func() {
			other := "org-other"
			repo.records = append(repo.records, &orgDatamodel.Organization{ID: other, OrgType: "master"})

			err := service.Deactivate(orgAdmin, other)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
		})

		ginkgo.It("should deny a manager outright", func() {
			err := service.Deactivate(manager, rootID)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
		})

		ginkgo.It("should report a missing organization", func() {
			err := service.Deactivate(sysAdmin, "org-ghost")

			gomega.Expect(err).To(gomega.MatchError(internal.ErrOrgNotFound))
		})
	})
})
