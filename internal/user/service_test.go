package user

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
	userDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/user"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[int64]*userDatamodel.User{}, nextID: 1}
}

func (m *mockUserRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	return m.users[userID], nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByOrgID(orgID string) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.users {
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) CountByOrgID(orgID string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.OrgID == orgID && u.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

type mockOrgRepository struct {
	orgs map[string]*orgDatamodel.Organization
}

func (m *mockOrgRepository) GetByID(id string) (*orgDatamodel.Organization, error) {
	return m.orgs[id], nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		repo     *mockUserRepository
		orgRepo  *mockOrgRepository
		orgAdmin *auth.User
		sysAdmin *auth.User
	)

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		orgRepo = &mockOrgRepository{
			orgs: map[string]*orgDatamodel.Organization{
				"org-1": {ID: "org-1", Name: "Acme", OrgType: "enterprise", MaxUsers: 2, IsActive: true},
				"org-2": {ID: "org-2", Name: "Beta", OrgType: "enterprise", MaxUsers: 10, IsActive: true},
			},
		}
		orgAdmin = &auth.User{ID: 1, Email: "admin@acme.test", Role: auth.RoleOrgAdmin, OrgID: "org-1", IsActive: true}
		sysAdmin = &auth.User{ID: 2, Email: "root@platform.test", Role: auth.RoleSystemAdmin, OrgID: "org-0", IsActive: true}
		service = NewService(repo, orgRepo, auth.NewResolver(), slog.Default())
	})

	ginkgo.Describe("Invite", func() {
		ginkgo.It("should create an inactive user with an invite token", func() {
			// Given
			dto := InviteUserDTO{
				Email: "new@acme.test",
				Name:  "New Person",
				Role:  "inspector",
				OrgID: "org-1",
			}

			// When
			resp, err := service.Invite(orgAdmin, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.InviteToken).ToNot(gomega.BeEmpty())

			created := repo.users[resp.UserID]
			gomega.Expect(created.IsActive).To(gomega.BeFalse())
			gomega.Expect(created.Role).To(gomega.Equal("inspector"))
		})

		ginkgo.It("should deny inviting into a foreign organization", func() {
			dto := InviteUserDTO{
				Email: "new@beta.test",
				Name:  "New Person",
				Role:  "inspector",
				OrgID: "org-2",
			}

			_, err := service.Invite(orgAdmin, dto)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
		})

		ginkgo.It("should let system admins invite anywhere", func() {
			dto := InviteUserDTO{
				Email: "new@beta.test",
				Name:  "New Person",
				Role:  "manager",
				OrgID: "org-2",
			}

			_, err := service.Invite(sysAdmin, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should deny roles without the invite permission", func() {
			manager := &auth.User{ID: 3, Role: auth.RoleManager, OrgID: "org-1", IsActive: true}
			dto := InviteUserDTO{
				Email: "new@acme.test",
				Name:  "New Person",
				Role:  "inspector",
				OrgID: "org-1",
			}

			_, err := service.Invite(manager, dto)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
		})

		ginkgo.It("should reject a duplicate email", func() {
			repo.Create(&userDatamodel.User{Email: "taken@acme.test", OrgID: "org-1", IsActive: true})

			dto := InviteUserDTO{
				Email: "taken@acme.test",
				Name:  "Dup",
				Role:  "inspector",
				OrgID: "org-1",
			}

			_, err := service.Invite(orgAdmin, dto)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmailTaken))
		})

		ginkgo.It("should enforce the organization user quota", func() {
			// org-1 allows 2 users; fill it with active accounts
			repo.Create(&userDatamodel.User{Email: "a@acme.test", OrgID: "org-1", IsActive: true})
			repo.Create(&userDatamodel.User{Email: "b@acme.test", OrgID: "org-1", IsActive: true})

			dto := InviteUserDTO{
				Email: "c@acme.test",
				Name:  "Third",
				Role:  "inspector",
				OrgID: "org-1",
			}

			_, err := service.Invite(orgAdmin, dto)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUserQuota))
		})

		ginkgo.It("should reject an unknown organization", func() {
			dto := InviteUserDTO{
				Email: "new@ghost.test",
				Name:  "Ghost",
				Role:  "inspector",
				OrgID: "org-ghost",
			}

			_, err := service.Invite(sysAdmin, dto)

			gomega.Expect(err).To(gomega.MatchError(internal.ErrOrgNotFound))
		})
	})

	ginkgo.Describe("ListByOrg", func() {
		ginkgo.It("should deny listing a foreign organization", func() {
			_, err := service.ListByOrg(orgAdmin, "org-2")

			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthorizedAccess))
		})

		ginkgo.It("should list the caller's own organization", func() {
			repo.Create(&userDatamodel.User{Email: "a@acme.test", OrgID: "org-1", IsActive: true})

			users, err := service.ListByOrg(orgAdmin, "org-1")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users).To(gomega.HaveLen(1))
		})
	})
})
