package postgres

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
	"github.com/inspectra/inspection-management/internal/organization"
)

func TestOrganizationRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Organization Repository Suite")
}

var _ = ginkgo.Describe("OrganizationRepository", func() {
	var (
		db   *gorm.DB
		repo organization.RepositoryAPI
	)

	ginkgo.BeforeEach(func() {
		// Use in-memory SQLite for testing
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = db.AutoMigrate(&orgDatamodel.Organization{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		repo = NewOrganizationRepository(db)
	})

	seed := func(id string, parentID *string, createdAt time.Time) {
		org := &orgDatamodel.Organization{
			ID:              id,
			Name:            "Org " + id,
			OrgType:         "subsidiary",
			ParentID:        parentID,
			Plan:            "basic",
			MaxUsers:        10,
			MaxSubsidiaries: 5,
			IsActive:        true,
			CreatedAt:       createdAt,
		}
		gomega.Expect(repo.Create(org)).To(gomega.Succeed())
	}

	ginkgo.Describe("GetAll", func() {
		ginkgo.It("should return organizations ordered by creation time", func() {
			// Given
			base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
			seed("org-newer", nil, base.Add(2*time.Hour))
			seed("org-oldest", nil, base)
			seed("org-middle", nil, base.Add(time.Hour))

			// When
			orgs, err := repo.GetAll()

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(orgs).To(gomega.HaveLen(3))
			gomega.Expect(orgs[0].ID).To(gomega.Equal("org-oldest"))
			gomega.Expect(orgs[1].ID).To(gomega.Equal("org-middle"))
			gomega.Expect(orgs[2].ID).To(gomega.Equal("org-newer"))
		})

		ginkgo.It("should return an empty slice on an empty table", func() {
			orgs, err := repo.GetAll()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(orgs).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should return the stored organization", func() {
			// Given
			seed("org-hq", nil, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

			// When
			org, err := repo.GetByID("org-hq")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(org).ToNot(gomega.BeNil())
			gomega.Expect(org.Name).To(gomega.Equal("Org org-hq"))
			gomega.Expect(org.IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should return nil without error when the id is unknown", func() {
			org, err := repo.GetByID("no-such-org")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(org).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("CountSubsidiaries", func() {
		ginkgo.It("should count only active direct children", func() {
			// Given
			base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
			parent := "org-parent"
			seed(parent, nil, base)
			seed("org-child-a", &parent, base.Add(time.Minute))
			seed("org-child-b", &parent, base.Add(2*time.Minute))
			seed("org-child-c", &parent, base.Add(3*time.Minute))
			seed("org-unrelated", nil, base.Add(4*time.Minute))
			gomega.Expect(repo.Deactivate("org-child-c")).To(gomega.Succeed())

			// When
			count, err := repo.CountSubsidiaries(parent)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.Equal(int64(2)))
		})

		ginkgo.It("should return zero for a leaf organization", func() {
			seed("org-leaf", nil, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

			count, err := repo.CountSubsidiaries("org-leaf")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("Deactivate", func() {
		ginkgo.It("should flip is_active without touching other rows", func() {
			// Given
			base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
			seed("org-keep", nil, base)
			seed("org-drop", nil, base.Add(time.Minute))

			// When
			err := repo.Deactivate("org-drop")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			dropped, err := repo.GetByID("org-drop")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dropped.IsActive).To(gomega.BeFalse())
			kept, err := repo.GetByID("org-keep")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(kept.IsActive).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should persist plan and limit changes", func() {
			// Given
			seed("org-upgrade", nil, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
			org, err := repo.GetByID("org-upgrade")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			org.Plan = "enterprise"
			org.MaxUsers = 500
			gomega.Expect(repo.Update(org)).To(gomega.Succeed())

			// Then
			reloaded, err := repo.GetByID("org-upgrade")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(reloaded.Plan).To(gomega.Equal("enterprise"))
			gomega.Expect(reloaded.MaxUsers).To(gomega.Equal(500))
		})
	})
})
