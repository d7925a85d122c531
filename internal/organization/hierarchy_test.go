package organization

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestOrganization(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Organization Module Suite")
}

func org(id string, parentID *string) Organization {
	return Organization{
		ID:       id,
		Name:     "org-" + id,
		Type:     OrgTypeEnterprise,
		ParentID: parentID,
		Plan:     PlanBasic,
		IsActive: true,
	}
}

func strPtr(s string) *string { return &s }

var _ = ginkgo.Describe("BuildHierarchy", func() {
	ginkgo.Context("with an empty input", func() {
		ginkgo.It("should return an empty forest", func() {
			roots, err := BuildHierarchy(nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(roots).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("with a flat list forming one tree", func() {
		ginkgo.It("should nest children under their parents with correct depths", func() {
			// Given
			orgs := []Organization{
				org("a", nil),
				org("b", strPtr("a")),
				org("c", strPtr("a")),
				org("d", strPtr("b")),
			}

			// When
			roots, err := BuildHierarchy(orgs)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(roots).To(gomega.HaveLen(1))
			gomega.Expect(roots[0].ID).To(gomega.Equal("a"))
			gomega.Expect(roots[0].Depth).To(gomega.Equal(0))
			gomega.Expect(roots[0].Children).To(gomega.HaveLen(2))
			gomega.Expect(roots[0].Children[0].ID).To(gomega.Equal("b"))
			gomega.Expect(roots[0].Children[0].Depth).To(gomega.Equal(1))
			gomega.Expect(roots[0].Children[1].ID).To(gomega.Equal("c"))
			gomega.Expect(roots[0].Children[0].Children[0].ID).To(gomega.Equal("d"))
			gomega.Expect(roots[0].Children[0].Children[0].Depth).To(gomega.Equal(2))
		})

		ginkgo.It("should preserve every input record exactly once", func() {
			// Given
			orgs := []Organization{
				org("a", nil),
				org("b", strPtr("a")),
				org("c", strPtr("b")),
				org("e", nil),
			}

			// When
			roots, err := BuildHierarchy(orgs)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			flat, err := Flatten(roots)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(flat).To(gomega.HaveLen(len(orgs)))

			seen := map[string]int{}
			for _, n := range flat {
				seen[n.ID]++
			}
			for _, o := range orgs {
				gomega.Expect(seen[o.ID]).To(gomega.Equal(1))
			}
		})

		ginkgo.It("should assign the same depths regardless of input order", func() {
			// Given: children listed before their parents
			orgs := []Organization{
				org("d", strPtr("b")),
				org("b", strPtr("a")),
				org("c", strPtr("a")),
				org("a", nil),
			}

			// When
			roots, err := BuildHierarchy(orgs)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// Then
			flat, err := Flatten(roots)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			depths := map[string]int{}
			for _, n := range flat {
				depths[n.ID] = n.Depth
			}
			gomega.Expect(depths).To(gomega.Equal(map[string]int{
				"a": 0, "b": 1, "c": 1, "d": 2,
			}))
		})

		ginkgo.It("should keep sibling and root order stable across rebuilds", func() {
			orgs := []Organization{
				org("r2", nil),
				org("r1", nil),
				org("x", strPtr("r2")),
				org("y", strPtr("r2")),
			}

			first, err := BuildHierarchy(orgs)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			second, err := BuildHierarchy(orgs)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(first).To(gomega.HaveLen(2))
			gomega.Expect(first[0].ID).To(gomega.Equal("r2"))
			gomega.Expect(first[1].ID).To(gomega.Equal("r1"))
			gomega.Expect(first[0].Children[0].ID).To(gomega.Equal("x"))
			gomega.Expect(first[0].Children[1].ID).To(gomega.Equal("y"))

			// Rebuilding from the same input yields the same structure
			gomega.Expect(second).To(gomega.HaveLen(len(first)))
			for i := range first {
				gomega.Expect(second[i].ID).To(gomega.Equal(first[i].ID))
				gomega.Expect(second[i].Children).To(gomega.HaveLen(len(first[i].Children)))
			}
		})
	})

	ginkgo.Context("when a parent reference does not resolve", func() {
		ginkgo.It("should promote the dangling node to a root and flag it", func() {
			// Given: A is a root, B belongs to A, C points at a missing org
			orgs := []Organization{
				org("A", nil),
				org("B", strPtr("A")),
				org("C", strPtr("Z")),
			}

			// When
			roots, err := BuildHierarchy(orgs)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(roots).To(gomega.HaveLen(2))
			gomega.Expect(roots[0].ID).To(gomega.Equal("A"))
			gomega.Expect(roots[0].IsOrphaned).To(gomega.BeFalse())
			gomega.Expect(roots[0].Children).To(gomega.HaveLen(1))
			gomega.Expect(roots[0].Children[0].ID).To(gomega.Equal("B"))
			gomega.Expect(roots[0].Children[0].Depth).To(gomega.Equal(1))

			gomega.Expect(roots[1].ID).To(gomega.Equal("C"))
			gomega.Expect(roots[1].IsOrphaned).To(gomega.BeTrue())
			gomega.Expect(roots[1].Depth).To(gomega.Equal(0))
		})

		ginkgo.It("should treat an empty parent ID the same as nil", func() {
			orgs := []Organization{
				org("a", strPtr("")),
				org("b", strPtr("a")),
			}

			roots, err := BuildHierarchy(orgs)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(roots).To(gomega.HaveLen(1))
			gomega.Expect(roots[0].ID).To(gomega.Equal("a"))
			gomega.Expect(roots[0].IsOrphaned).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("when the parent data contains a cycle", func() {
		ginkgo.It("should return ErrCyclicHierarchy rather than dropping the trapped records", func() {
			// Given: a valid root plus two records pointing at each other
			orgs := []Organization{
				org("root", nil),
				org("a", strPtr("b")),
				org("b", strPtr("a")),
			}

			// When
			roots, err := BuildHierarchy(orgs)

			// Then
			gomega.Expect(err).To(gomega.MatchError(ErrCyclicHierarchy))
			gomega.Expect(roots).To(gomega.BeNil())
		})

		ginkgo.It("should reject a record that is its own parent", func() {
			_, err := BuildHierarchy([]Organization{org("self", strPtr("self"))})

			gomega.Expect(err).To(gomega.MatchError(ErrCyclicHierarchy))
		})
	})

	ginkgo.Context("with multiple independent trees", func() {
		ginkgo.It("should return one root per tree in input order", func() {
			orgs := []Organization{
				org("t1", nil),
				org("t2", nil),
				org("t1c", strPtr("t1")),
				org("t3", nil),
			}

			roots, err := BuildHierarchy(orgs)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(roots).To(gomega.HaveLen(3))
			gomega.Expect(roots[0].ID).To(gomega.Equal("t1"))
			gomega.Expect(roots[1].ID).To(gomega.Equal("t2"))
			gomega.Expect(roots[2].ID).To(gomega.Equal("t3"))
		})
	})
})

var _ = ginkgo.Describe("Flatten", func() {
	ginkgo.It("should return nodes in depth-first order", func() {
		orgs := []Organization{
			org("a", nil),
			org("b", strPtr("a")),
			org("c", strPtr("b")),
			org("d", strPtr("a")),
		}

		roots, err := BuildHierarchy(orgs)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		flat, err := Flatten(roots)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		ids := make([]string, len(flat))
		for i, n := range flat {
			ids[i] = n.ID
		}
		gomega.Expect(ids).To(gomega.Equal([]string{"a", "b", "c", "d"}))
	})

	ginkgo.It("should reject a forest containing a shared subtree", func() {
		// Given: the same node wired under two parents
		shared := &Node{Organization: org("shared", nil)}
		r1 := &Node{Organization: org("r1", nil), Children: []*Node{shared}}
		r2 := &Node{Organization: org("r2", nil), Children: []*Node{shared}}

		// When
		_, err := Flatten([]*Node{r1, r2})

		// Then
		gomega.Expect(err).To(gomega.MatchError(ErrCyclicHierarchy))
	})

	ginkgo.It("should reject a cycle instead of recursing forever", func() {
		a := &Node{Organization: org("a", nil)}
		b := &Node{Organization: org("b", strPtr("a"))}
		a.Children = []*Node{b}
		b.Children = []*Node{a}

		_, err := Flatten([]*Node{a})

		gomega.Expect(err).To(gomega.MatchError(ErrCyclicHierarchy))
	})
})

var _ = ginkgo.Describe("SubtreeIDs", func() {
	var roots []*Node

	ginkgo.BeforeEach(func() {
		var err error
		roots, err = BuildHierarchy([]Organization{
			org("root", nil),
			org("mid", strPtr("root")),
			org("leaf1", strPtr("mid")),
			org("leaf2", strPtr("mid")),
			org("other", nil),
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	ginkgo.It("should return the node and all of its descendants", func() {
		ids, err := SubtreeIDs(roots, "mid")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ids).To(gomega.Equal([]string{"mid", "leaf1", "leaf2"}))
	})

	ginkgo.It("should return just the node for a leaf", func() {
		ids, err := SubtreeIDs(roots, "leaf1")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ids).To(gomega.Equal([]string{"leaf1"}))
	})

	ginkgo.It("should return nil for an unknown ID", func() {
		ids, err := SubtreeIDs(roots, "nope")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ids).To(gomega.BeNil())
	})
})
