package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/user"
)

var _ = ginkgo.Describe("Clearance checks", func() {
	viewerWithClearance := func(level int) *internal.SessionUser {
		return &internal.SessionUser{
			ID:             "viewer",
			Role:           string(user.RoleReader),
			Status:         string(user.StatusActive),
			ClearanceLevel: level,
		}
	}

	ginkgo.Describe("ViewerClearance", func() {
		ginkgo.It("should treat anonymous viewers as clearance 0", func() {
			gomega.Expect(ViewerClearance(nil)).To(gomega.Equal(0))
		})

		ginkgo.It("should return the account's clearance level", func() {
			gomega.Expect(ViewerClearance(viewerWithClearance(3))).To(gomega.Equal(3))
		})
	})

	ginkgo.Describe("HasClearance", func() {
		ginkgo.It("should deny anonymous viewers every gated level", func() {
			for required := user.MinClearance; required <= user.MaxClearance; required++ {
				gomega.Expect(HasClearance(nil, required)).To(gomega.BeFalse(),
					"anonymous viewer must not pass clearance %d", required)
			}
		})

		ginkgo.It("should grant access to every level at or below the viewer's", func() {
			for held := user.MinClearance; held <= user.MaxClearance; held++ {
				viewer := viewerWithClearance(held)
				for required := user.MinClearance; required <= held; required++ {
					gomega.Expect(HasClearance(viewer, required)).To(gomega.BeTrue(),
						"clearance %d must pass a level-%d gate", held, required)
				}
			}
		})

		ginkgo.It("should deny every level above the viewer's", func() {
			for held := user.MinClearance; held < user.MaxClearance; held++ {
				viewer := viewerWithClearance(held)
				for required := held + 1; required <= user.MaxClearance; required++ {
					gomega.Expect(HasClearance(viewer, required)).To(gomega.BeFalse(),
						"clearance %d must not pass a level-%d gate", held, required)
				}
			}
		})
	})

	ginkgo.Describe("Role predicates", func() {
		ginkgo.It("should recognize administrators", func() {
			admin := &internal.SessionUser{ID: "a", Role: string(user.RoleAdministrator)}

			gomega.Expect(IsAdministrator(admin)).To(gomega.BeTrue())
			gomega.Expect(IsAdministrator(viewerWithClearance(5))).To(gomega.BeFalse())
			gomega.Expect(IsAdministrator(nil)).To(gomega.BeFalse())
		})

		ginkgo.It("should allow publishing for administrators, moderators and researchers only", func() {
			for _, role := range []user.Role{user.RoleAdministrator, user.RoleModerator, user.RoleResearcher} {
				viewer := &internal.SessionUser{ID: "v", Role: string(role)}
				gomega.Expect(CanPublishPosts(viewer)).To(gomega.BeTrue())
			}

			reader := &internal.SessionUser{ID: "v", Role: string(user.RoleReader)}
			gomega.Expect(CanPublishPosts(reader)).To(gomega.BeFalse())
			gomega.Expect(CanPublishPosts(nil)).To(gomega.BeFalse())
		})
	})
})
