package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	objectDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/object"
	positionDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/position"
	postDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/post"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	"github.com/sce-foundation/sce-portal/internal/user"
)

func TestSeed(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Seed Module Suite")
}

type mockUserRepo struct {
	records []*userDatamodel.User
}

func (m *mockUserRepo) Count() (int64, error) {
	return int64(len(m.records)), nil
}

func (m *mockUserRepo) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, r := range m.records {
		if r.Email == email {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(u *userDatamodel.User) error {
	m.records = append(m.records, u)
	return nil
}

type mockObjectRepo struct {
	records []*objectDatamodel.AnomalousObject
}

func (m *mockObjectRepo) GetAll() ([]*objectDatamodel.AnomalousObject, error) {
	return m.records, nil
}

func (m *mockObjectRepo) GetByID(id string) (*objectDatamodel.AnomalousObject, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockObjectRepo) Create(o *objectDatamodel.AnomalousObject) error {
	m.records = append(m.records, o)
	return nil
}

func (m *mockObjectRepo) Update(o *objectDatamodel.AnomalousObject) error { return nil }
func (m *mockObjectRepo) Delete(id string) error                          { return nil }

type mockPostRepo struct {
	records []*postDatamodel.Post
}

func (m *mockPostRepo) GetAll() ([]*postDatamodel.Post, error) {
	return m.records, nil
}

func (m *mockPostRepo) GetByID(id string) (*postDatamodel.Post, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockPostRepo) Create(p *postDatamodel.Post) error {
	m.records = append(m.records, p)
	return nil
}

func (m *mockPostRepo) Update(p *postDatamodel.Post) error { return nil }
func (m *mockPostRepo) Delete(id string) error             { return nil }

type mockPositionRepo struct {
	records []*positionDatamodel.Position
}

func (m *mockPositionRepo) GetAll() ([]*positionDatamodel.Position, error) {
	return m.records, nil
}

func (m *mockPositionRepo) GetByID(id string) (*positionDatamodel.Position, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockPositionRepo) Create(p *positionDatamodel.Position) error {
	m.records = append(m.records, p)
	return nil
}

func (m *mockPositionRepo) Update(p *positionDatamodel.Position) error { return nil }
func (m *mockPositionRepo) Delete(id string) error                     { return nil }

var _ = ginkgo.Describe("Seeder", func() {
	var (
		seeder    *Seeder
		users     *mockUserRepo
		objects   *mockObjectRepo
		posts     *mockPostRepo
		positions *mockPositionRepo
		ctx       context.Context
	)

	bootstrapEmail := "director@sce-foundation.example"

	ginkgo.BeforeEach(func() {
		users = &mockUserRepo{}
		objects = &mockObjectRepo{}
		posts = &mockPostRepo{}
		positions = &mockPositionRepo{}
		testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		seeder = NewSeeder(users, objects, posts, positions, testLogger, bootstrapEmail)
		ctx = context.Background()
	})

	ginkgo.Context("on an empty store", func() {
		ginkgo.It("should populate every collection", func() {
			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users.records).To(gomega.HaveLen(1))
			gomega.Expect(objects.records).To(gomega.HaveLen(2))
			gomega.Expect(posts.records).To(gomega.HaveLen(3))
			gomega.Expect(positions.records).To(gomega.HaveLen(4))
		})

		ginkgo.It("should create an active administrator at the bootstrap address", func() {
			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			admin := users.records[0]
			gomega.Expect(admin.Email).To(gomega.Equal(bootstrapEmail))
			gomega.Expect(admin.Role).To(gomega.Equal(string(user.RoleAdministrator)))
			gomega.Expect(admin.Status).To(gomega.Equal(string(user.StatusActive)))
			gomega.Expect(admin.ClearanceLevel).To(gomega.Equal(user.MaxClearance))
			gomega.Expect(admin.PasswordHash).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should attribute demo records to the administrator", func() {
			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			adminID := users.records[0].ID
			for _, o := range objects.records {
				gomega.Expect(o.CreatedBy).To(gomega.Equal(adminID))
			}
			for _, p := range posts.records {
				gomega.Expect(p.AuthorID).To(gomega.Equal(adminID))
			}
		})

		ginkgo.It("should span clearance levels in the demo catalog", func() {
			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			clearances := []int{}
			for _, o := range objects.records {
				clearances = append(clearances, o.RequiredClearance)
			}
			gomega.Expect(clearances).To(gomega.ConsistOf(1, 4))
		})
	})

	ginkgo.Context("when run twice", func() {
		ginkgo.It("should not duplicate anything", func() {
			gomega.Expect(seeder.Run(ctx)).To(gomega.Succeed())
			gomega.Expect(seeder.Run(ctx)).To(gomega.Succeed())

			gomega.Expect(users.records).To(gomega.HaveLen(1))
			gomega.Expect(objects.records).To(gomega.HaveLen(2))
			gomega.Expect(posts.records).To(gomega.HaveLen(3))
			gomega.Expect(positions.records).To(gomega.HaveLen(4))
		})
	})

	ginkgo.Context("on a partially populated store", func() {
		addExistingUser := func(email string) *userDatamodel.User {
			existing := &userDatamodel.User{
				ID:             "existing-" + email,
				Email:          email,
				Username:       "existing",
				Role:           string(user.RoleAdministrator),
				Status:         string(user.StatusActive),
				ClearanceLevel: 5,
				CreatedAt:      time.Now(),
			}
			users.records = append(users.records, existing)
			return existing
		}

		ginkgo.It("should seed only the empty collections", func() {
			addExistingUser("someone@sce-foundation.example")

			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users.records).To(gomega.HaveLen(1))
			gomega.Expect(objects.records).To(gomega.HaveLen(2))
			gomega.Expect(posts.records).To(gomega.HaveLen(3))
			gomega.Expect(positions.records).To(gomega.HaveLen(4))
		})

		ginkgo.It("should attribute demo records to an existing bootstrap account", func() {
			existing := addExistingUser(bootstrapEmail)

			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			for _, o := range objects.records {
				gomega.Expect(o.CreatedBy).To(gomega.Equal(existing.ID))
			}
			for _, p := range posts.records {
				gomega.Expect(p.AuthorID).To(gomega.Equal(existing.ID))
			}
		})

		ginkgo.It("should leave attribution empty when no bootstrap account exists", func() {
			addExistingUser("someone-else@sce-foundation.example")

			err := seeder.Run(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			for _, o := range objects.records {
				gomega.Expect(o.CreatedBy).To(gomega.BeEmpty())
			}
		})
	})
})
