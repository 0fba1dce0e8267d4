package storage_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	userStorage "github.com/sce-foundation/sce-portal/internal/user/storage"
)

func TestUserStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Storage Suite")
}

var _ = Describe("User Repository", func() {
	var (
		db   *gorm.DB
		repo *userStorage.UserRepository
	)

	newUser := func(id, email string, createdAt time.Time) *userDatamodel.User {
		return &userDatamodel.User{
			ID:             id,
			Email:          email,
			Username:       id,
			PasswordHash:   "hash",
			Role:           "reader",
			Status:         "pending",
			ClearanceLevel: 1,
			CreatedAt:      createdAt,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = userStorage.NewUserRepository(db)
	})

	Describe("GetAll", func() {
		It("should return users in insertion order", func() {
			base := time.Now()
			Expect(repo.Create(newUser("b", "b@x.example", base.Add(time.Millisecond)))).To(Succeed())
			Expect(repo.Create(newUser("a", "a@x.example", base))).To(Succeed())

			users, err := repo.GetAll()

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].ID).To(Equal("a"))
			Expect(users[1].ID).To(Equal("b"))
		})
	})

	Describe("GetByEmail", func() {
		It("should return nil without an error when the email is unknown", func() {
			found, err := repo.GetByEmail("nobody@x.example")

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("should find an existing account", func() {
			Expect(repo.Create(newUser("a", "a@x.example", time.Now()))).To(Succeed())

			found, err := repo.GetByEmail("a@x.example")

			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.ID).To(Equal("a"))
		})
	})

	Describe("Create", func() {
		It("should enforce email uniqueness", func() {
			Expect(repo.Create(newUser("a", "dup@x.example", time.Now()))).To(Succeed())

			err := repo.Create(newUser("b", "dup@x.example", time.Now()))

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should persist field changes", func() {
			record := newUser("a", "a@x.example", time.Now())
			Expect(repo.Create(record)).To(Succeed())

			record.Status = "active"
			record.ClearanceLevel = 4
			Expect(repo.Update(record)).To(Succeed())

			reloaded, err := repo.GetByID("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Status).To(Equal("active"))
			Expect(reloaded.ClearanceLevel).To(Equal(4))
		})

		It("should be a silent no-op for a missing id", func() {
			err := repo.Update(newUser("ghost", "ghost@x.example", time.Now()))

			Expect(err).NotTo(HaveOccurred())

			count, err := repo.Count()
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("Delete", func() {
		It("should remove the record and tolerate absent ids", func() {
			Expect(repo.Create(newUser("a", "a@x.example", time.Now()))).To(Succeed())

			Expect(repo.Delete("a")).To(Succeed())
			Expect(repo.Delete("a")).To(Succeed())

			count, err := repo.Count()
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
