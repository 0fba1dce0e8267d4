package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/sce-foundation/sce-portal/internal"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	"github.com/sce-foundation/sce-portal/internal/core/events"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockRepository struct {
	records     []*userDatamodel.User
	returnError error
}

func (m *mockRepository) GetAll() ([]*userDatamodel.User, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.records, nil
}

func (m *mockRepository) GetByID(id string) (*userDatamodel.User, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) Update(u *userDatamodel.User) error {
	if m.returnError != nil {
		return m.returnError
	}
	for i, r := range m.records {
		if r.ID == u.ID {
			m.records[i] = u
			return nil
		}
	}
	// missing ids are silently ignored, same as the storage layer
	return nil
}

func (m *mockRepository) Delete(id string) error {
	if m.returnError != nil {
		return m.returnError
	}
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		mockBus  *mockPublisher
		ctx      context.Context
		actor    *internal.SessionUser
	)

	addUser := func(id string, status Status) *userDatamodel.User {
		record := &userDatamodel.User{
			ID:             id,
			Email:          id + "@sce-foundation.example",
			Username:       id,
			Role:           string(RoleReader),
			Status:         string(status),
			ClearanceLevel: 1,
			CreatedAt:      time.Now(),
		}
		mockRepo.records = append(mockRepo.records, record)
		return record
	}

	ginkgo.BeforeEach(func() {
		mockRepo = &mockRepository{}
		mockBus = &mockPublisher{}
		testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(mockRepo, mockBus, testLogger)
		ctx = context.Background()
		actor = &internal.SessionUser{ID: "admin-1", Role: string(RoleAdministrator), ClearanceLevel: 5}
	})

	ginkgo.Describe("ListUsers", func() {
		ginkgo.It("should return accounts in insertion order", func() {
			addUser("alpha", StatusActive)
			addUser("beta", StatusPending)

			users, err := service.ListUsers(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users).To(gomega.HaveLen(2))
			gomega.Expect(users[0].ID).To(gomega.Equal("alpha"))
			gomega.Expect(users[1].ID).To(gomega.Equal("beta"))
		})

		ginkgo.It("should skip records with unknown enum values", func() {
			addUser("fine", StatusActive)
			corrupt := addUser("corrupt", StatusActive)
			corrupt.Role = "overlord"

			users, err := service.ListUsers(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(users).To(gomega.HaveLen(1))
			gomega.Expect(users[0].ID).To(gomega.Equal("fine"))
		})

		ginkgo.It("should surface storage failures", func() {
			mockRepo.returnError = errors.New("storage down")

			_, err := service.ListUsers(ctx)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("GetUser", func() {
		ginkgo.It("should return not found for an unknown id", func() {
			_, err := service.GetUser(ctx, "ghost")

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("Approve", func() {
		ginkgo.It("should activate a pending account", func() {
			addUser("applicant", StatusPending)

			approved, err := service.Approve(ctx, "applicant", actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(approved.Status).To(gomega.Equal(StatusActive))
			gomega.Expect(mockRepo.records[0].Status).To(gomega.Equal(string(StatusActive)))
		})

		ginkgo.It("should reject approving an already active account", func() {
			addUser("member", StatusActive)

			_, err := service.Approve(ctx, "member", actor)

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidTransition))
		})

		ginkgo.It("should publish an approval event naming the actor", func() {
			addUser("applicant", StatusPending)

			_, err := service.Approve(ctx, "applicant", actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockBus.published).To(gomega.HaveLen(1))
			gomega.Expect(mockBus.published[0].EventType()).To(gomega.Equal(events.UserApproved))
		})
	})

	ginkgo.Describe("Reject", func() {
		ginkgo.It("should remove a pending account", func() {
			addUser("applicant", StatusPending)

			err := service.Reject(ctx, "applicant", actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.records).To(gomega.BeEmpty())
		})

		ginkgo.It("should refuse to reject an active account", func() {
			addUser("member", StatusActive)

			err := service.Reject(ctx, "member", actor)

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidTransition))
			gomega.Expect(mockRepo.records).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("Block and Reactivate", func() {
		ginkgo.It("should block an active account", func() {
			addUser("member", StatusActive)

			blocked, err := service.Block(ctx, "member", actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(blocked.Status).To(gomega.Equal(StatusBlocked))
		})

		ginkgo.It("should not block a pending account", func() {
			addUser("applicant", StatusPending)

			_, err := service.Block(ctx, "applicant", actor)

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidTransition))
		})

		ginkgo.It("should reactivate a blocked account", func() {
			addUser("suspended", StatusBlocked)

			reactivated, err := service.Reactivate(ctx, "suspended", actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(reactivated.Status).To(gomega.Equal(StatusActive))
		})

		ginkgo.It("should not reactivate an active account", func() {
			addUser("member", StatusActive)

			_, err := service.Reactivate(ctx, "member", actor)

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidTransition))
		})
	})

	ginkgo.Describe("UpdateUser", func() {
		ginkgo.It("should change role and clearance", func() {
			addUser("member", StatusActive)
			newRole := string(RoleResearcher)
			newClearance := 3

			updated, err := service.UpdateUser(ctx, "member", UpdateUserDTO{
				Role:           &newRole,
				ClearanceLevel: &newClearance,
			}, actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Role).To(gomega.Equal(RoleResearcher))
			gomega.Expect(updated.ClearanceLevel).To(gomega.Equal(3))
		})

		ginkgo.It("should reject an unknown role", func() {
			addUser("member", StatusActive)
			badRole := "overlord"

			_, err := service.UpdateUser(ctx, "member", UpdateUserDTO{Role: &badRole}, actor)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject clearance outside the band", func() {
			addUser("member", StatusActive)
			tooHigh := 6

			_, err := service.UpdateUser(ctx, "member", UpdateUserDTO{ClearanceLevel: &tooHigh}, actor)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should not touch the store when nothing changes", func() {
			record := addUser("member", StatusActive)
			before := record.Role

			updated, err := service.UpdateUser(ctx, "member", UpdateUserDTO{}, actor)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(string(updated.Role)).To(gomega.Equal(before))
			gomega.Expect(mockBus.published).To(gomega.BeEmpty())
		})
	})
})
