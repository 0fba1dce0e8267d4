package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/sce-foundation/sce-portal/internal"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	"github.com/sce-foundation/sce-portal/internal/user"
)

var _ = ginkgo.Describe("Auth middleware", func() {
	var (
		handler      *Handler
		mockRepo     *mockUserRepository
		mockSessions *mockSessionRepository
		tokenGen     *JWTTokenGenerator
	)

	echoViewer := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := internal.UserFromContext(r.Context())
		if viewer == nil {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(viewer.ID))
	})

	addAccount := func(id string, role user.Role) *userDatamodel.User {
		record := &userDatamodel.User{
			ID:             id,
			Email:          id + "@sce-foundation.example",
			Username:       id,
			Role:           string(role),
			Status:         string(user.StatusActive),
			ClearanceLevel: 3,
			CreatedAt:      time.Now(),
		}
		mockRepo.records = append(mockRepo.records, record)
		return record
	}

	ginkgo.BeforeEach(func() {
		mockRepo = &mockUserRepository{}
		mockSessions = &mockSessionRepository{}
		tokenGen = NewJWTTokenGenerator("test-secret-at-least-32-characters-long", time.Hour)
		testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := NewService(mockRepo, mockSessions, tokenGen, &mockPublisher{}, testLogger, "", bcrypt.MinCost)
		handler = NewHandler(service)
	})

	ginkgo.Describe("AuthMiddleware", func() {
		ginkgo.It("should place the resolved account in the request context", func() {
			addAccount("agent-7", user.RoleReader)
			token, err := tokenGen.GenerateSessionToken("agent-7", "agent-7@sce-foundation.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(w.Body.String()).To(gomega.Equal("agent-7"))
		})

		ginkgo.It("should reject a request without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should reject a token for a deleted account", func() {
			token, err := tokenGen.GenerateSessionToken("vanished", "vanished@sce-foundation.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("OptionalAuthMiddleware", func() {
		ginkgo.It("should let anonymous requests through", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			handler.OptionalAuthMiddleware(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(w.Body.String()).To(gomega.Equal("anonymous"))
		})

		ginkgo.It("should treat an invalid token as anonymous", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer not-a-token")
			w := httptest.NewRecorder()

			handler.OptionalAuthMiddleware(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(w.Body.String()).To(gomega.Equal("anonymous"))
		})

		ginkgo.It("should resolve a valid token", func() {
			addAccount("agent-9", user.RoleResearcher)
			token, err := tokenGen.GenerateSessionToken("agent-9", "agent-9@sce-foundation.example")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.OptionalAuthMiddleware(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Body.String()).To(gomega.Equal("agent-9"))
		})
	})

	ginkgo.Describe("RequireRoles", func() {
		serveAs := func(role user.Role, middleware func(http.Handler) http.Handler) *httptest.ResponseRecorder {
			viewer := &internal.SessionUser{ID: "v", Role: string(role), ClearanceLevel: 3}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(internal.ContextWithUser(req.Context(), viewer))
			w := httptest.NewRecorder()
			middleware(echoViewer).ServeHTTP(w, req)
			return w
		}

		ginkgo.It("should admit listed roles", func() {
			w := serveAs(user.RoleModerator, RequireRoles(user.RoleAdministrator, user.RoleModerator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should refuse unlisted roles", func() {
			w := serveAs(user.RoleReader, RequireRoles(user.RoleAdministrator))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should refuse anonymous requests", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			RequireAdministrator(echoViewer).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
