package object_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sce-foundation/sce-portal/internal"
	objectDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/object"
	"github.com/sce-foundation/sce-portal/internal/object"
	objectStorage "github.com/sce-foundation/sce-portal/internal/object/storage"
	"github.com/sce-foundation/sce-portal/internal/user"
)

var _ = Describe("Object Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    object.RepositoryAPI
		service *object.Service
		handler *object.Handler
		router  *chi.Mux
	)

	seedObject := func(id, code string, clearance int) {
		now := time.Now()
		err := repo.Create(&objectDatamodel.AnomalousObject{
			ID:                id,
			Code:              code,
			Name:              "Object " + code,
			Classification:    string(object.ClassSafe),
			RequiredClearance: clearance,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		Expect(err).NotTo(HaveOccurred())
	}

	asViewer := func(req *http.Request, clearance int) *http.Request {
		viewer := &internal.SessionUser{
			ID:             "viewer-1",
			Role:           string(user.RoleAdministrator),
			Status:         string(user.StatusActive),
			ClearanceLevel: clearance,
		}
		return req.WithContext(internal.ContextWithUser(req.Context(), viewer))
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&objectDatamodel.AnomalousObject{})
		Expect(err).NotTo(HaveOccurred())

		repo = objectStorage.NewObjectRepository(db)
		service = object.NewService(repo, slogger)
		handler = object.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/objects", handler.ListObjects)
		router.Get("/objects/{id}", handler.GetObject)
		router.Post("/objects", handler.CreateObject)
		router.Put("/objects/{id}", handler.UpdateObject)
		router.Delete("/objects/{id}", handler.DeleteObject)
	})

	It("should list only objects within the viewer's clearance", func() {
		seedObject("low", "SCE-010", 1)
		seedObject("high", "SCE-011", 4)

		req := asViewer(httptest.NewRequest(http.MethodGet, "/objects", nil), 2)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var listed []object.AnomalousObject
		Expect(json.NewDecoder(w.Body).Decode(&listed)).To(Succeed())
		Expect(listed).To(HaveLen(1))
		Expect(listed[0].Code).To(Equal("SCE-010"))
	})

	It("should return an empty array, not null, for anonymous viewers", func() {
		seedObject("low", "SCE-010", 1)

		req := httptest.NewRequest(http.MethodGet, "/objects", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("[]"))
	})

	It("should 404 a fetch above the viewer's clearance", func() {
		seedObject("high", "SCE-011", 4)

		req := asViewer(httptest.NewRequest(http.MethodGet, "/objects/high", nil), 2)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should create an object for an authenticated viewer", func() {
		payload, err := json.Marshal(object.CreateObjectDTO{
			Code:              "SCE-042",
			Name:              "Test Object",
			Classification:    string(object.ClassEuclid),
			RequiredClearance: 3,
		})
		Expect(err).NotTo(HaveOccurred())

		req := asViewer(httptest.NewRequest(http.MethodPost, "/objects", bytes.NewReader(payload)), 5)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var created object.AnomalousObject
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeEmpty())
		Expect(created.CreatedBy).To(Equal("viewer-1"))
	})

	It("should reject an unauthenticated create", func() {
		req := httptest.NewRequest(http.MethodPost, "/objects", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should 404 an update of a missing object", func() {
		payload, err := json.Marshal(object.UpdateObjectDTO{
			Code:              "SCE-404",
			Name:              "Missing",
			Classification:    string(object.ClassSafe),
			RequiredClearance: 1,
		})
		Expect(err).NotTo(HaveOccurred())

		req := asViewer(httptest.NewRequest(http.MethodPut, "/objects/ghost", bytes.NewReader(payload)), 5)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should treat deleting a missing object as success", func() {
		req := asViewer(httptest.NewRequest(http.MethodDelete, "/objects/ghost", nil), 5)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
	})
})
