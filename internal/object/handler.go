package object

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/transport"
	"github.com/sce-foundation/sce-portal/pkg/logger"
)

type ServiceAPI interface {
	ListObjects(ctx context.Context, viewer *internal.SessionUser) []*AnomalousObject
	GetObject(ctx context.Context, viewer *internal.SessionUser, id string) (*AnomalousObject, error)
	CreateObject(ctx context.Context, dto CreateObjectDTO, creator *internal.SessionUser) (*AnomalousObject, error)
	UpdateObject(ctx context.Context, id string, dto UpdateObjectDTO) (*AnomalousObject, error)
	DeleteObject(ctx context.Context, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// ListObjects handles GET /objects
func (h *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	viewer, _ := internal.UserFromContext(r.Context())
	objects := h.Service.ListObjects(r.Context(), viewer)
	h.WriteJSON(w, http.StatusOK, objects)
}

// GetObject handles GET /objects/{id}
func (h *Handler) GetObject(w http.ResponseWriter, r *http.Request) {
	viewer, _ := internal.UserFromContext(r.Context())
	o, err := h.Service.GetObject(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, o)
}

// CreateObject handles POST /objects
func (h *Handler) CreateObject(w http.ResponseWriter, r *http.Request) {
	creator, ok := internal.UserFromContext(r.Context())
	if !ok || creator == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateObjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.Service.CreateObject(r.Context(), dto, creator)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, o)
}

// UpdateObject handles PUT /objects/{id}
func (h *Handler) UpdateObject(w http.ResponseWriter, r *http.Request) {
	var dto UpdateObjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.Service.UpdateObject(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, o)
}

// DeleteObject handles DELETE /objects/{id}
func (h *Handler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteObject(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
