package user

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
	ListUsers(ctx context.Context) ([]*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	Approve(ctx context.Context, id string, actor *internal.SessionUser) (*User, error)
	Reject(ctx context.Context, id string, actor *internal.SessionUser) error
	Block(ctx context.Context, id string, actor *internal.SessionUser) (*User, error)
	Reactivate(ctx context.Context, id string, actor *internal.SessionUser) (*User, error)
	UpdateUser(ctx context.Context, id string, dto UpdateUserDTO, actor *internal.SessionUser) (*User, error)
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

// ListUsers handles GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /admin/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// Approve handles POST /admin/users/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, _ := internal.UserFromContext(r.Context())
	u, err := h.Service.Approve(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// Reject handles POST /admin/users/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, _ := internal.UserFromContext(r.Context())
	if err := h.Service.Reject(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Block handles POST /admin/users/{id}/block
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	actor, _ := internal.UserFromContext(r.Context())
	u, err := h.Service.Block(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// Reactivate handles POST /admin/users/{id}/reactivate
func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	actor, _ := internal.UserFromContext(r.Context())
	u, err := h.Service.Reactivate(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// UpdateUser handles PATCH /admin/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor, _ := internal.UserFromContext(r.Context())
	u, err := h.Service.UpdateUser(r.Context(), chi.URLParam(r, "id"), dto, actor)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}
