package post

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
	ListPosts(ctx context.Context, viewer *internal.SessionUser) []*Post
	GetPost(ctx context.Context, viewer *internal.SessionUser, id string) (*Post, error)
	CreatePost(ctx context.Context, dto CreatePostDTO, author *internal.SessionUser) (*Post, error)
	UpdatePost(ctx context.Context, id string, dto UpdatePostDTO) (*Post, error)
	DeletePost(ctx context.Context, id string) error
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

// ListPosts handles GET /posts
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	viewer, _ := internal.UserFromContext(r.Context())
	posts := h.Service.ListPosts(r.Context(), viewer)
	h.WriteJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	viewer, _ := internal.UserFromContext(r.Context())
	p, err := h.Service.GetPost(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// CreatePost handles POST /posts
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	author, ok := internal.UserFromContext(r.Context())
	if !ok || author == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreatePost(r.Context(), dto, author)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

// UpdatePost handles PUT /posts/{id}
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var dto UpdatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdatePost(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

// DeletePost handles DELETE /posts/{id}
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
