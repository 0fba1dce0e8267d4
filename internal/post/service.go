package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/auth"
	postDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/post"
)

type RepositoryAPI interface {
	GetAll() ([]*postDatamodel.Post, error)
	GetByID(id string) (*postDatamodel.Post, error)
	Create(p *postDatamodel.Post) error
	Update(p *postDatamodel.Post) error
	Delete(id string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListPosts returns posts the viewer's clearance allows, in insertion order.
// Storage read failures degrade to an empty listing with a logged diagnostic.
func (s *Service) ListPosts(ctx context.Context, viewer *internal.SessionUser) []*Post {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("post listing degraded to empty: storage read failed", "error", err)
		return []*Post{}
	}

	posts := make([]*Post, 0, len(records))
	for _, record := range records {
		p, convErr := FromDataModel(record)
		if convErr != nil {
			s.logger.Warn("skipping post with invalid stored fields", "post_id", record.ID, "error", convErr)
			continue
		}
		if !auth.HasClearance(viewer, p.RequiredClearance) {
			continue
		}
		posts = append(posts, p)
	}
	return posts
}

func (s *Service) GetPost(ctx context.Context, viewer *internal.SessionUser, id string) (*Post, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load post", err)
	}
	if record == nil {
		return nil, internal.ErrPostNotFound
	}

	p, convErr := FromDataModel(record)
	if convErr != nil {
		return nil, convErr
	}
	if !auth.HasClearance(viewer, p.RequiredClearance) {
		return nil, internal.ErrPostNotFound
	}
	return p, nil
}

// CreatePost publishes a post authored by the viewer. Administrators,
// moderators and researchers may publish; the author name is denormalized
// onto the record at creation time.
func (s *Service) CreatePost(ctx context.Context, dto CreatePostDTO, author *internal.SessionUser) (*Post, error) {
	if author == nil || !auth.CanPublishPosts(author) {
		return nil, internal.ErrUnauthorizedAccess
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &postDatamodel.Post{
		ID:                uuid.NewString(),
		Title:             dto.Title,
		Content:           dto.Content,
		AuthorID:          author.ID,
		AuthorName:        author.Username,
		Category:          dto.Category,
		RequiredClearance: dto.RequiredClearance,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create post", "title", dto.Title, "error", err)
		return nil, internal.NewInternalError("failed to create post", err)
	}

	s.logger.Info("post created", "post_id", record.ID, "author_id", record.AuthorID, "category", record.Category)
	return FromDataModel(record)
}

func (s *Service) UpdatePost(ctx context.Context, id string, dto UpdatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load post", err)
	}
	if record == nil {
		return nil, internal.ErrPostNotFound
	}

	record.Title = dto.Title
	record.Content = dto.Content
	record.Category = dto.Category
	record.RequiredClearance = dto.RequiredClearance
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update post", "post_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update post", err)
	}

	return FromDataModel(record)
}

// DeletePost removes the record; deleting an absent id is not an error.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete post", "post_id", id, "error", err)
		return internal.NewInternalError("failed to delete post", err)
	}
	return nil
}
