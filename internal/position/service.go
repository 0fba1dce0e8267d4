package position

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sce-foundation/sce-portal/internal"
	positionDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/position"
)

type RepositoryAPI interface {
	GetAll() ([]*positionDatamodel.Position, error)
	GetByID(id string) (*positionDatamodel.Position, error)
	Create(p *positionDatamodel.Position) error
	Update(p *positionDatamodel.Position) error
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

// ListPositions returns all positions in insertion order. Positions carry no
// clearance gate for viewing; storage read failures degrade to empty.
func (s *Service) ListPositions(ctx context.Context) []*Position {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("position listing degraded to empty: storage read failed", "error", err)
		return []*Position{}
	}

	positions := make([]*Position, 0, len(records))
	for _, record := range records {
		positions = append(positions, FromDataModel(record))
	}
	return positions
}

func (s *Service) GetPosition(ctx context.Context, id string) (*Position, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load position", err)
	}
	if record == nil {
		return nil, internal.ErrPositionNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) CreatePosition(ctx context.Context, dto CreatePositionDTO) (*Position, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Position{
		ID:             uuid.NewString(),
		Name:           dto.Name,
		Description:    dto.Description,
		ClearanceLevel: dto.ClearanceLevel,
		Permissions:    dto.Permissions,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ToDataModel(p)); err != nil {
		s.logger.Error("failed to create position", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create position", err)
	}

	s.logger.Info("position created", "position_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) UpdatePosition(ctx context.Context, id string, dto UpdatePositionDTO) (*Position, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetPosition(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = dto.Name
	existing.Description = dto.Description
	existing.ClearanceLevel = dto.ClearanceLevel
	existing.Permissions = dto.Permissions

	if err := s.repo.Update(ToDataModel(existing)); err != nil {
		s.logger.Error("failed to update position", "position_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update position", err)
	}

	return existing, nil
}

// DeletePosition removes the record; deleting an absent id is not an error.
func (s *Service) DeletePosition(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete position", "position_id", id, "error", err)
		return internal.NewInternalError("failed to delete position", err)
	}
	return nil
}
