package object

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/auth"
	objectDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/object"
)

type RepositoryAPI interface {
	GetAll() ([]*objectDatamodel.AnomalousObject, error)
	GetByID(id string) (*objectDatamodel.AnomalousObject, error)
	Create(o *objectDatamodel.AnomalousObject) error
	Update(o *objectDatamodel.AnomalousObject) error
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

// ListObjects returns the catalog filtered to the viewer's clearance, in
// insertion order. Storage read failures degrade to an empty listing with a
// logged diagnostic; the caller never sees a hard failure on the read path.
func (s *Service) ListObjects(ctx context.Context, viewer *internal.SessionUser) []*AnomalousObject {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("object listing degraded to empty: storage read failed", "error", err)
		return []*AnomalousObject{}
	}

	objects := make([]*AnomalousObject, 0, len(records))
	for _, record := range records {
		o, convErr := FromDataModel(record)
		if convErr != nil {
			s.logger.Warn("skipping object with invalid stored fields", "object_id", record.ID, "error", convErr)
			continue
		}
		if !auth.HasClearance(viewer, o.RequiredClearance) {
			continue
		}
		objects = append(objects, o)
	}
	return objects
}

// GetObject returns one object. Records above the viewer's clearance are
// indistinguishable from absent ones.
func (s *Service) GetObject(ctx context.Context, viewer *internal.SessionUser, id string) (*AnomalousObject, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load object", err)
	}
	if record == nil {
		return nil, internal.ErrObjectNotFound
	}

	o, convErr := FromDataModel(record)
	if convErr != nil {
		return nil, convErr
	}
	if !auth.HasClearance(viewer, o.RequiredClearance) {
		return nil, internal.ErrObjectNotFound
	}
	return o, nil
}

func (s *Service) CreateObject(ctx context.Context, dto CreateObjectDTO, creator *internal.SessionUser) (*AnomalousObject, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &objectDatamodel.AnomalousObject{
		ID:                    uuid.NewString(),
		Code:                  dto.Code,
		Name:                  dto.Name,
		Classification:        dto.Classification,
		ContainmentProcedures: dto.ContainmentProcedures,
		Description:           dto.Description,
		CreatedBy:             creatorID(creator),
		RequiredClearance:     dto.RequiredClearance,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create object", "code", dto.Code, "error", err)
		return nil, internal.NewInternalError("failed to create object", err)
	}

	s.logger.Info("object created", "object_id", record.ID, "code", record.Code, "created_by", record.CreatedBy)
	return FromDataModel(record)
}

// UpdateObject replaces the record's fields and refreshes updated_at.
func (s *Service) UpdateObject(ctx context.Context, id string, dto UpdateObjectDTO) (*AnomalousObject, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load object", err)
	}
	if record == nil {
		return nil, internal.ErrObjectNotFound
	}

	record.Code = dto.Code
	record.Name = dto.Name
	record.Classification = dto.Classification
	record.ContainmentProcedures = dto.ContainmentProcedures
	record.Description = dto.Description
	record.RequiredClearance = dto.RequiredClearance
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update object", "object_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update object", err)
	}

	return FromDataModel(record)
}

// DeleteObject removes the record; deleting an absent id is not an error.
func (s *Service) DeleteObject(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete object", "object_id", id, "error", err)
		return internal.NewInternalError("failed to delete object", err)
	}
	return nil
}

func creatorID(creator *internal.SessionUser) string {
	if creator == nil {
		return ""
	}
	return creator.ID
}
