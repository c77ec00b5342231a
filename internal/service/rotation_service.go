package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/model"
	"github.com/tomboulier/choix-stage-desar/internal/repository"
)

// ── rotation errors ──

var (
	ErrRotationNotFound   = errors.New("rotation not found")
	ErrInvalidDuration    = errors.New("invalid rotation duration")
	ErrNegativeSlots      = errors.New("total slots must not be negative")
	ErrSlotsBelowAssigned = errors.New("total slots below current number of assignments")
)

// RotationService rotation business logic and availability queries
type RotationService interface {
	Create(ctx context.Context, req *dto.CreateRotationRequest) (*dto.RotationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RotationResponse, error)
	// ListAll every rotation ordered by title
	ListAll(ctx context.Context) ([]dto.RotationResponse, error)
	// ListAvailable rotations with at least one free slot, ordered by title
	ListAvailable(ctx context.Context) ([]dto.RotationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRotationRequest) (*dto.RotationResponse, error)
	Delete(ctx context.Context, id string) error
	AvailableSlots(ctx context.Context, id string) (int, error)
}

type rotationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRotationService creates a RotationService
func NewRotationService(repo *repository.Repository, logger *zap.Logger) RotationService {
	return &rotationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *rotationService) Create(ctx context.Context, req *dto.CreateRotationRequest) (*dto.RotationResponse, error) {
	rotation := &model.Rotation{
		Title:      req.Title,
		Duration:   model.Duration(req.Duration),
		TotalSlots: req.TotalSlots,
	}
	if !rotation.Duration.Valid() {
		return nil, ErrInvalidDuration
	}
	if rotation.TotalSlots < 0 {
		return nil, ErrNegativeSlots
	}

	if err := s.repo.Rotation.Create(ctx, rotation); err != nil {
		s.logger.Error("failed to create rotation", zap.Error(err))
		return nil, err
	}

	return s.toRotationResponse(rotation, 0)
}

// ────────────────────── GetByID ──────────────────────

func (s *rotationService) GetByID(ctx context.Context, id string) (*dto.RotationResponse, error) {
	rotation, err := s.getRotation(ctx, id)
	if err != nil {
		return nil, err
	}

	assigned, err := s.repo.Assignment.CountByRotation(ctx, rotation.RotationID)
	if err != nil {
		s.logger.Error("failed to count assignments", zap.String("rotation_id", id), zap.Error(err))
		return nil, err
	}

	return s.toRotationResponse(rotation, assigned)
}

// ────────────────────── ListAll / ListAvailable ──────────────────────

func (s *rotationService) ListAll(ctx context.Context) ([]dto.RotationResponse, error) {
	return s.list(ctx, false)
}

func (s *rotationService) ListAvailable(ctx context.Context) ([]dto.RotationResponse, error) {
	return s.list(ctx, true)
}

// list scans every rotation and counts its assignments one by one, so the
// result reflects the store at query time.
func (s *rotationService) list(ctx context.Context, onlyAvailable bool) ([]dto.RotationResponse, error) {
	rotations, err := s.repo.Rotation.List(ctx)
	if err != nil {
		s.logger.Error("failed to list rotations", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RotationResponse, 0, len(rotations))
	for i := range rotations {
		rotation := &rotations[i]

		assigned, err := s.repo.Assignment.CountByRotation(ctx, rotation.RotationID)
		if err != nil {
			s.logger.Error("failed to count assignments", zap.String("rotation_id", rotation.RotationID), zap.Error(err))
			return nil, err
		}
		if onlyAvailable && !rotation.IsAvailable(assigned) {
			continue
		}

		resp, err := s.toRotationResponse(rotation, assigned)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update locks the rotation so that lowering total_slots cannot race with a
// concurrent assignment and leave the rotation over-booked.
func (s *rotationService) Update(ctx context.Context, id string, req *dto.UpdateRotationRequest) (*dto.RotationResponse, error) {
	var (
		rotation *model.Rotation
		assigned int64
	)

	err := withTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		var err error
		rotation, err = txRepo.Rotation.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRotationNotFound
			}
			s.logger.Error("failed to get rotation", zap.String("id", id), zap.Error(err))
			return err
		}

		if req.Title != nil {
			rotation.Title = *req.Title
		}
		if req.Duration != nil {
			d := model.Duration(*req.Duration)
			if !d.Valid() {
				return ErrInvalidDuration
			}
			rotation.Duration = d
		}

		assigned, err = txRepo.Assignment.CountByRotation(ctx, id)
		if err != nil {
			s.logger.Error("failed to count assignments", zap.String("rotation_id", id), zap.Error(err))
			return err
		}
		if req.TotalSlots != nil {
			if int64(*req.TotalSlots) < assigned {
				return ErrSlotsBelowAssigned
			}
			rotation.TotalSlots = *req.TotalSlots
		}

		if err := txRepo.Rotation.Update(ctx, rotation); err != nil {
			s.logger.Error("failed to update rotation", zap.String("id", id), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toRotationResponse(rotation, assigned)
}

// ────────────────────── Delete ──────────────────────

func (s *rotationService) Delete(ctx context.Context, id string) error {
	if _, err := s.getRotation(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Rotation.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete rotation", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── AvailableSlots ──────────────────────

func (s *rotationService) AvailableSlots(ctx context.Context, id string) (int, error) {
	rotation, err := s.getRotation(ctx, id)
	if err != nil {
		return 0, err
	}

	assigned, err := s.repo.Assignment.CountByRotation(ctx, id)
	if err != nil {
		s.logger.Error("failed to count assignments", zap.String("rotation_id", id), zap.Error(err))
		return 0, err
	}

	return rotation.AvailableSlots(assigned), nil
}

// ── helpers ──

func (s *rotationService) getRotation(ctx context.Context, id string) (*model.Rotation, error) {
	rotation, err := s.repo.Rotation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRotationNotFound
		}
		s.logger.Error("failed to get rotation", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return rotation, nil
}

// toRotationResponse fails with ErrInvalidState when the stored duration is corrupt
func (s *rotationService) toRotationResponse(rotation *model.Rotation, assigned int64) (*dto.RotationResponse, error) {
	months, err := rotation.Months()
	if err != nil {
		s.logger.Error("corrupt rotation row",
			zap.String("rotation_id", rotation.RotationID),
			zap.String("duration", string(rotation.Duration)),
			zap.Error(err),
		)
		return nil, err
	}

	available := rotation.AvailableSlots(assigned)
	return &dto.RotationResponse{
		ID:             rotation.RotationID,
		Title:          rotation.Title,
		Duration:       string(rotation.Duration),
		Months:         months,
		TotalSlots:     rotation.TotalSlots,
		AvailableSlots: available,
		IsAvailable:    available > 0,
		CreatedAt:      rotation.CreatedAt.Format(timeLayout),
		UpdatedAt:      rotation.UpdatedAt.Format(timeLayout),
	}, nil
}
