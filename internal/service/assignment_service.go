package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/model"
	"github.com/tomboulier/choix-stage-desar/internal/repository"
	"github.com/tomboulier/choix-stage-desar/pkg/metrics"
)

// ── assignment errors ──

var (
	ErrCapacityExceeded = errors.New("rotation has no slot left")
	ErrAlreadyAssigned  = errors.New("intern already assigned to this rotation")
)

// CapacityExceededError the target rotation is full.
// errors.Is(err, ErrCapacityExceeded) holds.
type CapacityExceededError struct {
	RotationID string
	Title      string
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("rotation %q has no slot left", e.Title)
}

// Is matches ErrCapacityExceeded
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// AssignmentService assignment business logic.
// Assign is the only way an assignment row gets created.
type AssignmentService interface {
	Assign(ctx context.Context, internID, rotationID string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo     *repository.Repository
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewAssignmentService creates an AssignmentService
func NewAssignmentService(repo *repository.Repository, recorder metrics.Recorder, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, recorder: recorder, logger: logger}
}

// ────────────────────── Assign ──────────────────────

// Assign checks the rotation's free slots and inserts the assignment in one
// transaction. The rotation row is held FOR UPDATE between the count and the
// insert, so two concurrent requests for the last slot serialize and the
// second one sees the rotation full.
func (s *assignmentService) Assign(ctx context.Context, internID, rotationID string) (*dto.AssignmentResponse, error) {
	var (
		intern     *model.Intern
		rotation   *model.Rotation
		assignment *model.Assignment
	)

	err := withTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		var err error
		intern, err = txRepo.Intern.GetByID(ctx, internID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInternNotFound
			}
			s.logger.Error("failed to get intern", zap.String("intern_id", internID), zap.Error(err))
			return err
		}

		rotation, err = txRepo.Rotation.GetByIDForUpdate(ctx, rotationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRotationNotFound
			}
			s.logger.Error("failed to lock rotation", zap.String("rotation_id", rotationID), zap.Error(err))
			return err
		}

		assigned, err := txRepo.Assignment.CountByRotation(ctx, rotationID)
		if err != nil {
			s.logger.Error("failed to count assignments", zap.String("rotation_id", rotationID), zap.Error(err))
			return err
		}
		if rotation.AvailableSlots(assigned) <= 0 {
			return &CapacityExceededError{RotationID: rotation.RotationID, Title: rotation.Title}
		}

		exists, err := txRepo.Assignment.Exists(ctx, internID, rotationID)
		if err != nil {
			s.logger.Error("failed to check assignment", zap.Error(err))
			return err
		}
		if exists {
			return ErrAlreadyAssigned
		}

		assignment = &model.Assignment{
			InternID:   intern.InternID,
			RotationID: rotation.RotationID,
		}
		if err := txRepo.Assignment.Create(ctx, assignment); err != nil {
			s.logger.Error("failed to create assignment", zap.Error(err))
			return err
		}
		return nil
	})

	switch {
	case err == nil:
		s.recorder.Assignment(metrics.AssignmentCreated)
	case errors.Is(err, ErrCapacityExceeded):
		s.recorder.Assignment(metrics.AssignmentRejectedCapacity)
		s.logger.Info("assignment rejected: rotation full",
			zap.String("intern_id", internID), zap.String("rotation_id", rotationID))
		return nil, err
	case errors.Is(err, ErrAlreadyAssigned):
		s.recorder.Assignment(metrics.AssignmentRejectedDuplicate)
		return nil, err
	default:
		return nil, err
	}

	assignment.Intern = intern
	assignment.Rotation = rotation
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.List(ctx, repository.AssignmentFilter{
		InternID:   req.InternID,
		RotationID: req.RotationID,
	})
	if err != nil {
		s.logger.Error("failed to list assignments", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// ── helpers ──

func toAssignmentResponse(a *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:         a.AssignmentID,
		InternID:   a.InternID,
		RotationID: a.RotationID,
		CreatedAt:  a.CreatedAt.Format(timeLayout),
	}
	if a.Intern != nil {
		resp.InternName = a.Intern.FullName()
		resp.InternEmail = a.Intern.Email
	}
	if a.Rotation != nil {
		resp.RotationTitle = a.Rotation.Title
	}
	return resp
}
