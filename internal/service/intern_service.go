package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tomboulier/choix-stage-desar/internal/dto"
	"github.com/tomboulier/choix-stage-desar/internal/model"
	"github.com/tomboulier/choix-stage-desar/internal/repository"
	"github.com/tomboulier/choix-stage-desar/pkg/metrics"
)

// ── intern errors ──

var (
	ErrInternNotFound  = errors.New("intern not found")
	ErrAmbiguousLookup = errors.New("multiple interns share this identifier")
)

// InternService intern business logic
type InternService interface {
	Create(ctx context.Context, req *dto.CreateInternRequest) (*dto.InternResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InternResponse, error)
	// Resolve finds the single intern carrying the lookup token
	Resolve(ctx context.Context, token string) (*dto.InternResponse, error)
	List(ctx context.Context, req *dto.InternListRequest) ([]dto.InternResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateInternRequest) (*dto.InternResponse, error)
	Delete(ctx context.Context, id string) error
}

type internService struct {
	repo     *repository.Repository
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewInternService creates an InternService
func NewInternService(repo *repository.Repository, recorder metrics.Recorder, logger *zap.Logger) InternService {
	return &internService{repo: repo, recorder: recorder, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *internService) Create(ctx context.Context, req *dto.CreateInternRequest) (*dto.InternResponse, error) {
	intern := &model.Intern{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := s.repo.Intern.Create(ctx, intern); err != nil {
		s.logger.Error("failed to create intern", zap.Error(err))
		return nil, err
	}

	return toInternResponse(intern), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *internService) GetByID(ctx context.Context, id string) (*dto.InternResponse, error) {
	intern, err := s.getIntern(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInternResponse(intern), nil
}

// ────────────────────── Resolve ──────────────────────

func (s *internService) Resolve(ctx context.Context, token string) (*dto.InternResponse, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		s.recorder.Lookup(metrics.LookupNotFound)
		return nil, ErrInternNotFound
	}

	// two rows are enough to tell "unique" from "ambiguous"
	interns, err := s.repo.Intern.ListByLookupToken(ctx, parsed.String(), 2)
	if err != nil {
		s.logger.Error("failed to look up intern", zap.Error(err))
		return nil, err
	}

	switch len(interns) {
	case 0:
		s.recorder.Lookup(metrics.LookupNotFound)
		return nil, ErrInternNotFound
	case 1:
		s.recorder.Lookup(metrics.LookupFound)
		return toInternResponse(&interns[0]), nil
	default:
		s.recorder.Lookup(metrics.LookupAmbiguous)
		s.logger.Warn("lookup token shared by several interns",
			zap.String("lookup_token", parsed.String()),
			zap.String("first_intern_id", interns[0].InternID),
			zap.String("second_intern_id", interns[1].InternID),
		)
		return nil, ErrAmbiguousLookup
	}
}

// ────────────────────── List ──────────────────────

func (s *internService) List(ctx context.Context, req *dto.InternListRequest) ([]dto.InternResponse, int64, error) {
	interns, total, err := s.repo.Intern.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list interns", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.InternResponse, 0, len(interns))
	for i := range interns {
		result = append(result, *toInternResponse(&interns[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *internService) Update(ctx context.Context, id string, req *dto.UpdateInternRequest) (*dto.InternResponse, error) {
	intern, err := s.getIntern(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LastName != nil {
		intern.LastName = *req.LastName
	}
	if req.FirstName != nil {
		intern.FirstName = *req.FirstName
	}
	if req.Email != nil {
		intern.Email = *req.Email
	}
	if req.Phone != nil {
		intern.Phone = *req.Phone
	}

	if err := s.repo.Intern.Update(ctx, intern); err != nil {
		s.logger.Error("failed to update intern", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toInternResponse(intern), nil
}

// ────────────────────── Delete ──────────────────────

func (s *internService) Delete(ctx context.Context, id string) error {
	if _, err := s.getIntern(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Intern.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete intern", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── helpers ──

func (s *internService) getIntern(ctx context.Context, id string) (*model.Intern, error) {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		s.logger.Error("failed to get intern", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return intern, nil
}

func toInternResponse(intern *model.Intern) *dto.InternResponse {
	return &dto.InternResponse{
		ID:          intern.InternID,
		LastName:    intern.LastName,
		FirstName:   intern.FirstName,
		FullName:    intern.FullName(),
		Email:       intern.Email,
		Phone:       intern.Phone,
		LookupToken: intern.LookupToken,
		CreatedAt:   intern.CreatedAt.Format(timeLayout),
		UpdatedAt:   intern.UpdatedAt.Format(timeLayout),
	}
}
