package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tomboulier/choix-stage-desar/internal/repository"
	"github.com/tomboulier/choix-stage-desar/pkg/metrics"
)

// Service aggregate of every service
type Service struct {
	Rotation   RotationService
	Intern     InternService
	Assignment AssignmentService
	Export     ExportService
}

// NewService builds the aggregate
func NewService(
	repo *repository.Repository,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		Rotation:   NewRotationService(repo, logger),
		Intern:     NewInternService(repo, recorder, logger),
		Assignment: NewAssignmentService(repo, recorder, logger),
		Export:     NewExportService(repo, logger),
	}
}

// withTx runs fn against a transactional copy of repo.
// An error from fn rolls back; a panic rolls back and is re-raised.
func withTx(ctx context.Context, repo *repository.Repository, logger *zap.Logger, fn func(txRepo *repository.Repository) error) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			logger.Error("failed to commit transaction", zap.Error(err))
			return err
		}
	}
	return nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
