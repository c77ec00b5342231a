package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tomboulier/choix-stage-desar/internal/model"
)

// AssignmentFilter optional filters for AssignmentRepository.List
type AssignmentFilter struct {
	InternID   string
	RotationID string
}

// AssignmentRepository assignment data access.
// There is no update or delete: rows only leave through cascades.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	CountByRotation(ctx context.Context, rotationID string) (int64, error)
	CountByIntern(ctx context.Context, internID string) (int64, error)
	Exists(ctx context.Context, internID, rotationID string) (bool, error)
	// List includes Intern and Rotation
	List(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(assignment).Error
}

func (r *assignmentRepo) CountByRotation(ctx context.Context, rotationID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("rotation_id = ?", rotationID).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) CountByIntern(ctx context.Context, internID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("intern_id = ?", internID).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) Exists(ctx context.Context, internID, rotationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("intern_id = ? AND rotation_id = ?", internID, rotationID).
		Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepo) List(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	var assignments []model.Assignment
	db := r.db.WithContext(ctx).
		Preload("Intern").Preload("Rotation")

	if filter.InternID != "" {
		db = db.Where("intern_id = ?", filter.InternID)
	}
	if filter.RotationID != "" {
		db = db.Where("rotation_id = ?", filter.RotationID)
	}

	err := db.Order("created_at ASC").Find(&assignments).Error
	return assignments, err
}
