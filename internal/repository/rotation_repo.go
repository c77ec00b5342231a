package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tomboulier/choix-stage-desar/internal/model"
)

// RotationRepository rotation data access
type RotationRepository interface {
	Create(ctx context.Context, rotation *model.Rotation) error
	GetByID(ctx context.Context, id string) (*model.Rotation, error)
	// GetByIDForUpdate locks the row with SELECT ... FOR UPDATE.
	// Only meaningful on a repository obtained through Repository.WithTx.
	GetByIDForUpdate(ctx context.Context, id string) (*model.Rotation, error)
	List(ctx context.Context) ([]model.Rotation, error)
	Update(ctx context.Context, rotation *model.Rotation) error
	Delete(ctx context.Context, id string) error
}

type rotationRepo struct {
	db *gorm.DB
}

// NewRotationRepo creates a RotationRepository
func NewRotationRepo(db *gorm.DB) RotationRepository {
	return &rotationRepo{db: db}
}

func (r *rotationRepo) Create(ctx context.Context, rotation *model.Rotation) error {
	return r.db.WithContext(ctx).Create(rotation).Error
}

func (r *rotationRepo) GetByID(ctx context.Context, id string) (*model.Rotation, error) {
	var rotation model.Rotation
	err := r.db.WithContext(ctx).
		Where("rotation_id = ?", id).
		First(&rotation).Error
	if err != nil {
		return nil, err
	}
	return &rotation, nil
}

func (r *rotationRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Rotation, error) {
	var rotation model.Rotation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("rotation_id = ?", id).
		First(&rotation).Error
	if err != nil {
		return nil, err
	}
	return &rotation, nil
}

// List every rotation ordered by title
func (r *rotationRepo) List(ctx context.Context) ([]model.Rotation, error) {
	var rotations []model.Rotation
	err := r.db.WithContext(ctx).
		Order("title ASC, rotation_id ASC").
		Find(&rotations).Error
	return rotations, err
}

func (r *rotationRepo) Update(ctx context.Context, rotation *model.Rotation) error {
	return r.db.WithContext(ctx).
		Model(rotation).
		Select("title", "duration", "total_slots", "updated_at").
		Updates(rotation).Error
}

// Delete removes the rotation; its assignments go with it (ON DELETE CASCADE)
func (r *rotationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("rotation_id = ?", id).
		Delete(&model.Rotation{}).Error
}
