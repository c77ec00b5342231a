package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tomboulier/choix-stage-desar/internal/model"
)

// InternRepository intern data access
type InternRepository interface {
	Create(ctx context.Context, intern *model.Intern) error
	GetByID(ctx context.Context, id string) (*model.Intern, error)
	// ListByLookupToken returns at most limit interns carrying token.
	// Tokens are unique by construction but not by constraint.
	ListByLookupToken(ctx context.Context, token string, limit int) ([]model.Intern, error)
	List(ctx context.Context, offset, limit int) ([]model.Intern, int64, error)
	Update(ctx context.Context, intern *model.Intern) error
	Delete(ctx context.Context, id string) error
}

type internRepo struct {
	db *gorm.DB
}

// NewInternRepo creates an InternRepository
func NewInternRepo(db *gorm.DB) InternRepository {
	return &internRepo{db: db}
}

func (r *internRepo) Create(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).Create(intern).Error
}

func (r *internRepo) GetByID(ctx context.Context, id string) (*model.Intern, error) {
	var intern model.Intern
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", id).
		First(&intern).Error
	if err != nil {
		return nil, err
	}
	return &intern, nil
}

func (r *internRepo) ListByLookupToken(ctx context.Context, token string, limit int) ([]model.Intern, error) {
	var interns []model.Intern
	err := r.db.WithContext(ctx).
		Where("lookup_token = ?", token).
		Order("created_at ASC").
		Limit(limit).
		Find(&interns).Error
	return interns, err
}

func (r *internRepo) List(ctx context.Context, offset, limit int) ([]model.Intern, int64, error) {
	var interns []model.Intern
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Intern{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC, intern_id ASC").
		Offset(offset).Limit(limit).
		Find(&interns).Error; err != nil {
		return nil, 0, err
	}

	return interns, total, nil
}

// Update writes the identity fields; lookup_token is never rewritten
func (r *internRepo) Update(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).
		Model(intern).
		Select("last_name", "first_name", "email", "phone", "updated_at").
		Updates(intern).Error
}

// Delete removes the intern; their assignments go with them (ON DELETE CASCADE)
func (r *internRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("intern_id = ?", id).
		Delete(&model.Intern{}).Error
}
