package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate of every repository
type Repository struct {
	db *gorm.DB

	Rotation   RotationRepository
	Intern     InternRepository
	Assignment AssignmentRepository
}

// NewRepository builds the aggregate over db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Rotation:   NewRotationRepo(db),
		Intern:     NewInternRepo(db),
		Assignment: NewAssignmentRepo(db),
	}
}

// BeginTx starts a transaction.
// Returns a nil tx when the aggregate has no database behind it (tests
// assembling mock repositories); callers treat a nil tx as "no transaction".
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx returns an aggregate whose repositories run inside tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
