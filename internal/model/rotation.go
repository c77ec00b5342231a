package model

import (
	"fmt"

	pkgerrors "github.com/tomboulier/choix-stage-desar/pkg/errors"
)

// Duration rotation length category
type Duration string

const (
	DurationQuarter  Duration = "quarter"   // 3 months
	DurationHalfYear Duration = "half_year" // 6 months
)

// Durations every known category, in display order
var Durations = []Duration{DurationQuarter, DurationHalfYear}

// Months converts the category to a number of months.
// Any other value means the stored row is corrupt.
func (d Duration) Months() (int, error) {
	switch d {
	case DurationQuarter:
		return 3, nil
	case DurationHalfYear:
		return 6, nil
	default:
		return 0, fmt.Errorf("%w: unknown rotation duration %q", pkgerrors.ErrInvalidState, string(d))
	}
}

// Valid reports whether d is a known category
func (d Duration) Valid() bool {
	_, err := d.Months()
	return err == nil
}

// Rotation a placement ("stage") offering a fixed number of slots
//
// Several rotations may share a title (e.g. the same department offered in
// two different quarters).
type Rotation struct {
	RotationID string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rotation_id"`
	Title      string   `gorm:"type:varchar(200);not null"                     json:"title"`
	Duration   Duration `gorm:"type:varchar(16);not null"                      json:"duration"`
	TotalSlots int      `gorm:"not null;default:0"                             json:"total_slots"` // slots ever offered, not slots left
	BaseModel
}

// TableName table name
func (Rotation) TableName() string { return "rotations" }

// Months rotation length in months
func (r *Rotation) Months() (int, error) {
	return r.Duration.Months()
}

// AvailableSlots slots left given the current number of assignments.
// The count must come from the store at call time; it is never cached on the
// rotation.
func (r *Rotation) AvailableSlots(assigned int64) int {
	return r.TotalSlots - int(assigned)
}

// IsAvailable reports whether at least one slot is left
func (r *Rotation) IsAvailable(assigned int64) bool {
	return r.AvailableSlots(assigned) > 0
}

func (r *Rotation) String() string {
	return r.Title
}
