package model

import (
	"fmt"
	"time"
)

// Assignment links one intern to one rotation ("choix")
//
// Rows are never updated; they disappear when their intern or rotation is
// deleted (ON DELETE CASCADE).
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	InternID     string    `gorm:"type:uuid;not null;index"                       json:"intern_id"`
	RotationID   string    `gorm:"type:uuid;not null;index"                       json:"rotation_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// relations
	Intern   *Intern   `gorm:"foreignKey:InternID;references:InternID;constraint:OnDelete:CASCADE"       json:"intern,omitempty"`
	Rotation *Rotation `gorm:"foreignKey:RotationID;references:RotationID;constraint:OnDelete:CASCADE" json:"rotation,omitempty"`
}

// TableName table name
func (Assignment) TableName() string { return "assignments" }

func (a *Assignment) String() string {
	if a.Intern == nil || a.Rotation == nil {
		return a.AssignmentID
	}
	return fmt.Sprintf("%s chose %s", a.Intern, a.Rotation)
}
