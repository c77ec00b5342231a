package model

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Intern a resident choosing rotations, reached through their lookup token
type Intern struct {
	InternID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"intern_id"`
	LastName    string `gorm:"type:varchar(200);not null;default:''"          json:"last_name"`
	FirstName   string `gorm:"type:varchar(200);not null;default:''"          json:"first_name"`
	Email       string `gorm:"type:varchar(200);not null;default:''"          json:"email"`
	Phone       string `gorm:"type:varchar(200);not null;default:''"          json:"phone"`
	LookupToken string `gorm:"type:uuid;not null;index"                       json:"lookup_token"` // random, set once at creation
	BaseModel
}

// TableName table name
func (Intern) TableName() string { return "interns" }

// BeforeCreate assigns a random lookup token unless one was provided
func (i *Intern) BeforeCreate(_ *gorm.DB) error {
	if i.LookupToken == "" {
		i.LookupToken = uuid.NewString()
	}
	return nil
}

// FullName "First Last"
func (i *Intern) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

func (i *Intern) String() string {
	return i.FullName()
}
