package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);index;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Users []User `gorm:"many2many:user_projects;constraint:OnDelete:CASCADE" json:"users,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasMember reports whether userID is among the loaded members.
func (p *Project) HasMember(userID uuid.UUID) bool {
	for _, u := range p.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}
