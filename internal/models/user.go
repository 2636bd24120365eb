package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string         `gorm:"type:varchar(40);not null" json:"firstName"`
	LastName  string         `gorm:"type:varchar(40);not null" json:"lastName"`
	Email     string         `gorm:"type:varchar(255);index;not null" json:"email"`
	Location  string         `gorm:"type:varchar(255);not null" json:"location"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

// BeforeCreate assigns a fresh id unless the caller already chose one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
