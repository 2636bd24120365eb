package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo     TaskStatus = "TODO"
	TaskStatusDoing    TaskStatus = "DOING"
	TaskStatusInReview TaskStatus = "IN_REVIEW"
	TaskStatusDone     TaskStatus = "DONE"
	TaskStatusDropped  TaskStatus = "DROPPED"
)

// TaskStatuses lists every accepted status in workflow order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusDoing,
	TaskStatusInReview,
	TaskStatusDone,
	TaskStatusDropped,
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"projectId"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	return nil
}
