package models

import "github.com/google/uuid"

// ProjectMember is the user_projects junction row. The pair is the primary
// key, so a user can belong to a project at most once.
type ProjectMember struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"projectId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"userId"`
}

func (ProjectMember) TableName() string { return "user_projects" }
