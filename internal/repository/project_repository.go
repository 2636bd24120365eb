package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID, withMembers bool) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx)
	if withMembers {
		query = query.Preload("Users")
	}
	if err := query.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByNameForUser lists the user's projects with the given name, newest first
func (r *GormProjectRepository) FindByNameForUser(ctx context.Context, name string, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project

	membership := r.db.Model(&models.ProjectMember{}).
		Select("1").
		Where("user_projects.project_id = projects.id").
		Where("user_projects.user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Users").
		Where("projects.name = ?", name).
		Where("EXISTS (?)", membership).
		Scopes(database.NewestFirst("projects")).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project's own columns; loaded members are left untouched
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete all memberships
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

// AddMember adds a user to a project
func (r *GormProjectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
	}).Error
}

// RemoveMember removes a user from a project
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}
