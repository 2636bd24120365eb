package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByUserAndStatus returns a reduced projection of the user's tasks:
// only the columns a board listing shows, with the project's id and name.
func (r *GormTaskRepository) ListByUserAndStatus(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("tasks.id", "tasks.name", "tasks.description", "tasks.status", "tasks.created_at", "tasks.project_id").
		Where("tasks.user_id = ? AND tasks.status = ?", filter.UserID, filter.Status).
		Scopes(database.NewestFirst("tasks"), database.Paginate(filter.Pagination)).
		Preload("Project", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// CountByUserAndStatus counts the user's tasks in the given status
func (r *GormTaskRepository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// Update updates a task; preloaded user and project rows are not rewritten
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error
}
