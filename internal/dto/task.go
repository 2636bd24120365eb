package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	UserID      *uuid.UUID        `json:"userId"`
	ProjectID   *uuid.UUID        `json:"projectId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	User        *UserDTO          `json:"user,omitempty"`
	Project     *ProjectDTO       `json:"project,omitempty"`
}

// TaskWithRelationsDTO is a task whose user and project were requested.
// A reference that no longer resolves is rendered as null.
type TaskWithRelationsDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	UserID      *uuid.UUID        `json:"userId"`
	ProjectID   *uuid.UUID        `json:"projectId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	User        *UserDTO          `json:"user"`
	Project     *ProjectDTO       `json:"project"`
}

// ProjectRefDTO is the minimal project shape embedded in task summaries
type ProjectRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TaskSummaryDTO represents a task in list responses (minimal data)
type TaskSummaryDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Project     *ProjectRefDTO    `json:"project"`
}

// TaskCountResponse is returned by the count endpoint
type TaskCountResponse struct {
	Count int64 `json:"count"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		UserID:      task.UserID,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include user if preloaded
	if task.User != nil {
		user := ToUserDTO(*task.User)
		dto.User = &user
	}

	// Include project if preloaded
	if task.Project != nil {
		project := ToProjectDTO(*task.Project)
		dto.Project = &project
	}

	return dto
}

// ToTaskWithRelationsDTO converts a task loaded with both relations
func ToTaskWithRelationsDTO(task models.Task) TaskWithRelationsDTO {
	base := ToTaskDTO(task)
	return TaskWithRelationsDTO{
		ID:          base.ID,
		Name:        base.Name,
		Description: base.Description,
		Status:      base.Status,
		UserID:      base.UserID,
		ProjectID:   base.ProjectID,
		CreatedAt:   base.CreatedAt,
		UpdatedAt:   base.UpdatedAt,
		User:        base.User,
		Project:     base.Project,
	}
}

// ToTaskSummaryDTO converts a projected Task model to TaskSummaryDTO
func ToTaskSummaryDTO(task models.Task) TaskSummaryDTO {
	dto := TaskSummaryDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
	}

	if task.Project != nil {
		dto.Project = &ProjectRefDTO{
			ID:   task.Project.ID,
			Name: task.Project.Name,
		}
	}

	return dto
}

// ToTaskSummaryDTOs converts a page of tasks, never returning nil
func ToTaskSummaryDTOs(tasks []models.Task) []TaskSummaryDTO {
	items := make([]TaskSummaryDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskSummaryDTO(task)
	}
	return items
}
