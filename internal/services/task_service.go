package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrTaskNotFound      = errors.New("task does not exist")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	users    *UserService
	projects *ProjectService
	log      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, users *UserService, projects *ProjectService, log *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		users:    users,
		projects: projects,
		log:      log,
	}
}

// CreateTaskInput represents input for creating a task. Both references
// are mandatory.
type CreateTaskInput struct {
	Name        string
	Description string
	Status      models.TaskStatus
	UserID      uuid.UUID
	ProjectID   uuid.UUID
}

// UpdateTaskInput represents input for updating a task; nil fields are left unchanged.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Status      *models.TaskStatus
	UserID      *uuid.UUID
	ProjectID   *uuid.UUID
}

// FindByID returns a task, optionally with its user and project.
// A reference to a soft-deleted user is cleared from UserID as well.
func (s *TaskService) FindByID(ctx context.Context, id uuid.UUID, includeUser, includeProject bool) (*models.Task, error) {
	preload := []string{"User"}
	if includeProject {
		preload = append(preload, "Project")
	}

	task, err := s.taskRepo.FindByID(ctx, id, preload...)
	if err != nil {
		return nil, notFoundOr(s.log, "find task", err, ErrTaskNotFound)
	}

	if task.User == nil {
		task.UserID = nil
	}
	if !includeUser {
		task.User = nil
	}

	return task, nil
}

// FindByUserAndStatus returns one page of the user's tasks in the given
// status, newest first. Only id, name, description, status, creation time
// and the project's id and name are populated.
func (s *TaskService) FindByUserAndStatus(ctx context.Context, userID uuid.UUID, status models.TaskStatus, page, pageSize int) ([]models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByUserAndStatus(ctx, repository.TaskFilter{
		UserID:     userID,
		Status:     status,
		Pagination: utils.NewPaginationParams(page, pageSize),
	})
	if err != nil {
		return nil, storageError(s.log, "list tasks", err)
	}

	return tasks, nil
}

// CountByUserAndStatus counts the user's tasks in the given status.
func (s *TaskService) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status models.TaskStatus) (int64, error) {
	if !status.Valid() {
		return 0, ErrInvalidTaskStatus
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return 0, err
	}

	count, err := s.taskRepo.CountByUserAndStatus(ctx, userID, status)
	if err != nil {
		return 0, storageError(s.log, "count tasks", err)
	}

	return count, nil
}

// Create creates a task after resolving its user and project.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, input.ProjectID, false)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		UserID:      &user.ID,
		ProjectID:   &project.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, storageError(s.log, "create task", err)
	}

	task.User = user
	task.Project = project
	return task, nil
}

// Update applies the patch. A new user or project reference is resolved
// before anything is written.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.FindByID(ctx, id, false, false)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		user, err := s.users.FindByID(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
		task.UserID = &user.ID
		task.User = user
	}
	if input.ProjectID != nil {
		project, err := s.projects.FindByID(ctx, *input.ProjectID, false)
		if err != nil {
			return nil, err
		}
		task.ProjectID = &project.ID
		task.Project = project
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, storageError(s.log, "update task", err)
	}

	return task, nil
}

// Delete hard-deletes the task.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) (*DeleteStatus, error) {
	if _, err := s.FindByID(ctx, id, false, false); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return nil, storageError(s.log, "delete task", err)
	}

	return &DeleteStatus{Deleted: true, Message: constants.MsgTaskDeleted}, nil
}
