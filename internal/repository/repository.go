package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// UserRepository defines the interface for user data access.
// Soft-deleted users are never returned by any finder.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists all columns of the user
	Update(ctx context.Context, user *models.User) error

	// SoftDelete marks the user as deleted
	SoftDelete(ctx context.Context, user *models.User) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID, optionally loading its members
	FindByID(ctx context.Context, id uuid.UUID, withMembers bool) (*models.Project, error)

	// FindByNameForUser lists projects with the given name that the user belongs to, newest first
	FindByNameForUser(ctx context.Context, name string, userID uuid.UUID) ([]models.Project, error)

	// Update updates a project's own columns
	Update(ctx context.Context, project *models.Project) error

	// Delete deletes a project together with its tasks and memberships
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember adds a user to a project
	AddMember(ctx context.Context, projectID, userID uuid.UUID) error

	// RemoveMember removes a user from a project
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*models.Task, error)

	// ListByUserAndStatus returns a page of the user's tasks in the given status
	ListByUserAndStatus(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// CountByUserAndStatus counts the user's tasks in the given status
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status models.TaskStatus) (int64, error)

	// Update updates a task's own columns and references
	Update(ctx context.Context, task *models.Task) error

	// Delete hard deletes a task
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID     uuid.UUID
	Status     models.TaskStatus
	Pagination utils.PaginationParams
}

// APIKeyRepository defines the interface for static API key access
type APIKeyRepository interface {
	// Create stores a new key
	Create(ctx context.Context, key *models.APIKey) error

	// FindByID finds a key by its id
	FindByID(ctx context.Context, id uuid.UUID) (*models.APIKey, error)

	// SetActive toggles a key; it reports false when no key has that id
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
}
