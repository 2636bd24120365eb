package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrProjectNotFound      = errors.New("project does not exist")
	ErrAlreadyProjectMember = errors.New("user is already added to project")
	ErrNotProjectMember     = errors.New("user doesn't exist in project")
)

// ProjectService provides business logic for projects and their members.
//
// AddUser and RemoveUser read the member list and then write the change
// without locking, so two concurrent edits of the same project can race.
// Callers that need strict consistency must serialize them.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	users       *UserService
	log         *zap.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, users *UserService, log *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		users:       users,
		log:         log,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput is a patch; nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// FindByID returns the project, with its members when includeMembers is set.
func (s *ProjectService) FindByID(ctx context.Context, id uuid.UUID, includeMembers bool) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id, includeMembers)
	if err != nil {
		return nil, notFoundOr(s.log, "find project", err, ErrProjectNotFound)
	}
	return project, nil
}

// FindByName returns the projects called name that userID belongs to,
// newest first. An empty result is reported as ErrProjectNotFound.
func (s *ProjectService) FindByName(ctx context.Context, name string, userID uuid.UUID) ([]models.Project, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.FindByNameForUser(ctx, name, userID)
	if err != nil {
		return nil, storageError(s.log, "find projects by name", err)
	}
	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}

	return projects, nil
}

// Create creates a new project.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, storageError(s.log, "create project", err)
	}

	return project, nil
}

// Update applies the patch to the project.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, storageError(s.log, "update project", err)
	}

	return project, nil
}

// AddUser makes userID a member of the project and returns the project
// with its full member list.
func (s *ProjectService) AddUser(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	project, err := s.FindByID(ctx, projectID, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if project.HasMember(userID) {
		return nil, ErrAlreadyProjectMember
	}

	if err := s.projectRepo.AddMember(ctx, projectID, userID); err != nil {
		return nil, storageError(s.log, "add project member", err)
	}

	return s.FindByID(ctx, projectID, true)
}

// RemoveUser removes userID from the project and returns the project with
// its remaining members.
func (s *ProjectService) RemoveUser(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	project, err := s.FindByID(ctx, projectID, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if !project.HasMember(userID) {
		return nil, ErrNotProjectMember
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return nil, storageError(s.log, "remove project member", err)
	}

	return s.FindByID(ctx, projectID, true)
}

// Delete hard-deletes the project together with its tasks and memberships.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) (*DeleteStatus, error) {
	if _, err := s.FindByID(ctx, id, false); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return nil, storageError(s.log, "delete project", err)
	}

	return &DeleteStatus{Deleted: true, Message: constants.MsgProjectDeleted}, nil
}
