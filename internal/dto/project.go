package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectWithUsersDTO is a project together with its member list.
// Users is always present, even when empty.
type ProjectWithUsersDTO struct {
	ProjectDTO
	Users []UserDTO `json:"users"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectWithUsersDTO converts a project with preloaded members
func ToProjectWithUsersDTO(project models.Project) ProjectWithUsersDTO {
	return ProjectWithUsersDTO{
		ProjectDTO: ToProjectDTO(project),
		Users:      ToUserDTOs(project.Users),
	}
}

// ToProjectWithUsersDTOs converts a slice of projects with preloaded members
func ToProjectWithUsersDTOs(projects []models.Project) []ProjectWithUsersDTO {
	out := make([]ProjectWithUsersDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectWithUsersDTO(p)
	}
	return out
}
