package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ProjectHandler serves the project registry.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// manageProjectUsersRequest is the body of the membership endpoints
type manageProjectUsersRequest struct {
	UserID    string `json:"userId" binding:"required,uuid"`
	ProjectID string `json:"projectId" binding:"required,uuid"`
}

// GetProject returns a project by id. Members are included with ?include=users.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	includeUsers := strings.EqualFold(c.Query("include"), "users")

	project, err := h.projectService.FindByID(c.Request.Context(), id, includeUsers)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if includeUsers {
		c.JSON(http.StatusOK, dto.ToProjectWithUsersDTO(*project))
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// GetProjectsByName returns the projects with the given name that the
// user in ?userId= belongs to, newest first
func (h *ProjectHandler) GetProjectsByName(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		apierrors.InvalidFormat(c, "Validation failed (userId must be a valid uuid)")
		return
	}

	projects, err := h.projectService.FindByName(c.Request.Context(), c.Param("name"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectWithUsersDTOs(projects))
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// AddUser adds a user to a project
func (h *ProjectHandler) AddUser(c *gin.Context) {
	var req manageProjectUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.AddUser(c.Request.Context(), uuid.MustParse(req.ProjectID), uuid.MustParse(req.UserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectWithUsersDTO(*project))
}

// RemoveUser removes a user from a project
func (h *ProjectHandler) RemoveUser(c *gin.Context) {
	var req manageProjectUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.RemoveUser(c.Request.Context(), uuid.MustParse(req.ProjectID), uuid.MustParse(req.UserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectWithUsersDTO(*project))
}

// UpdateProject patches a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name        *string `json:"name" binding:"omitempty,min=1"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project with its tasks and memberships
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.projectService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
