package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"github.com/yukikurage/project-tracker-api/internal/validation"
)

// TaskHandler serves the task board.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetTask returns a specific task by ID.
// ?include=user,project loads the referenced user and project.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var includeUser, includeProject bool
	for _, rel := range strings.Split(c.Query("include"), ",") {
		switch strings.TrimSpace(strings.ToLower(rel)) {
		case "user":
			includeUser = true
		case "project":
			includeProject = true
		}
	}

	task, err := h.taskService.FindByID(c.Request.Context(), id, includeUser, includeProject)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if includeUser && includeProject {
		c.JSON(http.StatusOK, dto.ToTaskWithRelationsDTO(*task))
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name        string            `json:"name" binding:"required"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status" binding:"omitempty,task_status"`
		UserID      string            `json:"userId" binding:"required,uuid"`
		ProjectID   string            `json:"projectId" binding:"required,uuid"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		UserID:      uuid.MustParse(req.UserID),
		ProjectID:   uuid.MustParse(req.ProjectID),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListUserTasks returns one page of a user's tasks in the status given by
// ?status=, newest first
func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	status, ok := statusQuery(c)
	if !ok {
		return
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	tasks, err := h.taskService.FindByUserAndStatus(c.Request.Context(), userID, status, params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskSummaryDTOs(tasks))
}

// CountUserTasks counts a user's tasks in the status given by ?status=
func (h *TaskHandler) CountUserTasks(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	status, ok := statusQuery(c)
	if !ok {
		return
	}

	count, err := h.taskService.CountByUserAndStatus(c.Request.Context(), userID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskCountResponse{Count: count})
}

// UpdateTask patches a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Name        *string            `json:"name" binding:"omitempty,min=1"`
		Description *string            `json:"description"`
		Status      *models.TaskStatus `json:"status" binding:"omitempty,task_status"`
		UserID      *string            `json:"userId" binding:"omitempty,uuid"`
		ProjectID   *string            `json:"projectId" binding:"omitempty,uuid"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		UserID:      parseOptionalUUID(req.UserID),
		ProjectID:   parseOptionalUUID(req.ProjectID),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.taskService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func statusQuery(c *gin.Context) (models.TaskStatus, bool) {
	raw := c.Query("status")
	if !validation.IsTaskStatus(raw) {
		apierrors.BadRequest(c, "Validation failed (status must be one of TODO, DOING, IN_REVIEW, DONE, DROPPED)")
		return "", false
	}
	return models.TaskStatus(raw), true
}
