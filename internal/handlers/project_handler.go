package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "captable/internal/errors"
	"captable/internal/pagination"
	"captable/internal/services"
)

// ProjectHandler handles project-related requests.
type ProjectHandler struct {
	projectService services.ProjectServicer
	auditService   services.AuditServicer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService services.ProjectServicer, auditService services.AuditServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, auditService: auditService}
}

// CreateProjectRequest represents the request payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateProjectRequest represents the request payload for updating a project.
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// CreateProject handles the creation of a new project.
// @Summary     Create a project
// @Description Create a new cap-table project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProjectRequest true "Project details"
// @Success     201 {object} models.Project "Project created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(userID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PROJECT", "project", project.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// GetProjects handles listing the authenticated user's projects.
// @Summary     Get projects
// @Description Get a paginated list of the authenticated user's projects
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Project] "Paginated projects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.projectService.GetUserProjects(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProject handles retrieving a specific project.
// @Summary     Get project by ID
// @Description Get a specific project by ID
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} models.Project "Project details"
// @Failure     400 {object} ErrorResponse "Invalid project ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UpdateProject handles updating an existing project.
// @Summary     Update project
// @Description Update a project's name and description
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Project ID"
// @Param       request body UpdateProjectRequest true "Updated project details"
// @Success     200 {object} models.Project "Updated project"
// @Failure     400 {object} ErrorResponse "Invalid input or project ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(userID, projectID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PROJECT", "project", projectID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// DeleteProject handles deleting a project.
// @Summary     Delete project
// @Description Delete a project by ID (soft delete)
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Project ID"
// @Success     200 {object} MessageResponse "Project deleted"
// @Failure     400 {object} ErrorResponse "Invalid project ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.projectService.DeleteProject(userID, projectID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PROJECT", "project", projectID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
