package projects_controllers

import (
	"net/http"
	"strings"

	audit_logs "projectdesk/internal/features/audit_logs"
	projects_dto "projectdesk/internal/features/projects/dto"
	projects_services "projectdesk/internal/features/projects/services"
	users_middleware "projectdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	projectService *projects_services.ProjectService
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", c.ListProjects)
		projects.GET("/:key", c.GetProject)
		projects.GET("/:key/role", c.GetProjectRole)
		projects.PUT("/:key/details", c.UpdateProjectDetails)
		projects.GET("/:key/audit-logs", c.GetProjectAuditLogs)
	}
}

// ListProjects godoc
// @Summary List projects visible to the caller
// @Description Administrators see every project, other users only the ones they are assigned to
// @Tags projects
// @Produce json
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	response, err := c.projectService.GetUserProjects(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject godoc
// @Summary Get a project by key
// @Description Returns an array with zero or one project record; an unknown key yields an empty array
// @Tags projects
// @Produce json
// @Param key path string true "Project key, e.g. WET1234"
// @Success 200 {array} projects_dto.ProjectRecordDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	records, err := c.projectService.GetProjectRecords(ctx.Param("key"), user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// GetProjectRole godoc
// @Summary Get the caller's role on a project
// @Description Returns an array of role descriptors; the first entry is the current role, unassigned users get an empty array
// @Tags projects
// @Produce json
// @Param key path string true "Project key"
// @Success 200 {array} projects_dto.RoleDescriptorDTO
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/role [get]
func (c *ProjectController) GetProjectRole(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	roles, err := c.projectService.GetUserProjectRoles(ctx.Param("key"), user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}

// UpdateProjectDetails godoc
// @Summary Update a project's name and description
// @Description Validation failures come back in the result envelope with per-field errors
// @Tags projects
// @Accept json
// @Produce json
// @Param key path string true "Project key"
// @Param request body projects_dto.UpdateProjectDetailsRequestDTO true "New details"
// @Success 200 {object} projects_dto.ResultEnvelopeDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/details [put]
func (c *ProjectController) UpdateProjectDetails(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request projects_dto.UpdateProjectDetailsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	envelope, err := c.projectService.UpdateProjectDetails(ctx.Param("key"), &request, user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, envelope)
}

// GetProjectAuditLogs godoc
// @Summary Get audit logs for a project
// @Tags projects
// @Produce json
// @Param key path string true "Project key"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/audit-logs [get]
func (c *ProjectController) GetProjectAuditLogs(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.projectService.GetProjectAuditLogs(ctx.Param("key"), user, request)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// handleProjectError maps service sentinel errors onto HTTP statuses; the
// fallthrough is a plain bad request so internals never leak as 500s for
// user mistakes.
func handleProjectError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.Contains(message, "insufficient permissions"):
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
	case strings.Contains(message, "project not found"):
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
	case strings.Contains(message, "rate limit exceeded"):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": message})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
	}
}
