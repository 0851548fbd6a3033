package projects_controllers

import (
	"net/http"

	projects_dto "projectdesk/internal/features/projects/dto"
	projects_services "projectdesk/internal/features/projects/services"
	users_middleware "projectdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	assignmentService *projects_services.AssignmentService
}

func (c *AssignmentController) RegisterRoutes(router *gin.RouterGroup) {
	staff := router.Group("/projects/:key/staff")
	{
		staff.GET("/assigned", c.GetAssignedStaff)
		staff.GET("/candidates", c.GetCandidates)
		staff.PUT("", c.ReplaceAssignments)
	}
}

// GetAssignedStaff godoc
// @Summary Get staff assigned to a project
// @Tags project-staff
// @Produce json
// @Param key path string true "Project key"
// @Success 200 {array} projects_dto.AssignmentRecordDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/staff/assigned [get]
func (c *AssignmentController) GetAssignedStaff(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	records, err := c.assignmentService.GetAssignedStaff(ctx.Param("key"), user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// GetCandidates godoc
// @Summary Get active users not assigned to a project
// @Description Ordered by display name for direct use in the staff picker
// @Tags project-staff
// @Produce json
// @Param key path string true "Project key"
// @Success 200 {array} projects_dto.UserRecordDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/staff/candidates [get]
func (c *AssignmentController) GetCandidates(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	records, err := c.assignmentService.GetCandidates(ctx.Param("key"), user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// ReplaceAssignments godoc
// @Summary Replace the project's full staff assignment list
// @Description Validated as a unit: roles must be chosen and the coordinator cap holds across the list
// @Tags project-staff
// @Accept json
// @Produce json
// @Param key path string true "Project key"
// @Param request body projects_dto.ReplaceAssignmentsRequestDTO true "Complete assignment list"
// @Success 200 {object} projects_dto.ResultEnvelopeDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/staff [put]
func (c *AssignmentController) ReplaceAssignments(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request projects_dto.ReplaceAssignmentsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	envelope, err := c.assignmentService.ReplaceAssignments(ctx.Param("key"), &request, user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, envelope)
}
