package projects_controllers

import (
	"net/http"

	projects_dto "projectdesk/internal/features/projects/dto"
	projects_services "projectdesk/internal/features/projects/services"
	users_middleware "projectdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type RulesController struct {
	rulesService *projects_services.RulesService
}

func (c *RulesController) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/projects/:key/rules")
	{
		rules.GET("", c.GetRules)
		rules.PUT("", c.UpdateRules)
	}
}

// GetRules godoc
// @Summary Get a project's business rules
// @Description Returns an array with zero or one rules record, carrying both backend and display representations
// @Tags project-rules
// @Produce json
// @Param key path string true "Project key"
// @Success 200 {array} projects_dto.ProjectRulesRecordDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/rules [get]
func (c *RulesController) GetRules(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	records, err := c.rulesService.GetRules(ctx.Param("key"), user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// UpdateRules godoc
// @Summary Update a project's business rules
// @Description Accepts display-format values: a comma-decimal percentage and a yyyy-MM-dd reference date
// @Tags project-rules
// @Accept json
// @Produce json
// @Param key path string true "Project key"
// @Param request body projects_dto.UpdateProjectRulesRequestDTO true "New rule values"
// @Success 200 {object} projects_dto.ResultEnvelopeDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/rules [put]
func (c *RulesController) UpdateRules(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request projects_dto.UpdateProjectRulesRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	envelope, err := c.rulesService.UpdateRules(ctx.Param("key"), &request, user)
	if err != nil {
		handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, envelope)
}
