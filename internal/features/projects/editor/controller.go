package projects_editor

import (
	"net/http"
	"strings"

	users_middleware "projectdesk/internal/features/users/middleware"
	users_models "projectdesk/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EditorController struct {
	editorService *EditorService
}

func (c *EditorController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:key/staff-editor", c.CreateSession)

	editor := router.Group("/staff-editor")
	{
		editor.GET("/:sessionId", c.GetView)
		editor.POST("/:sessionId/staff", c.AddStaff)
		editor.PUT("/:sessionId/staff/:username/role", c.SetRole)
		editor.POST("/:sessionId/staff/:username/confirm-deletion", c.ConfirmDeletion)
		editor.POST("/:sessionId/deletion/:answer", c.ResolveDeletion)
		editor.POST("/:sessionId/submit", c.Submit)
		editor.DELETE("/:sessionId", c.Discard)
	}
}

// CreateSession godoc
// @Summary Open a staff editor session
// @Description Opens (or re-loads) the staff assignment editor for a project
// @Tags staff-editor
// @Accept json
// @Produce json
// @Param key path string true "Project key"
// @Param request body CreateSessionRequestDTO false "Session re-load request"
// @Success 200 {object} EditorViewDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /projects/{key}/staff-editor [post]
func (c *EditorController) CreateSession(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request CreateSessionRequestDTO
	_ = ctx.ShouldBindJSON(&request)

	view, err := c.editorService.CreateSession(ctx.Param("key"), &request, user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// GetView godoc
// @Summary Get the editor view
// @Description Returns the working set and the candidate list filtered by the search term
// @Tags staff-editor
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Param term query string false "Candidate search term"
// @Success 200 {object} EditorViewDTO
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId} [get]
func (c *EditorController) GetView(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	view, err := c.editorService.GetView(sessionID, ctx.Query("term"), user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// AddStaff godoc
// @Summary Add a candidate to the working set
// @Tags staff-editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Param request body AddStaffRequestDTO true "Candidate to add"
// @Success 200 {object} EditorViewDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId}/staff [post]
func (c *EditorController) AddStaff(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	var request AddStaffRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := c.editorService.AddStaff(sessionID, &request, user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// SetRole godoc
// @Summary Set the role of a working-set entry
// @Tags staff-editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Param username path string true "Username of the entry"
// @Param request body SetRoleRequestDTO true "Role to set"
// @Success 200 {object} EditorViewDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId}/staff/{username}/role [put]
func (c *EditorController) SetRole(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	var request SetRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := c.editorService.SetRole(sessionID, ctx.Param("username"), &request, user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// ConfirmDeletion godoc
// @Summary Start removal of a working-set entry
// @Description Marks the entry pending deletion; nothing changes until the answer arrives
// @Tags staff-editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Param username path string true "Username of the entry"
// @Param request body VersionedRequestDTO true "Version guard"
// @Success 200 {object} EditorViewDTO
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId}/staff/{username}/confirm-deletion [post]
func (c *EditorController) ConfirmDeletion(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	var request VersionedRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := c.editorService.ConfirmDeletion(sessionID, ctx.Param("username"), &request, user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// ResolveDeletion godoc
// @Summary Answer the pending deletion
// @Description "ok" removes the pending entry and returns the user to the candidate list, "cancel" keeps it
// @Tags staff-editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Param answer path string true "ok or cancel"
// @Param request body VersionedRequestDTO true "Version guard"
// @Success 200 {object} EditorViewDTO
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId}/deletion/{answer} [post]
func (c *EditorController) ResolveDeletion(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	var request VersionedRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	view, err := c.editorService.ResolveDeletion(sessionID, ctx.Param("answer"), &request, user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// Submit godoc
// @Summary Submit the working set
// @Description Validates the working set and replaces the project's assignments; the session survives a validation failure
// @Tags staff-editor
// @Accept json
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Param request body VersionedRequestDTO true "Version guard"
// @Success 200 {object} projects_dto.ResultEnvelopeDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId}/submit [post]
func (c *EditorController) Submit(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	var request VersionedRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	envelope, err := c.editorService.Submit(sessionID, &request, user)
	if err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, envelope)
}

// Discard godoc
// @Summary Discard the editor session
// @Tags staff-editor
// @Produce json
// @Param sessionId path string true "Editor session ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /staff-editor/{sessionId} [delete]
func (c *EditorController) Discard(ctx *gin.Context) {
	user, sessionID, ok := c.sessionRequest(ctx)
	if !ok {
		return
	}

	if err := c.editorService.Discard(sessionID, user); err != nil {
		c.handleEditorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Editor session discarded"})
}

func (c *EditorController) sessionRequest(ctx *gin.Context) (*users_models.User, uuid.UUID, bool) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return nil, uuid.Nil, false
	}

	return user, sessionID, true
}

func (c *EditorController) handleEditorError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.Contains(message, "insufficient permissions"),
		strings.Contains(message, "belongs to another user"):
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
	case strings.Contains(message, "session not found"),
		strings.Contains(message, "project not found"):
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
	case strings.Contains(message, "session was reloaded"):
		ctx.JSON(http.StatusConflict, gin.H{"error": message})
	case strings.Contains(message, "rate limit exceeded"):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": message})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
	}
}
