package projects_editor

import (
	"projectdesk/internal/cache"
	audit_logs "projectdesk/internal/features/audit_logs"
	projects_services "projectdesk/internal/features/projects/services"
	cache_utils "projectdesk/internal/util/cache"
)

var editorService = &EditorService{
	projectService:    projects_services.GetProjectService(),
	assignmentService: projects_services.GetAssignmentService(),
	auditLogService:   audit_logs.GetAuditLogService(),
	sessionCache: cache_utils.NewCacheUtilWithExpiry[EditorState](
		cache.GetCache(),
		"pd_editor:",
		SessionLifetime,
	),
}

var editorController = &EditorController{
	editorService: editorService,
}

func GetEditorService() *EditorService {
	return editorService
}

func GetEditorController() *EditorController {
	return editorController
}
