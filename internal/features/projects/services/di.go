package projects_services

import (
	"projectdesk/internal/cache"
	audit_logs "projectdesk/internal/features/audit_logs"
	projects_models "projectdesk/internal/features/projects/models"
	projects_repositories "projectdesk/internal/features/projects/repositories"
	users_repositories "projectdesk/internal/features/users/repositories"
	cache_utils "projectdesk/internal/util/cache"
	"projectdesk/internal/util/rate_limit"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var assignmentRepository = &projects_repositories.AssignmentRepository{}
var rulesRepository = &projects_repositories.RulesRepository{}
var userRepository = &users_repositories.UserRepository{}

var projectService = &ProjectService{
	projectRepository,
	assignmentRepository,
	audit_logs.GetAuditLogService(),
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "pd_project:"),
	singleflight.Group{},
}

var assignmentService = &AssignmentService{
	projectService:       projectService,
	assignmentRepository: assignmentRepository,
	userRepository:       userRepository,
	auditLogService:      audit_logs.GetAuditLogService(),
	rateLimiter:          rate_limit.NewRateLimiter(),
}

var rulesService = &RulesService{
	projectService:  projectService,
	rulesRepository: rulesRepository,
	auditLogService: audit_logs.GetAuditLogService(),
	validate:        validator.New(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetAssignmentService() *AssignmentService {
	return assignmentService
}

func GetRulesService() *RulesService {
	return rulesService
}
