package projects_services

import (
	"errors"
	"fmt"
	"strings"

	audit_logs "projectdesk/internal/features/audit_logs"
	projects_dto "projectdesk/internal/features/projects/dto"
	projects_models "projectdesk/internal/features/projects/models"
	projects_repositories "projectdesk/internal/features/projects/repositories"
	users_enums "projectdesk/internal/features/users/enums"
	users_models "projectdesk/internal/features/users/models"
	cache_utils "projectdesk/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

const (
	maxProjectNameLength        = 300
	maxProjectDescriptionLength = 1000
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	assignmentRepository *projects_repositories.AssignmentRepository
	auditLogService      *audit_logs.AuditLogService

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

// GetProjectByKey resolves a project key through the cache. Both hits and
// misses are cached so repeated lookups of unknown keys stay off the DB.
func (s *ProjectService) GetProjectByKey(key string) (*projects_models.Project, error) {
	typeCode, number, err := projects_models.ParseProjectKey(key)
	if err != nil {
		return nil, err
	}

	if cachedProject := s.projectCacheUtil.Get(key); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, nil
		}

		return cachedProject, nil
	}

	result, err, _ := s.singleflight.Do(key, func() (any, error) {
		return s.projectRepository.GetProjectByKey(typeCode, number)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	if project == nil {
		s.projectCacheUtil.Set(key, &projects_models.Project{IsNotExists: true})
		return nil, nil
	}

	s.projectCacheUtil.Set(key, project)

	return project, nil
}

// GetProjectRecords returns the array-of-0..1 view of a project for the
// clients that unwrap single records with first-or-null semantics.
func (s *ProjectService) GetProjectRecords(
	key string,
	user *users_models.User,
) ([]projects_dto.ProjectRecordDTO, error) {
	project, err := s.GetProjectByKey(key)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return []projects_dto.ProjectRecordDTO{}, nil
	}

	allowed, err := s.CanUserActOnProject(project, user, users_enums.BehaviorViewProject)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.New("insufficient permissions to view project")
	}

	return []projects_dto.ProjectRecordDTO{mapProjectRecord(project)}, nil
}

// GetUserProjectRoles returns role descriptors for the calling user on the
// project; the first entry is the current role. Administrators receive the
// coordinator descriptor so every edit surface stays reachable for them.
func (s *ProjectService) GetUserProjectRoles(
	key string,
	user *users_models.User,
) ([]projects_dto.RoleDescriptorDTO, error) {
	project, err := s.GetProjectByKey(key)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return []projects_dto.RoleDescriptorDTO{}, nil
	}

	if user.Role == users_enums.UserRoleAdmin {
		return []projects_dto.RoleDescriptorDTO{{
			Value:        users_enums.ProjectRoleCoordinator,
			DisplayValue: users_enums.ProjectRoleCoordinator.DisplayValue(),
		}}, nil
	}

	role, err := s.assignmentRepository.GetUserRole(project.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project role: %w", err)
	}

	if role == nil {
		return []projects_dto.RoleDescriptorDTO{}, nil
	}

	return []projects_dto.RoleDescriptorDTO{{
		Value:        *role,
		DisplayValue: role.DisplayValue(),
	}}, nil
}

// UpdateProjectDetails validates and persists the two editable fields.
// A blank or whitespace-only description clears the stored value instead
// of persisting an empty string.
func (s *ProjectService) UpdateProjectDetails(
	key string,
	request *projects_dto.UpdateProjectDetailsRequestDTO,
	user *users_models.User,
) (*projects_dto.ResultEnvelopeDTO, error) {
	project, err := s.GetProjectByKey(key)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return projects_dto.ErrorResult("project not found"), nil
	}

	allowed, err := s.CanUserActOnProject(project, user, users_enums.BehaviorEditProjectDetails)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.New("insufficient permissions to edit project details")
	}

	fieldErrors := map[string]string{}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		fieldErrors["name"] = "name is required"
	} else if len(request.Name) > maxProjectNameLength {
		fieldErrors["name"] = fmt.Sprintf("name must be at most %d characters", maxProjectNameLength)
	}

	if len(request.Description) > maxProjectDescriptionLength {
		fieldErrors["description"] = fmt.Sprintf(
			"description must be at most %d characters",
			maxProjectDescriptionLength,
		)
	}

	if len(fieldErrors) > 0 {
		return projects_dto.FieldErrorResult("form is not filled in correctly", fieldErrors), nil
	}

	var description *string
	if trimmed := strings.TrimSpace(request.Description); trimmed != "" {
		description = &request.Description
	}

	if err := s.projectRepository.UpdateProjectDetails(project.ID, request.Name, description); err != nil {
		return nil, fmt.Errorf("failed to update project details: %w", err)
	}

	s.projectCacheUtil.Invalidate(key)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project details updated: %s", key),
		&user.ID,
		&project.ID,
	)

	return projects_dto.OkResult(), nil
}

// GetUserProjects lists projects visible to the caller: all projects for
// administrators, assigned projects otherwise.
func (s *ProjectService) GetUserProjects(
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	var projects []*projects_models.Project
	var err error

	if user.Role == users_enums.UserRoleAdmin {
		projects, err = s.projectRepository.GetAllProjects()
	} else {
		projects, err = s.projectRepository.GetProjectsAssignedToUser(user.ID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	records := make([]projects_dto.ProjectRecordDTO, len(projects))
	for i, project := range projects {
		records[i] = mapProjectRecord(project)
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: records}, nil
}

func (s *ProjectService) GetProjectAuditLogs(
	key string,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	project, err := s.GetProjectByKey(key)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, errors.New("project not found")
	}

	allowed, err := s.CanUserActOnProject(project, user, users_enums.BehaviorViewProject)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.New("insufficient permissions to view project audit logs")
	}

	return s.auditLogService.GetProjectAuditLogs(project.ID, request)
}

// CanUserActOnProject is the single authorization path for the detail
// screen: administrators bypass project roles, everyone else goes through
// the behavior-to-role policy on their assignment.
func (s *ProjectService) CanUserActOnProject(
	project *projects_models.Project,
	user *users_models.User,
	behavior users_enums.Behavior,
) (bool, error) {
	if user.Role == users_enums.UserRoleAdmin {
		return true, nil
	}

	role, err := s.assignmentRepository.GetUserRole(project.ID, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to get project role: %w", err)
	}

	if role == nil {
		return false, nil
	}

	return behavior.Allows(*role), nil
}

func mapProjectRecord(project *projects_models.Project) projects_dto.ProjectRecordDTO {
	return projects_dto.ProjectRecordDTO{
		Key:         project.Key(),
		Name:        project.Name,
		Description: project.Description,
		ProjectType: projects_models.ProjectTypeByCode(project.TypeCode),
	}
}
