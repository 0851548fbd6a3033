package projects_services

import (
	"errors"
	"fmt"

	audit_logs "projectdesk/internal/features/audit_logs"
	projects_dto "projectdesk/internal/features/projects/dto"
	projects_models "projectdesk/internal/features/projects/models"
	projects_repositories "projectdesk/internal/features/projects/repositories"
	users_enums "projectdesk/internal/features/users/enums"
	users_models "projectdesk/internal/features/users/models"
	users_repositories "projectdesk/internal/features/users/repositories"
	"projectdesk/internal/util/rate_limit"
)

const (
	assignmentWriteRpsLimit   = 5
	assignmentWriteBurstLimit = 10
)

type AssignmentService struct {
	projectService       *ProjectService
	assignmentRepository *projects_repositories.AssignmentRepository
	userRepository       *users_repositories.UserRepository
	auditLogService      *audit_logs.AuditLogService
	rateLimiter          *rate_limit.RateLimiter
}

// GetAssignedStaff returns the project's assignment records, each
// embedding the assigned user's sub-record.
func (s *AssignmentService) GetAssignedStaff(
	key string,
	user *users_models.User,
) ([]projects_dto.AssignmentRecordDTO, error) {
	project, err := s.requireProject(key, user, users_enums.BehaviorViewProject)
	if err != nil {
		return nil, err
	}

	rows, err := s.assignmentRepository.GetAssignedStaff(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned staff: %w", err)
	}

	records := make([]projects_dto.AssignmentRecordDTO, len(rows))
	for i, row := range rows {
		records[i] = projects_dto.AssignmentRecordDTO{
			User: projects_dto.UserRecordDTO{
				Username:    row.Username,
				DisplayName: row.DisplayName,
				Email:       row.Email,
				Roles:       []string{string(row.Role)},
			},
			Role:             row.Role,
			RoleDisplayValue: row.Role.DisplayValue(),
		}
	}

	return records, nil
}

// GetCandidates returns active users without an assignment on the project,
// ordered by display name.
func (s *AssignmentService) GetCandidates(
	key string,
	user *users_models.User,
) ([]projects_dto.UserRecordDTO, error) {
	project, err := s.requireProject(key, user, users_enums.BehaviorManageProjectStaff)
	if err != nil {
		return nil, err
	}

	candidates, err := s.assignmentRepository.GetUnassignedUsers(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate staff: %w", err)
	}

	records := make([]projects_dto.UserRecordDTO, len(candidates))
	for i, candidate := range candidates {
		records[i] = projects_dto.UserRecordDTO{
			Username:    candidate.Username,
			DisplayName: candidate.DisplayName,
			Email:       candidate.Email,
			Roles:       candidate.RoleNames(),
		}
	}

	return records, nil
}

// ReplaceAssignments swaps the project's full assignment list. The request
// is validated as one unit: every entry needs a known role, the coordinator
// cap holds across the whole list, and the caller cannot change their own
// role through this path.
func (s *AssignmentService) ReplaceAssignments(
	key string,
	request *projects_dto.ReplaceAssignmentsRequestDTO,
	user *users_models.User,
) (*projects_dto.ResultEnvelopeDTO, error) {
	project, err := s.requireProject(key, user, users_enums.BehaviorManageProjectStaff)
	if err != nil {
		return nil, err
	}

	limitResult, err := s.rateLimiter.CheckRateLimit(key, assignmentWriteRpsLimit, assignmentWriteBurstLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !limitResult.Allowed {
		return nil, errors.New("rate limit exceeded for this project")
	}

	if envelope := s.validateEntries(request.Entries); envelope != nil {
		return envelope, nil
	}

	assignments := make([]*projects_models.ProjectAssignment, 0, len(request.Entries))
	for _, entry := range request.Entries {
		entryUser, err := s.userRepository.GetUserByUsername(entry.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user %q: %w", entry.Username, err)
		}

		if entryUser == nil {
			return projects_dto.ErrorResult(fmt.Sprintf("unknown user: %s", entry.Username)), nil
		}

		if entryUser.ID == user.ID {
			currentRole, err := s.assignmentRepository.GetUserRole(project.ID, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get current role: %w", err)
			}

			if currentRole != nil && *currentRole != entry.Role {
				return projects_dto.ErrorResult("you cannot change your own role"), nil
			}
		}

		assignments = append(assignments, &projects_models.ProjectAssignment{
			ProjectID: project.ID,
			UserID:    entryUser.ID,
			Role:      entry.Role,
		})
	}

	if err := s.assignmentRepository.ReplaceAssignments(project.ID, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Staff assignments replaced for %s (%d staff)", key, len(assignments)),
		&user.ID,
		&project.ID,
	)

	return projects_dto.OkResult(), nil
}

func (s *AssignmentService) validateEntries(entries []projects_dto.AssignmentEntryDTO) *projects_dto.ResultEnvelopeDTO {
	fieldErrors := map[string]string{}
	seen := map[string]bool{}

	for _, entry := range entries {
		if entry.Username == "" {
			return projects_dto.ErrorResult("assignment entry is missing a username")
		}

		if seen[entry.Username] {
			fieldErrors[entry.Username] = "duplicate assignment for this user"
			continue
		}
		seen[entry.Username] = true

		if entry.Role == "" {
			fieldErrors[entry.Username] = "a role must be chosen"
			continue
		}

		if !entry.Role.IsValid() {
			fieldErrors[entry.Username] = fmt.Sprintf("unknown role: %s", entry.Role)
		}
	}

	if len(fieldErrors) > 0 {
		return projects_dto.FieldErrorResult("form is not filled in correctly", fieldErrors)
	}

	if CountCoordinators(entries) > users_enums.MaxCoordinatorsPerProject {
		return projects_dto.ErrorResult(fmt.Sprintf(
			"a project may have at most %d coordinators",
			users_enums.MaxCoordinatorsPerProject,
		))
	}

	return nil
}

// CountCoordinators counts how many entries carry the coordinator role.
func CountCoordinators(entries []projects_dto.AssignmentEntryDTO) int {
	count := 0
	for _, entry := range entries {
		if entry.Role == users_enums.ProjectRoleCoordinator {
			count++
		}
	}

	return count
}

func (s *AssignmentService) requireProject(
	key string,
	user *users_models.User,
	behavior users_enums.Behavior,
) (*projects_models.Project, error) {
	project, err := s.projectService.GetProjectByKey(key)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, errors.New("project not found")
	}

	allowed, err := s.projectService.CanUserActOnProject(project, user, behavior)
	if err != nil {
		return nil, err
	}
	if !allowed {
		if behavior == users_enums.BehaviorViewProject {
			return nil, errors.New("insufficient permissions to view project")
		}

		return nil, errors.New("insufficient permissions to manage project staff")
	}

	return project, nil
}
