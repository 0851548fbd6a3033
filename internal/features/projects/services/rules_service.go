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
	"projectdesk/internal/util/dates"
	"projectdesk/internal/util/decimal"

	"github.com/go-playground/validator/v10"
)

const maxDiscountPercentage = 99.99

type RulesService struct {
	projectService  *ProjectService
	rulesRepository *projects_repositories.RulesRepository
	auditLogService *audit_logs.AuditLogService
	validate        *validator.Validate
}

// GetRules returns the array-of-0..1 view of the project's rules record.
// The record carries the backend representation plus the display values
// the edit form is initialized with.
func (s *RulesService) GetRules(
	key string,
	user *users_models.User,
) ([]projects_dto.ProjectRulesRecordDTO, error) {
	project, err := s.requireProject(key, user, users_enums.BehaviorViewProject)
	if err != nil {
		return nil, err
	}

	rules, err := s.rulesRepository.GetRules(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project rules: %w", err)
	}

	if rules == nil {
		return []projects_dto.ProjectRulesRecordDTO{}, nil
	}

	return []projects_dto.ProjectRulesRecordDTO{{
		ProjectKey:                key,
		DiscountPercentage:        rules.DiscountPercentage,
		ReferenceDate:             rules.ReferenceDate,
		DisplayDiscountPercentage: decimal.FormatCommaDecimal(rules.DiscountPercentage),
		DisplayReferenceDate:      dates.ToDisplayDate(rules.ReferenceDate),
	}}, nil
}

// UpdateRules replaces the rules record wholesale from display-format
// input: comma-decimal percentage and yyyy-MM-dd date, both optional.
// An unparseable date clears the stored value rather than erroring.
func (s *RulesService) UpdateRules(
	key string,
	request *projects_dto.UpdateProjectRulesRequestDTO,
	user *users_models.User,
) (*projects_dto.ResultEnvelopeDTO, error) {
	project, err := s.requireProject(key, user, users_enums.BehaviorEditProjectRules)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(request); err != nil {
		return projects_dto.ErrorResult("form is not filled in correctly"), nil
	}

	fieldErrors := map[string]string{}

	percentage := 0.0
	if request.DiscountPercentage != "" {
		parsed, ok := decimal.ParseCommaDecimal(request.DiscountPercentage)
		if !ok {
			fieldErrors["discountPercentage"] = "expected one or two digits, optionally a comma and up to two decimals"
		} else if parsed > maxDiscountPercentage {
			fieldErrors["discountPercentage"] = fmt.Sprintf("must be at most %.2f", maxDiscountPercentage)
		} else {
			percentage = parsed
		}
	}

	if len(fieldErrors) > 0 {
		return projects_dto.FieldErrorResult("form is not filled in correctly", fieldErrors), nil
	}

	rules := &projects_models.ProjectRules{
		ProjectID:          project.ID,
		DiscountPercentage: percentage,
		ReferenceDate:      dates.ToStorageDate(request.ReferenceDate),
	}

	if err := s.rulesRepository.ReplaceRules(rules); err != nil {
		return nil, fmt.Errorf("failed to replace project rules: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Business rules updated for %s", key),
		&user.ID,
		&project.ID,
	)

	return projects_dto.OkResult(), nil
}

func (s *RulesService) requireProject(
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

		return nil, errors.New("insufficient permissions to edit project rules")
	}

	return project, nil
}
