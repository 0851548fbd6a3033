package projects_dto

import (
	projects_models "projectdesk/internal/features/projects/models"
	users_enums "projectdesk/internal/features/users/enums"
)

// ValidationType is the outcome code carried by every write response.
// Anything other than ERROR counts as success for clients.
type ValidationType string

const (
	ValidationTypeOk      ValidationType = "OK"
	ValidationTypeWarning ValidationType = "WARNING"
	ValidationTypeError   ValidationType = "ERROR"
)

type ResultCodeDTO struct {
	ValidationType ValidationType `json:"validationType"`
	Message        string         `json:"message,omitempty"`
}

type ResultEnvelopeDTO struct {
	ResultCode  ResultCodeDTO     `json:"resultCode"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func (e *ResultEnvelopeDTO) IsSuccess() bool {
	return e.ResultCode.ValidationType != ValidationTypeError
}

func OkResult() *ResultEnvelopeDTO {
	return &ResultEnvelopeDTO{ResultCode: ResultCodeDTO{ValidationType: ValidationTypeOk}}
}

func WarningResult(message string) *ResultEnvelopeDTO {
	return &ResultEnvelopeDTO{ResultCode: ResultCodeDTO{ValidationType: ValidationTypeWarning, Message: message}}
}

func ErrorResult(message string) *ResultEnvelopeDTO {
	return &ResultEnvelopeDTO{ResultCode: ResultCodeDTO{ValidationType: ValidationTypeError, Message: message}}
}

func FieldErrorResult(message string, fieldErrors map[string]string) *ResultEnvelopeDTO {
	return &ResultEnvelopeDTO{
		ResultCode:  ResultCodeDTO{ValidationType: ValidationTypeError, Message: message},
		FieldErrors: fieldErrors,
	}
}

type ProjectRecordDTO struct {
	Key         string                                `json:"key"`
	Name        string                                `json:"name"`
	Description *string                               `json:"description"`
	ProjectType projects_models.ProjectTypeDescriptor `json:"projectType"`
}

type RoleDescriptorDTO struct {
	Value        users_enums.ProjectRole `json:"value"`
	DisplayValue string                  `json:"displayValue"`
}

type UpdateProjectDetailsRequestDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectRulesRecordDTO carries both the backend representation and the
// display representation: dd-MM-yyyy / dot-decimal for the backend fields,
// yyyy-MM-dd / comma-decimal for the display fields. A zero percentage and
// an unparseable date render as empty display values.
type ProjectRulesRecordDTO struct {
	ProjectKey                string  `json:"projectKey"`
	DiscountPercentage        float64 `json:"discountPercentage"`
	ReferenceDate             string  `json:"referenceDate"`
	DisplayDiscountPercentage string  `json:"displayDiscountPercentage"`
	DisplayReferenceDate      string  `json:"displayReferenceDate"`
}

// UpdateProjectRulesRequestDTO carries display-format values as entered in
// the rules editor: comma-decimal percentage ("1,55", empty allowed) and
// display-format date (yyyy-MM-dd, empty allowed).
type UpdateProjectRulesRequestDTO struct {
	DiscountPercentage string `json:"discountPercentage" validate:"omitempty,max=5"`
	ReferenceDate      string `json:"referenceDate"      validate:"omitempty,max=10"`
}

type UserRecordDTO struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

type AssignmentRecordDTO struct {
	User             UserRecordDTO           `json:"user"`
	Role             users_enums.ProjectRole `json:"role"`
	RoleDisplayValue string                  `json:"roleDisplayValue"`
}

type AssignmentEntryDTO struct {
	Username string                  `json:"username"`
	Role     users_enums.ProjectRole `json:"role"`
}

type ReplaceAssignmentsRequestDTO struct {
	Entries []AssignmentEntryDTO `json:"entries"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectRecordDTO `json:"projects"`
}
