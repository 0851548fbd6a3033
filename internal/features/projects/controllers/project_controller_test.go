package projects_controllers

import (
	"net/http"
	"strings"
	"testing"

	projects_dto "projectdesk/internal/features/projects/dto"
	projects_testing "projectdesk/internal/features/projects/testing"
	users_enums "projectdesk/internal/features/users/enums"
	users_testing "projectdesk/internal/features/users/testing"
	test_utils "projectdesk/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetProject_AsAdmin_ReturnsSingleRecordArray(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Nature Permit Review")

	var records []projects_dto.ProjectRecordDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key(),
		"Bearer "+admin.Token,
		http.StatusOK,
		&records,
	)

	require.Len(t, records, 1)
	assert.Equal(t, project.Key(), records[0].Key)
	assert.Equal(t, "Nature Permit Review", records[0].Name)
	assert.Equal(t, "WET", records[0].ProjectType.Code)
	assert.Equal(t, "Legislation", records[0].ProjectType.DisplayValue)
}

func Test_GetProject_UnknownKey_ReturnsEmptyArray(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	var records []projects_dto.ProjectRecordDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/WET0000",
		"Bearer "+admin.Token,
		http.StatusOK,
		&records,
	)

	assert.Empty(t, records)
}

func Test_GetProject_MalformedKey_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/WETX",
		"Bearer "+admin.Token,
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "too short")
}

func Test_GetProject_UnassignedMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Restricted Project")

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.Key(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)

	assert.Contains(t, string(resp.Body), "insufficient permissions to view project")
}

func Test_GetProject_AssignedStaffMember_CanView(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Shared Project")
	projects_testing.AssignUserToProject(project, member, users_enums.ProjectRoleStaffMember)

	var records []projects_dto.ProjectRecordDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key(),
		"Bearer "+member.Token,
		http.StatusOK,
		&records,
	)

	require.Len(t, records, 1)
	assert.Equal(t, project.Key(), records[0].Key)
}

func Test_GetProject_WithoutAuthToken_ReturnsUnauthorized(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())

	test_utils.MakeGetRequest(t, router, "/api/v1/projects/WET1234", "", http.StatusUnauthorized)
}

func Test_GetProjectRole_AsAdmin_ReturnsCoordinatorDescriptor(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Role Check Project")

	var roles []projects_dto.RoleDescriptorDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/role",
		"Bearer "+admin.Token,
		http.StatusOK,
		&roles,
	)

	require.Len(t, roles, 1)
	assert.Equal(t, users_enums.ProjectRoleCoordinator, roles[0].Value)
	assert.Equal(t, "Project coordinator", roles[0].DisplayValue)
}

func Test_GetProjectRole_AssignedStaffMember_ReturnsOwnRole(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Role Check Project")
	projects_testing.AssignUserToProject(project, member, users_enums.ProjectRoleStaffMember)

	var roles []projects_dto.RoleDescriptorDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/role",
		"Bearer "+member.Token,
		http.StatusOK,
		&roles,
	)

	require.Len(t, roles, 1)
	assert.Equal(t, users_enums.ProjectRoleStaffMember, roles[0].Value)
}

func Test_GetProjectRole_UnassignedMember_ReturnsEmptyArray(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Role Check Project")

	var roles []projects_dto.RoleDescriptorDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/role",
		"Bearer "+member.Token,
		http.StatusOK,
		&roles,
	)

	assert.Empty(t, roles)
}

func Test_UpdateProjectDetails_AsAdmin_PersistsChanges(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Old Name")

	request := projects_dto.UpdateProjectDetailsRequestDTO{
		Name:        "New Name",
		Description: "Updated description",
	}

	var envelope projects_dto.ResultEnvelopeDTO
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/details",
		"Bearer "+admin.Token,
		request,
		http.StatusOK,
		&envelope,
	)

	assert.Equal(t, projects_dto.ValidationTypeOk, envelope.ResultCode.ValidationType)

	var records []projects_dto.ProjectRecordDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key(),
		"Bearer "+admin.Token,
		http.StatusOK,
		&records,
	)

	require.Len(t, records, 1)
	assert.Equal(t, "New Name", records[0].Name)
	require.NotNil(t, records[0].Description)
	assert.Equal(t, "Updated description", *records[0].Description)
}

func Test_UpdateProjectDetails_EmptyName_ReturnsFieldError(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Keep This Name")

	request := projects_dto.UpdateProjectDetailsRequestDTO{Name: "   "}

	var envelope projects_dto.ResultEnvelopeDTO
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/details",
		"Bearer "+admin.Token,
		request,
		http.StatusOK,
		&envelope,
	)

	assert.Equal(t, projects_dto.ValidationTypeError, envelope.ResultCode.ValidationType)
	assert.Equal(t, "name is required", envelope.FieldErrors["name"])

	var records []projects_dto.ProjectRecordDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key(),
		"Bearer "+admin.Token,
		http.StatusOK,
		&records,
	)

	require.Len(t, records, 1)
	assert.Equal(t, "Keep This Name", records[0].Name)
}

func Test_UpdateProjectDetails_NameTooLong_ReturnsFieldError(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Limits Project")

	request := projects_dto.UpdateProjectDetailsRequestDTO{
		Name: strings.Repeat("x", 301),
	}

	var envelope projects_dto.ResultEnvelopeDTO
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/details",
		"Bearer "+admin.Token,
		request,
		http.StatusOK,
		&envelope,
	)

	assert.Equal(t, projects_dto.ValidationTypeError, envelope.ResultCode.ValidationType)
	assert.Contains(t, envelope.FieldErrors["name"], "at most 300")
}

func Test_UpdateProjectDetails_AsStaffMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Protected Project")
	projects_testing.AssignUserToProject(project, member, users_enums.ProjectRoleStaffMember)

	request := projects_dto.UpdateProjectDetailsRequestDTO{Name: "Hijacked"}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/details",
		"Bearer "+member.Token,
		request,
		http.StatusForbidden,
	)

	assert.Contains(t, string(resp.Body), "insufficient permissions to edit project details")
}

func Test_ListProjects_Member_SeesOnlyAssignedProjects(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController())
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	assignedProject := projects_testing.CreateTestProject("Assigned Project")
	projects_testing.CreateTestProject("Unassigned Project")
	projects_testing.AssignUserToProject(assignedProject, member, users_enums.ProjectRoleStaffMember)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+member.Token,
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Projects, 1)
	assert.Equal(t, assignedProject.Key(), response.Projects[0].Key)
}
