package projects_editor

import (
	"net/http"
	"testing"

	projects_dto "projectdesk/internal/features/projects/dto"
	projects_testing "projectdesk/internal/features/projects/testing"
	users_enums "projectdesk/internal/features/users/enums"
	users_testing "projectdesk/internal/features/users/testing"
	test_utils "projectdesk/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StaffEditorFlow_AddRemoveSubmit_CompletesSuccessfully(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	first := users_testing.CreateTestUser(users_enums.UserRoleMember)
	second := users_testing.CreateTestUser(users_enums.UserRoleMember)
	candidate := users_testing.CreateTestUser(users_enums.UserRoleMember)

	project := projects_testing.CreateTestProject("Editor Flow Project")
	projects_testing.AssignUserToProject(project, first, users_enums.ProjectRoleCoordinator)
	projects_testing.AssignUserToProject(project, second, users_enums.ProjectRoleStaffMember)

	// Open the editor: working set mirrors the current assignments
	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)

	require.Len(t, view.Entries, 2)
	sessionID := view.SessionID.String()

	// Add a candidate: it joins the working set with no role yet
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/staff",
		"Bearer "+admin.Token,
		AddStaffRequestDTO{Username: candidate.Username, Version: view.Version},
		http.StatusOK,
		&view,
	)

	require.Len(t, view.Entries, 3)
	assert.Equal(t, candidate.Username, view.Entries[2].Username)
	assert.Empty(t, view.Entries[2].Role)

	// The added user disappears from the candidate list
	for _, c := range view.FilteredCandidates {
		assert.NotEqual(t, candidate.Username, c.Username)
	}

	// Choose a role for the new entry
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/staff/"+candidate.Username+"/role",
		"Bearer "+admin.Token,
		SetRoleRequestDTO{Role: users_enums.ProjectRoleStaffMember, Version: view.Version},
		http.StatusOK,
		&view,
	)

	assert.Equal(t, users_enums.ProjectRoleStaffMember, view.Entries[2].Role)

	// Two-step removal of the first entry
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/staff/"+first.Username+"/confirm-deletion",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&view,
	)

	assert.Equal(t, first.Username, view.PendingDeletion)
	require.Len(t, view.Entries, 3, "confirmation alone must not mutate the working set")

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/deletion/ok",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&view,
	)

	require.Len(t, view.Entries, 2)
	for _, entry := range view.Entries {
		assert.NotEqual(t, first.Username, entry.Username)
	}

	// The removed user is available as a candidate again
	removedIsCandidate := false
	for _, c := range view.FilteredCandidates {
		if c.Username == first.Username {
			removedIsCandidate = true
		}
	}
	assert.True(t, removedIsCandidate)

	// Submit persists the working set and closes the session
	var envelope projects_dto.ResultEnvelopeDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/submit",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&envelope,
	)

	assert.Equal(t, projects_dto.ValidationTypeOk, envelope.ResultCode.ValidationType)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID,
		"Bearer "+admin.Token,
		http.StatusNotFound,
	)
}

func Test_StaffEditor_CancelledDeletion_KeepsEntry(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	staff := users_testing.CreateTestUser(users_enums.UserRoleMember)

	project := projects_testing.CreateTestProject("Cancel Deletion Project")
	projects_testing.AssignUserToProject(project, staff, users_enums.ProjectRoleStaffMember)

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)
	sessionID := view.SessionID.String()

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/staff/"+staff.Username+"/confirm-deletion",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&view,
	)

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/deletion/cancel",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&view,
	)

	assert.Empty(t, view.PendingDeletion)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, staff.Username, view.Entries[0].Username)
}

func Test_StaffEditor_SubmitWithFourCoordinators_PreservesSession(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Editor Cap Project")

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)
	sessionID := view.SessionID.String()

	for i := 0; i < 4; i++ {
		staff := users_testing.CreateTestUser(users_enums.UserRoleMember)

		// New users are not in the session's candidate pool; re-open the
		// session so the pool refreshes while the working set is kept
		test_utils.MakePostRequestAndUnmarshal(
			t,
			router,
			"/api/v1/projects/"+project.Key()+"/staff-editor",
			"Bearer "+admin.Token,
			CreateSessionRequestDTO{SessionID: &view.SessionID},
			http.StatusOK,
			&view,
		)

		test_utils.MakePostRequestAndUnmarshal(
			t,
			router,
			"/api/v1/staff-editor/"+sessionID+"/staff",
			"Bearer "+admin.Token,
			AddStaffRequestDTO{Username: staff.Username, Version: view.Version},
			http.StatusOK,
			&view,
		)

		test_utils.MakePutRequestAndUnmarshal(
			t,
			router,
			"/api/v1/staff-editor/"+sessionID+"/staff/"+staff.Username+"/role",
			"Bearer "+admin.Token,
			SetRoleRequestDTO{Role: users_enums.ProjectRoleCoordinator, Version: view.Version},
			http.StatusOK,
			&view,
		)
	}

	var envelope projects_dto.ResultEnvelopeDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/submit",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&envelope,
	)

	assert.Equal(t, projects_dto.ValidationTypeError, envelope.ResultCode.ValidationType)
	assert.Contains(t, envelope.ResultCode.Message, "at most 3 coordinators")

	// The session survives a rejected submit so the user can correct it
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID,
		"Bearer "+admin.Token,
		http.StatusOK,
		&view,
	)
	assert.Len(t, view.Entries, 4)
}

func Test_StaffEditor_SubmitWithoutRole_ReturnsFieldErrorAndPreservesSession(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	staff := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Editor Validation Project")

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)
	sessionID := view.SessionID.String()

	// Refresh pool so the fresh user is addable
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{SessionID: &view.SessionID},
		http.StatusOK,
		&view,
	)

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/staff",
		"Bearer "+admin.Token,
		AddStaffRequestDTO{Username: staff.Username, Version: view.Version},
		http.StatusOK,
		&view,
	)

	var envelope projects_dto.ResultEnvelopeDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/submit",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&envelope,
	)

	assert.Equal(t, projects_dto.ValidationTypeError, envelope.ResultCode.ValidationType)
	assert.Equal(t, "a role must be chosen", envelope.FieldErrors[staff.Username])

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID,
		"Bearer "+admin.Token,
		http.StatusOK,
	)
}

func Test_StaffEditor_StaleVersion_ReturnsConflict(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	staff := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Stale Version Project")
	projects_testing.AssignUserToProject(project, staff, users_enums.ProjectRoleStaffMember)

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)
	sessionID := view.SessionID.String()

	staleVersion := view.Version

	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/staff/"+staff.Username+"/confirm-deletion",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: view.Version},
		http.StatusOK,
		&view,
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID+"/deletion/ok",
		"Bearer "+admin.Token,
		VersionedRequestDTO{Version: staleVersion},
		http.StatusConflict,
	)

	assert.Contains(t, string(resp.Body), "session was reloaded")
}

func Test_StaffEditor_SessionOfAnotherUser_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	otherAdmin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Session Ownership Project")

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/staff-editor/"+view.SessionID.String(),
		"Bearer "+otherAdmin.Token,
		http.StatusForbidden,
	)

	assert.Contains(t, string(resp.Body), "belongs to another user")
}

func Test_StaffEditor_Discard_DropsSession(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject("Discard Project")

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)
	sessionID := view.SessionID.String()

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID,
		"Bearer "+admin.Token,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/staff-editor/"+sessionID,
		"Bearer "+admin.Token,
		http.StatusNotFound,
	)
}

func Test_StaffEditor_SearchTerm_FiltersCandidates(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetEditorController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	target := users_testing.CreateTestUser(users_enums.UserRoleMember)
	users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Search Project")

	var view EditorViewDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.Key()+"/staff-editor",
		"Bearer "+admin.Token,
		CreateSessionRequestDTO{},
		http.StatusOK,
		&view,
	)

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/staff-editor/"+view.SessionID.String()+"?term="+target.Username,
		"Bearer "+admin.Token,
		http.StatusOK,
		&view,
	)

	require.Len(t, view.FilteredCandidates, 1)
	assert.Equal(t, target.Username, view.FilteredCandidates[0].Username)
}
