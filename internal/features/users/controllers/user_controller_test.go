package users_controllers

import (
	"fmt"
	"net/http"
	"testing"

	users_dto "projectdesk/internal/features/users/dto"
	users_enums "projectdesk/internal/features/users/enums"
	users_middleware "projectdesk/internal/features/users/middleware"
	users_services "projectdesk/internal/features/users/services"
	users_testing "projectdesk/internal/features/users/testing"
	test_utils "projectdesk/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func createUsersTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Lifted for tests that sign in repeatedly; the rate limit test
	// installs its own tight limiter.
	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(1000), 1000))

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	if routerGroup, ok := protected.(*gin.RouterGroup); ok {
		GetUserController().RegisterProtectedRoutes(routerGroup)
		GetManagementController().RegisterRoutes(routerGroup)
	}

	return router
}

// createAccountWithPassword provisions a member account through the
// management API so its password hash is real and sign-in works.
func createAccountWithPassword(
	t *testing.T,
	router *gin.Engine,
	adminToken string,
	password string,
) users_dto.UserProfileResponseDTO {
	username := "member-" + uuid.New().String()[:8]

	request := users_dto.CreateUserRequestDTO{
		Username:    username,
		DisplayName: "Member " + username,
		Email:       username + "@test.com",
		Password:    password,
		Role:        users_enums.UserRoleMember,
	}

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users",
		"Bearer "+adminToken,
		request,
		http.StatusOK,
		&profile,
	)

	return profile
}

func Test_SignIn_ValidCredentials_ReturnsToken(t *testing.T) {
	router := createUsersTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	account := createAccountWithPassword(t, router, admin.Token, "correct-horse-battery")

	request := users_dto.SignInRequestDTO{
		Username: account.Username,
		Password: "correct-horse-battery",
	}

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, account.Username, response.Username)
	assert.Equal(t, users_enums.UserRoleMember, response.Role)
	assert.NotEmpty(t, response.Token)
}

func Test_SignIn_WrongPassword_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	account := createAccountWithPassword(t, router, admin.Token, "correct-horse-battery")

	request := users_dto.SignInRequestDTO{
		Username: account.Username,
		Password: "wrong-password",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "password is incorrect")
}

func Test_SignIn_UnknownUsername_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()

	request := users_dto.SignInRequestDTO{
		Username: "no-such-user-" + uuid.New().String()[:8],
		Password: "irrelevant",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "does not exist")
}

func Test_GetCurrentUser_WithValidToken_ReturnsProfile(t *testing.T) {
	router := createUsersTestRouter()
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+member.Token,
		http.StatusOK,
		&profile,
	)

	assert.Equal(t, member.Username, profile.Username)
	assert.Equal(t, users_enums.UserRoleMember, profile.Role)
	assert.True(t, profile.IsActive)
}

func Test_GetCurrentUser_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUsersTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
}

func Test_ChangePassword_ThenSignIn_UsesNewPassword(t *testing.T) {
	router := createUsersTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	account := createAccountWithPassword(t, router, admin.Token, "old-password-123")

	var signInResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Username: account.Username, Password: "old-password-123"},
		http.StatusOK,
		&signInResponse,
	)

	changeRequest := users_dto.ChangePasswordRequestDTO{NewPassword: "new-password-456"}
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+signInResponse.Token,
		changeRequest,
		http.StatusOK,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Username: account.Username, Password: "old-password-123"},
		http.StatusBadRequest,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Username: account.Username, Password: "new-password-456"},
		http.StatusOK,
	)
}

func Test_ChangePassword_TooShort_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)

	request := users_dto.ChangePasswordRequestDTO{NewPassword: "short"}

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+member.Token,
		request,
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "at least 8 characters")
}

func Test_ChangePassword_InvalidatesOldTokens(t *testing.T) {
	router := createUsersTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	account := createAccountWithPassword(t, router, admin.Token, "old-password-123")

	var firstSignIn users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Username: account.Username, Password: "old-password-123"},
		http.StatusOK,
		&firstSignIn,
	)

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+firstSignIn.Token,
		users_dto.ChangePasswordRequestDTO{NewPassword: "new-password-456"},
		http.StatusOK,
	)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+firstSignIn.Token,
		http.StatusUnauthorized,
	)

	require.NotNil(t, resp)
	assert.Contains(t, string(resp.Body), "sign in again")
}

func Test_SignIn_OverRateLimit_ReturnsTooManyRequests(t *testing.T) {
	router := createUsersTestRouter()

	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(3), 3))
	defer GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(1000), 1000))

	request := users_dto.SignInRequestDTO{
		Username: "rate-limit-probe",
		Password: "irrelevant",
	}

	sawRateLimit := false
	for i := 0; i < 10; i++ {
		resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
			Method: http.MethodPost,
			URL:    "/api/v1/users/signin",
			Body:   request,
		})
		if resp.Code == http.StatusTooManyRequests {
			sawRateLimit = true
			break
		}
		require.Equal(t, http.StatusBadRequest, resp.Code, fmt.Sprintf("attempt %d", i))
	}

	assert.True(t, sawRateLimit, "burst of sign-in attempts should trip the limiter")
}
