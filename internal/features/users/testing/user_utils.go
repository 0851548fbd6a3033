package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "projectdesk/internal/features/users/dto"
	users_enums "projectdesk/internal/features/users/enums"
	users_models "projectdesk/internal/features/users/models"
	users_repositories "projectdesk/internal/features/users/repositories"
	users_services "projectdesk/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	username := fmt.Sprintf("%s-%s", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Username:             username,
		DisplayName:          "Test " + username,
		Email:                username + "@test.com",
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 role,
		Status:               users_enums.UserStatusActive,
	}

	userRepository := &users_repositories.UserRepository{}
	err := userRepository.CreateUser(user)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func GetInitialAdminAccess() *users_dto.SignInResponseDTO {
	userService := users_services.GetUserService()
	if err := userService.CreateInitialAdmin(); err != nil {
		panic(err)
	}

	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByUsername("admin")
	if err != nil {
		panic(err)
	}

	response, err := userService.GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}
