package users_services

import (
	"errors"
	"fmt"
	"time"

	users_dto "projectdesk/internal/features/users/dto"
	users_enums "projectdesk/internal/features/users/enums"
	users_interfaces "projectdesk/internal/features/users/interfaces"
	users_models "projectdesk/internal/features/users/models"
	users_repositories "projectdesk/internal/features/users/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserManagementService covers the account administration module: accounts
// are provisioned by administrators, there is no self-registration.
type UserManagementService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *UserManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserManagementService) CreateUser(
	request *users_dto.CreateUserRequestDTO,
	createdBy *users_models.User,
) (*users_dto.UserProfileResponseDTO, error) {
	if !createdBy.CanManageUsers() {
		return nil, errors.New("insufficient permissions to create users")
	}

	if !request.Role.IsValid() {
		return nil, errors.New("invalid user role")
	}

	existingUser, err := s.userRepository.GetUserByUsername(request.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, errors.New("user with this username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Username:             request.Username,
		DisplayName:          request.DisplayName,
		Email:                request.Email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 request.Role,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User account created: %s", user.Username),
		&createdBy.ID,
		nil,
	)

	return mapUserProfile(user), nil
}

func (s *UserManagementService) GetUsers(
	request *users_dto.ListUsersRequestDTO,
	user *users_models.User,
) (*users_dto.ListUsersResponseDTO, error) {
	if !user.CanManageUsers() {
		return nil, errors.New("insufficient permissions to list users")
	}

	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	users, total, err := s.userRepository.GetUsers(limit, offset, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, len(users))
	for i, u := range users {
		profiles[i] = *mapUserProfile(u)
	}

	return &users_dto.ListUsersResponseDTO{
		Users: profiles,
		Total: total,
	}, nil
}

func (s *UserManagementService) ChangeUserRole(
	userID uuid.UUID,
	request *users_dto.ChangeUserRoleRequestDTO,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return errors.New("insufficient permissions to change user roles")
	}

	if userID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	if !request.Role.IsValid() {
		return errors.New("invalid user role")
	}

	targetUser, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.userRepository.UpdateUserRole(userID, request.Role); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User role changed: %s from %s to %s", targetUser.Username, targetUser.Role, request.Role),
		&changedBy.ID,
		nil,
	)

	return nil
}

func (s *UserManagementService) DeactivateUser(userID uuid.UUID, deactivatedBy *users_models.User) error {
	if !deactivatedBy.CanManageUsers() {
		return errors.New("insufficient permissions to deactivate users")
	}

	if userID == deactivatedBy.ID {
		return errors.New("cannot deactivate your own account")
	}

	targetUser, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.userRepository.UpdateUserStatus(userID, users_enums.UserStatusDeactivated); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User account deactivated: %s", targetUser.Username),
		&deactivatedBy.ID,
		nil,
	)

	return nil
}

func mapUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        user.Role,
		IsActive:    user.IsActiveUser(),
		CreatedAt:   user.CreatedAt,
	}
}
