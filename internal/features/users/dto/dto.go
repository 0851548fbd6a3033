package users_dto

import (
	"time"

	users_enums "projectdesk/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignInRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID      uuid.UUID            `json:"userId"`
	Username    string               `json:"username"`
	DisplayName string               `json:"displayName"`
	Role        users_enums.UserRole `json:"role"`
	Token       string               `json:"token"`
}

type SetAdminPasswordRequestDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type IsAdminHasPasswordResponseDTO struct {
	HasPassword bool `json:"hasPassword"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type CreateUserRequestDTO struct {
	Username    string               `json:"username"    binding:"required,min=2,max=32"`
	DisplayName string               `json:"displayName" binding:"required,min=1,max=255"`
	Email       string               `json:"email"       binding:"required,email"`
	Password    string               `json:"password"    binding:"required,min=8"`
	Role        users_enums.UserRole `json:"role"        binding:"required"`
}

type UserProfileResponseDTO struct {
	ID          uuid.UUID            `json:"id"`
	Username    string               `json:"username"`
	DisplayName string               `json:"displayName"`
	Email       string               `json:"email"`
	Role        users_enums.UserRole `json:"role"`
	IsActive    bool                 `json:"isActive"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}

type ListUsersRequestDTO struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type ChangeUserRoleRequestDTO struct {
	Role users_enums.UserRole `json:"role" binding:"required"`
}
