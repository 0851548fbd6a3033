package users_models

import (
	"time"

	users_enums "projectdesk/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID              `json:"id"`
	Username             string                 `json:"username"    gorm:"column:username"`
	DisplayName          string                 `json:"displayName" gorm:"column:display_name"`
	Email                string                 `json:"email"`
	HashedPassword       *string                `json:"-"           gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"           gorm:"column:password_creation_time"`
	Role                 users_enums.UserRole   `json:"role"`
	Status               users_enums.UserStatus `json:"status"`
	CreatedAt            time.Time              `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) CanManageUsers() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}

// RoleNames lists the global role names held by the user, the shape the
// staff candidate endpoints expose.
func (u *User) RoleNames() []string {
	return []string{string(u.Role)}
}
