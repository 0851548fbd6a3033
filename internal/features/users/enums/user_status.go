package users_enums

type UserStatus string

const (
	UserStatusActive      UserStatus = "ACTIVE"
	UserStatusDeactivated UserStatus = "DEACTIVATED"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusDeactivated:
		return true
	default:
		return false
	}
}
