package projects_models

import (
	"time"

	users_enums "projectdesk/internal/features/users/enums"

	"github.com/google/uuid"
)

type ProjectAssignment struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	CreatedAt time.Time               `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectAssignment) TableName() string {
	return "project_assignments"
}
