package projects_repositories

import (
	"errors"
	"time"

	projects_models "projectdesk/internal/features/projects/models"
	users_enums "projectdesk/internal/features/users/enums"
	users_models "projectdesk/internal/features/users/models"
	"projectdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository struct{}

// AssignedStaffRow joins an assignment with the assigned user's record.
type AssignedStaffRow struct {
	UserID      uuid.UUID               `gorm:"column:user_id"`
	Username    string                  `gorm:"column:username"`
	DisplayName string                  `gorm:"column:display_name"`
	Email       string                  `gorm:"column:email"`
	Role        users_enums.ProjectRole `gorm:"column:role"`
}

func (r *AssignmentRepository) GetAssignedStaff(projectID uuid.UUID) ([]*AssignedStaffRow, error) {
	rows := make([]*AssignedStaffRow, 0)

	err := storage.GetDb().
		Table("project_assignments pa").
		Select("pa.user_id, u.username, u.display_name, u.email, pa.role").
		Joins("JOIN users u ON pa.user_id = u.id").
		Where("pa.project_id = ?", projectID).
		Order("pa.created_at ASC").
		Scan(&rows).Error

	return rows, err
}

// GetUnassignedUsers returns active users without an assignment on the
// project, ordered by display name for the candidate list.
func (r *AssignmentRepository) GetUnassignedUsers(projectID uuid.UUID) ([]*users_models.User, error) {
	var users []*users_models.User

	err := storage.GetDb().
		Where("status = ?", users_enums.UserStatusActive).
		Where(
			"id NOT IN (?)",
			storage.GetDb().
				Table("project_assignments").
				Select("user_id").
				Where("project_id = ?", projectID),
		).
		Order("display_name ASC").
		Find(&users).Error

	return users, err
}

func (r *AssignmentRepository) GetUserRole(projectID, userID uuid.UUID) (*users_enums.ProjectRole, error) {
	var assignment projects_models.ProjectAssignment

	err := storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &assignment.Role, nil
}

// ReplaceAssignments swaps the project's full assignment list in one
// transaction; the submit operation is a wholesale replace.
func (r *AssignmentRepository) ReplaceAssignments(
	projectID uuid.UUID,
	assignments []*projects_models.ProjectAssignment,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("project_id = ?", projectID).
			Delete(&projects_models.ProjectAssignment{}).Error; err != nil {
			return err
		}

		for _, assignment := range assignments {
			if assignment.ID == uuid.Nil {
				assignment.ID = uuid.New()
			}
			if assignment.CreatedAt.IsZero() {
				assignment.CreatedAt = time.Now().UTC()
			}
			assignment.ProjectID = projectID

			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AssignmentRepository) CountAssignments(projectID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.ProjectAssignment{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}
