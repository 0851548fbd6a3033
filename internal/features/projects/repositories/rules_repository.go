package projects_repositories

import (
	"errors"
	"time"

	projects_models "projectdesk/internal/features/projects/models"
	"projectdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RulesRepository struct{}

func (r *RulesRepository) GetRules(projectID uuid.UUID) (*projects_models.ProjectRules, error) {
	var rules projects_models.ProjectRules

	err := storage.GetDb().Where("project_id = ?", projectID).First(&rules).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &rules, nil
}

// ReplaceRules upserts the per-project rules record wholesale.
func (r *RulesRepository) ReplaceRules(rules *projects_models.ProjectRules) error {
	rules.UpdatedAt = time.Now().UTC()

	return storage.GetDb().
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			UpdateAll: true,
		}).
		Create(rules).Error
}
