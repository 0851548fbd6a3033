package projects_repositories

import (
	"time"

	projects_models "projectdesk/internal/features/projects/models"
	"projectdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByKey(typeCode, number string) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.GetDb().
		Where("type_code = ? AND number = ?", typeCode, number).
		First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProjectDetails(projectID uuid.UUID, name string, description *string) error {
	return storage.GetDb().Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"name":        name,
			"description": description,
		}).Error
}

func (r *ProjectRepository) GetAllProjects() ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().Order("type_code ASC, number ASC").Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) GetProjectsAssignedToUser(userID uuid.UUID) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Joins("JOIN project_assignments pa ON pa.project_id = projects.id").
		Where("pa.user_id = ?", userID).
		Order("projects.type_code ASC, projects.number ASC").
		Find(&projects).Error

	return projects, err
}
