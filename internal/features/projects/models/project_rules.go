package projects_models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectRules is the per-project business rules record. The reference
// date is persisted in the backend format dd-MM-yyyy; an empty string
// means no date is set. The rules record is replaced wholesale on submit.
type ProjectRules struct {
	ProjectID          uuid.UUID `json:"projectId"          gorm:"column:project_id;primaryKey"`
	DiscountPercentage float64   `json:"discountPercentage" gorm:"column:discount_percentage"`
	ReferenceDate      string    `json:"referenceDate"      gorm:"column:reference_date"`
	UpdatedAt          time.Time `json:"updatedAt"          gorm:"column:updated_at"`
}

func (ProjectRules) TableName() string {
	return "project_rules"
}
