package projects_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project is identified to clients by its business key, the concatenation
// of the type code and the zero-padded four digit number (e.g. "WET1234").
type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	TypeCode    string    `json:"typeCode"    gorm:"column:type_code"`
	Number      string    `json:"number"      gorm:"column:number"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description *string   `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`

	// Used for caching non-existent projects
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) Key() string {
	return p.TypeCode + p.Number
}

// ParseProjectKey splits a project key into its type code and number.
// The last 4 characters are the number, the remainder is the type code.
func ParseProjectKey(key string) (string, string, error) {
	if len(key) <= 4 {
		return "", "", errors.New("project key is too short")
	}

	typeCode := key[:len(key)-4]
	number := key[len(key)-4:]

	for _, c := range number {
		if c < '0' || c > '9' {
			return "", "", errors.New("project key must end with a 4-digit number")
		}
	}

	return typeCode, number, nil
}
