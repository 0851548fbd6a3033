package projects_editor

import (
	users_enums "projectdesk/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateSessionRequestDTO struct {
	// When set, the existing session is re-loaded instead of replaced;
	// a non-empty working set survives the reload unchanged.
	SessionID *uuid.UUID `json:"sessionId"`
}

type EditorViewDTO struct {
	SessionID          uuid.UUID    `json:"sessionId"`
	ProjectKey         string       `json:"projectKey"`
	Version            int          `json:"version"`
	Entries            []StaffEntry `json:"entries"`
	FilteredCandidates []Candidate  `json:"filteredCandidates"`
	PendingDeletion    string       `json:"pendingDeletion,omitempty"`
}

type AddStaffRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Version  int    `json:"version"`
}

type SetRoleRequestDTO struct {
	Role    users_enums.ProjectRole `json:"role" binding:"required"`
	Version int                     `json:"version"`
}

type VersionedRequestDTO struct {
	Version int `json:"version"`
}
