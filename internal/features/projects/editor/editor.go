package projects_editor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	users_enums "projectdesk/internal/features/users/enums"

	"github.com/google/uuid"
)

// StaffEntry is one row of the editor's working set. The role stays empty
// until the user picks one; a locked role belongs to the editing user's
// own entry and cannot be changed through the editor.
type StaffEntry struct {
	Username    string                  `json:"username"`
	DisplayName string                  `json:"displayName"`
	Email       string                  `json:"email"`
	Role        users_enums.ProjectRole `json:"role"`
	RoleLocked  bool                    `json:"roleLocked"`
}

type Candidate struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// EditorState is the whole working state of one staff editor session.
// There is exactly ONE ordered entry collection; the plain staff list and
// the editable role list are views over it, so there is no parallel-array
// alignment to maintain. The candidate pool keeps every loaded candidate
// plus users removed from the working set; the candidate view is always
// recomputed from the pool by excluding assigned usernames.
type EditorState struct {
	SessionID  uuid.UUID `json:"sessionId"`
	ProjectKey string    `json:"projectKey"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Version    int       `json:"version"`

	Entries         []StaffEntry `json:"entries"`
	CandidatePool   []Candidate  `json:"candidatePool"`
	PendingDeletion string       `json:"pendingDeletion"`

	CreatedAt time.Time `json:"createdAt"`
}

// PopulateAssigned fills the working set from the project's current
// assignments. It is idempotent: when the working set already has entries
// a reload leaves it untouched, so a racing second load cannot duplicate
// rows.
func (s *EditorState) PopulateAssigned(entries []StaffEntry) {
	if len(s.Entries) > 0 {
		return
	}

	s.Entries = append([]StaffEntry{}, entries...)
}

// FilterCandidates derives the visible candidate list: a case-insensitive
// substring match of the term against the display name, minus every
// username already in the working set. It is recomputed from the full pool
// on every call because both the term and the assigned set move between
// calls.
func (s *EditorState) FilterCandidates(term string) []Candidate {
	assigned := make(map[string]bool, len(s.Entries))
	for _, entry := range s.Entries {
		assigned[entry.Username] = true
	}

	loweredTerm := strings.ToLower(term)

	filtered := make([]Candidate, 0, len(s.CandidatePool))
	for _, candidate := range s.CandidatePool {
		if assigned[candidate.Username] {
			continue
		}

		if term != "" && !strings.Contains(strings.ToLower(candidate.DisplayName), loweredTerm) {
			continue
		}

		filtered = append(filtered, candidate)
	}

	return filtered
}

// AddStaff moves a candidate into the working set with an unset role; the
// role must be chosen before submit passes validation.
func (s *EditorState) AddStaff(username string) error {
	for _, entry := range s.Entries {
		if entry.Username == username {
			return fmt.Errorf("user %s is already assigned", username)
		}
	}

	for _, candidate := range s.CandidatePool {
		if candidate.Username == username {
			s.Entries = append(s.Entries, StaffEntry{
				Username:    candidate.Username,
				DisplayName: candidate.DisplayName,
				Email:       candidate.Email,
			})
			return nil
		}
	}

	return fmt.Errorf("user %s is not an available candidate", username)
}

func (s *EditorState) SetRole(username string, role users_enums.ProjectRole) error {
	if !role.IsValid() {
		return fmt.Errorf("unknown role: %s", role)
	}

	for i, entry := range s.Entries {
		if entry.Username != username {
			continue
		}

		if entry.RoleLocked {
			return errors.New("you cannot change your own role")
		}

		s.Entries[i].Role = role
		return nil
	}

	return fmt.Errorf("user %s is not in the working set", username)
}

// ConfirmDeletion starts the two-step removal: the entry is marked pending
// and nothing mutates until the answer arrives.
func (s *EditorState) ConfirmDeletion(username string) error {
	for _, entry := range s.Entries {
		if entry.Username == username {
			s.PendingDeletion = username
			return nil
		}
	}

	return fmt.Errorf("user %s is not in the working set", username)
}

// ResolveDeletion finishes the two-step removal. A confirmation removes
// the pending entry and re-inserts the user into the candidate pool at the
// position preserving ascending display-name order; a cancellation clears
// the pending slot without mutating the working set. With nothing pending
// both answers are no-ops.
func (s *EditorState) ResolveDeletion(confirmed bool) {
	if s.PendingDeletion == "" {
		return
	}

	username := s.PendingDeletion
	s.PendingDeletion = ""

	if !confirmed {
		return
	}

	for i, entry := range s.Entries {
		if entry.Username != username {
			continue
		}

		removed := entry
		s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
		s.insertCandidateSorted(Candidate{
			Username:    removed.Username,
			DisplayName: removed.DisplayName,
			Email:       removed.Email,
		})
		return
	}
}

func (s *EditorState) insertCandidateSorted(candidate Candidate) {
	for _, existing := range s.CandidatePool {
		if existing.Username == candidate.Username {
			return
		}
	}

	position := sort.Search(len(s.CandidatePool), func(i int) bool {
		return strings.ToLower(s.CandidatePool[i].DisplayName) >= strings.ToLower(candidate.DisplayName)
	})

	s.CandidatePool = append(s.CandidatePool, Candidate{})
	copy(s.CandidatePool[position+1:], s.CandidatePool[position:])
	s.CandidatePool[position] = candidate
}

// CountCoordinators counts working-set entries carrying the coordinator
// role, the input to the pre-submit cap check.
func (s *EditorState) CountCoordinators() int {
	return CountCoordinators(s.Entries)
}

func CountCoordinators(entries []StaffEntry) int {
	count := 0
	for _, entry := range entries {
		if entry.Role == users_enums.ProjectRoleCoordinator {
			count++
		}
	}

	return count
}

// ValidateForSubmit reports per-entry field errors; an entry without a
// chosen role blocks submission.
func (s *EditorState) ValidateForSubmit() map[string]string {
	fieldErrors := map[string]string{}

	for _, entry := range s.Entries {
		if entry.Role == "" {
			fieldErrors[entry.Username] = "a role must be chosen"
		} else if !entry.Role.IsValid() {
			fieldErrors[entry.Username] = fmt.Sprintf("unknown role: %s", entry.Role)
		}
	}

	return fieldErrors
}
