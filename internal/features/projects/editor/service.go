package projects_editor

import (
	"errors"
	"fmt"
	"time"

	audit_logs "projectdesk/internal/features/audit_logs"
	projects_dto "projectdesk/internal/features/projects/dto"
	projects_services "projectdesk/internal/features/projects/services"
	users_models "projectdesk/internal/features/users/models"
	cache_utils "projectdesk/internal/util/cache"

	"github.com/google/uuid"
)

// SessionLifetime is how long an abandoned editor session survives in the
// cache before valkey expires it.
const SessionLifetime = 30 * time.Minute

type EditorService struct {
	projectService    *projects_services.ProjectService
	assignmentService *projects_services.AssignmentService
	auditLogService   *audit_logs.AuditLogService
	sessionCache      *cache_utils.CacheUtil[EditorState]
}

// CreateSession opens (or re-loads) a staff editor session for a project.
// A re-load with a non-empty working set leaves the working set unchanged;
// only an empty one is populated from the current assignments. The editing
// user's own entry is role-locked.
func (s *EditorService) CreateSession(
	key string,
	request *CreateSessionRequestDTO,
	user *users_models.User,
) (*EditorViewDTO, error) {
	assigned, err := s.assignmentService.GetAssignedStaff(key, user)
	if err != nil {
		return nil, err
	}

	candidates, err := s.assignmentService.GetCandidates(key, user)
	if err != nil {
		return nil, err
	}

	entries := make([]StaffEntry, len(assigned))
	for i, record := range assigned {
		entries[i] = StaffEntry{
			Username:    record.User.Username,
			DisplayName: record.User.DisplayName,
			Email:       record.User.Email,
			Role:        record.Role,
			RoleLocked:  record.User.Username == user.Username,
		}
	}

	pool := make([]Candidate, len(candidates))
	for i, candidate := range candidates {
		pool[i] = Candidate{
			Username:    candidate.Username,
			DisplayName: candidate.DisplayName,
			Email:       candidate.Email,
		}
	}

	var state *EditorState
	if request != nil && request.SessionID != nil {
		state = s.sessionCache.Get(request.SessionID.String())
	}

	if state == nil {
		state = &EditorState{
			SessionID:     uuid.New(),
			ProjectKey:    key,
			OwnerID:       user.ID,
			CandidatePool: pool,
			CreatedAt:     time.Now().UTC(),
		}
	} else {
		if state.OwnerID != user.ID {
			return nil, errors.New("editor session belongs to another user")
		}

		// A reload refreshes the candidate pool with users created since
		// the session was opened; users already removed from the working
		// set this session stay in the pool.
		for _, candidate := range pool {
			state.insertCandidateSorted(candidate)
		}
	}

	state.PopulateAssigned(entries)
	s.saveState(state)

	return s.buildView(state, ""), nil
}

// GetView returns the session's working set plus the candidate list
// filtered by the search term.
func (s *EditorService) GetView(sessionID uuid.UUID, term string, user *users_models.User) (*EditorViewDTO, error) {
	state, err := s.loadState(sessionID, user)
	if err != nil {
		return nil, err
	}

	return s.buildView(state, term), nil
}

func (s *EditorService) AddStaff(
	sessionID uuid.UUID,
	request *AddStaffRequestDTO,
	user *users_models.User,
) (*EditorViewDTO, error) {
	state, err := s.loadVersionedState(sessionID, request.Version, user)
	if err != nil {
		return nil, err
	}

	if err := state.AddStaff(request.Username); err != nil {
		return nil, err
	}

	s.saveState(state)

	return s.buildView(state, ""), nil
}

func (s *EditorService) SetRole(
	sessionID uuid.UUID,
	username string,
	request *SetRoleRequestDTO,
	user *users_models.User,
) (*EditorViewDTO, error) {
	state, err := s.loadVersionedState(sessionID, request.Version, user)
	if err != nil {
		return nil, err
	}

	if err := state.SetRole(username, request.Role); err != nil {
		return nil, err
	}

	s.saveState(state)

	return s.buildView(state, ""), nil
}

func (s *EditorService) ConfirmDeletion(
	sessionID uuid.UUID,
	username string,
	request *VersionedRequestDTO,
	user *users_models.User,
) (*EditorViewDTO, error) {
	state, err := s.loadVersionedState(sessionID, request.Version, user)
	if err != nil {
		return nil, err
	}

	if err := state.ConfirmDeletion(username); err != nil {
		return nil, err
	}

	s.saveState(state)

	return s.buildView(state, ""), nil
}

func (s *EditorService) ResolveDeletion(
	sessionID uuid.UUID,
	answer string,
	request *VersionedRequestDTO,
	user *users_models.User,
) (*EditorViewDTO, error) {
	if answer != "ok" && answer != "cancel" {
		return nil, fmt.Errorf("unknown deletion answer: %s", answer)
	}

	state, err := s.loadVersionedState(sessionID, request.Version, user)
	if err != nil {
		return nil, err
	}

	state.ResolveDeletion(answer == "ok")
	s.saveState(state)

	return s.buildView(state, ""), nil
}

// Submit validates the working set, enforces the coordinator cap, and
// replaces the project's assignment list. A validation or cap failure
// preserves the session so the user can correct it; a successful submit
// (including the empty no-op submit) deletes the session.
func (s *EditorService) Submit(
	sessionID uuid.UUID,
	request *VersionedRequestDTO,
	user *users_models.User,
) (*projects_dto.ResultEnvelopeDTO, error) {
	state, err := s.loadVersionedState(sessionID, request.Version, user)
	if err != nil {
		return nil, err
	}

	if len(state.Entries) == 0 {
		s.sessionCache.Invalidate(sessionID.String())
		return projects_dto.OkResult(), nil
	}

	if fieldErrors := state.ValidateForSubmit(); len(fieldErrors) > 0 {
		s.saveState(state)
		return projects_dto.FieldErrorResult("form is not filled in correctly", fieldErrors), nil
	}

	entries := make([]projects_dto.AssignmentEntryDTO, len(state.Entries))
	for i, entry := range state.Entries {
		entries[i] = projects_dto.AssignmentEntryDTO{
			Username: entry.Username,
			Role:     entry.Role,
		}
	}

	envelope, err := s.assignmentService.ReplaceAssignments(
		state.ProjectKey,
		&projects_dto.ReplaceAssignmentsRequestDTO{Entries: entries},
		user,
	)
	if err != nil {
		return nil, err
	}

	if !envelope.IsSuccess() {
		s.saveState(state)
		return envelope, nil
	}

	s.sessionCache.Invalidate(sessionID.String())

	return envelope, nil
}

// Discard drops the session, the modal-close path.
func (s *EditorService) Discard(sessionID uuid.UUID, user *users_models.User) error {
	state := s.sessionCache.Get(sessionID.String())
	if state == nil {
		return nil
	}

	if state.OwnerID != user.ID {
		return errors.New("editor session belongs to another user")
	}

	s.sessionCache.Invalidate(sessionID.String())

	return nil
}

func (s *EditorService) loadState(sessionID uuid.UUID, user *users_models.User) (*EditorState, error) {
	state := s.sessionCache.Get(sessionID.String())
	if state == nil {
		return nil, errors.New("editor session not found")
	}

	if state.OwnerID != user.ID {
		return nil, errors.New("editor session belongs to another user")
	}

	return state, nil
}

// loadVersionedState guards mutations against racing reloads: a request
// built against an older view is rejected instead of applied blindly.
func (s *EditorService) loadVersionedState(
	sessionID uuid.UUID,
	version int,
	user *users_models.User,
) (*EditorState, error) {
	state, err := s.loadState(sessionID, user)
	if err != nil {
		return nil, err
	}

	if version != state.Version {
		return nil, errors.New("editor session was reloaded, fetch the latest view first")
	}

	return state, nil
}

func (s *EditorService) saveState(state *EditorState) {
	state.Version++
	s.sessionCache.Set(state.SessionID.String(), state)
}

func (s *EditorService) buildView(state *EditorState, term string) *EditorViewDTO {
	return &EditorViewDTO{
		SessionID:          state.SessionID,
		ProjectKey:         state.ProjectKey,
		Version:            state.Version,
		Entries:            state.Entries,
		FilteredCandidates: state.FilterCandidates(term),
		PendingDeletion:    state.PendingDeletion,
	}
}
