package users_enums

// Behavior names something a user can do on the project detail screen.
// Authorization stays a pure lookup from project role to behavior so the
// controllers never embed role knowledge themselves.
type Behavior string

const (
	BehaviorViewProject        Behavior = "VIEW_PROJECT"
	BehaviorManageProjectStaff Behavior = "MANAGE_PROJECT_STAFF"
	BehaviorEditProjectDetails Behavior = "EDIT_PROJECT_DETAILS"
	BehaviorEditProjectRules   Behavior = "EDIT_PROJECT_RULES"
)

var behaviorRoles = map[Behavior][]ProjectRole{
	BehaviorViewProject:        {ProjectRoleCoordinator, ProjectRoleStaffMember},
	BehaviorManageProjectStaff: {ProjectRoleCoordinator},
	BehaviorEditProjectDetails: {ProjectRoleCoordinator},
	BehaviorEditProjectRules:   {ProjectRoleCoordinator},
}

// Allows reports whether any of the held project roles grants the behavior.
func (b Behavior) Allows(roles ...ProjectRole) bool {
	required, ok := behaviorRoles[b]
	if !ok {
		return false
	}

	for _, held := range roles {
		for _, candidate := range required {
			if held == candidate {
				return true
			}
		}
	}

	return false
}
