package users_enums

// ProjectRole is the role a staff member holds on a single project.
// The set is closed: every assignment carries exactly one of these values.
type ProjectRole string

const (
	ProjectRoleCoordinator ProjectRole = "PROJECT_COORDINATOR"
	ProjectRoleStaffMember ProjectRole = "PROJECT_STAFF_MEMBER"
)

// MaxCoordinatorsPerProject caps how many assignments on one project may
// carry the coordinator role.
const MaxCoordinatorsPerProject = 3

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleCoordinator, ProjectRoleStaffMember:
		return true
	default:
		return false
	}
}

func (r ProjectRole) DisplayValue() string {
	switch r {
	case ProjectRoleCoordinator:
		return "Project coordinator"
	case ProjectRoleStaffMember:
		return "Project staff member"
	default:
		return string(r)
	}
}
