package permission

// Role is the org role carried on the user profile.
type Role string

const (
	// RoleAdmin holds every capability regardless of explicit flags.
	RoleAdmin Role = "admin"
	// RoleDeptManager administers the departments listed in the
	// permission payload's managed departments.
	RoleDeptManager Role = "dept_manager"
	// RoleProfManager is the professional-line manager role.
	RoleProfManager Role = "prof_manager"
	// RoleExecutor is the base task-executing role.
	RoleExecutor Role = "executor"
)

// Check is one named capability from the closed check set.
type Check uint8

const (
	// CheckUnknown is the zero Check; it always resolves to false.
	CheckUnknown Check = iota
	// CheckCreateTask maps the can_create_task flag.
	CheckCreateTask
	// CheckManageUsers maps the can_manage_users flag.
	CheckManageUsers
	// CheckIsAdmin is true for the admin role, superusers, and the
	// explicit is_admin flag.
	CheckIsAdmin
	// CheckIsDeptManager is true iff the role is dept_manager.
	CheckIsDeptManager
	// CheckIsProfManager is true iff the role is prof_manager.
	CheckIsProfManager
)

const (
	// NameCreateTask is the wire/routing name of CheckCreateTask.
	NameCreateTask = "can_create_task"
	// NameManageUsers is the wire/routing name of CheckManageUsers.
	NameManageUsers = "can_manage_users"
	// NameIsAdmin is the wire/routing name of CheckIsAdmin.
	NameIsAdmin = "is_admin"
	// NameIsDeptManager is the wire/routing name of CheckIsDeptManager.
	NameIsDeptManager = "is_dept_manager"
	// NameIsProfManager is the wire/routing name of CheckIsProfManager.
	NameIsProfManager = "is_prof_manager"
)

// ParseCheck resolves a capability name from route metadata into its
// Check. Unknown names return (CheckUnknown, false).
func ParseCheck(name string) (Check, bool) {
	switch name {
	case NameCreateTask:
		return CheckCreateTask, true
	case NameManageUsers:
		return CheckManageUsers, true
	case NameIsAdmin:
		return CheckIsAdmin, true
	case NameIsDeptManager:
		return CheckIsDeptManager, true
	case NameIsProfManager:
		return CheckIsProfManager, true
	default:
		return CheckUnknown, false
	}
}

// Set is a snapshot of the server-declared permission flags plus the IDs
// of the departments a dept_manager administers.
type Set struct {
	CanCreateTask      bool
	CanManageUsers     bool
	IsAdmin            bool
	ManagedDepartments []int64
}

// DefaultSet is the degraded-mode fallback: task creation allowed, user
// management denied, no managed departments.
func DefaultSet() Set {
	return Set{
		CanCreateTask:      true,
		CanManageUsers:     false,
		ManagedDepartments: nil,
	}
}

// Input is one capability query: the role and flags snapshot plus the
// user's own department (0 when unassigned).
type Input struct {
	Role       Role
	Superuser  bool
	Flags      Set
	Department int64
}

// IsAdmin reports whether the input holds admin capability through any of
// the three grants: admin role, superuser bit, or explicit is_admin flag.
func IsAdmin(in Input) bool {
	return in.Role == RoleAdmin || in.Superuser || in.Flags.IsAdmin
}

// Resolve decides one named capability. Admin capability short-circuits
// every check to true.
func Resolve(in Input, check Check) bool {
	if IsAdmin(in) {
		return true
	}

	switch check {
	case CheckCreateTask:
		return in.Flags.CanCreateTask
	case CheckManageUsers:
		return in.Flags.CanManageUsers
	case CheckIsAdmin:
		return false
	case CheckIsDeptManager:
		return in.Role == RoleDeptManager
	case CheckIsProfManager:
		return in.Role == RoleProfManager
	default:
		return false
	}
}

// CanAccessDepartment decides department-scoped access: admins reach
// everything, dept_managers reach their managed departments, everyone
// else only their own department.
func CanAccessDepartment(in Input, dept int64) bool {
	if IsAdmin(in) {
		return true
	}
	if in.Role == RoleDeptManager {
		for _, id := range in.Flags.ManagedDepartments {
			if id == dept {
				return true
			}
		}
		return false
	}
	return in.Department != 0 && in.Department == dept
}
