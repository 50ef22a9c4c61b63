package taskgate

import (
	"context"

	"github.com/orchidsoft/taskgate/permission"
)

// Department is a department reference as the backend reports it on
// profiles and permission payloads.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Profile is the authenticated user's identity record.
//
// Role is one of the four org roles (admin, dept_manager, prof_manager,
// executor). Department is nil for users without a department assignment.
type Profile struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	FullName    string          `json:"full_name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Role        permission.Role `json:"role"`
	IsSuperuser bool            `json:"is_superuser"`
	Department  *Department     `json:"department,omitempty"`
}

// PermissionSet is the server-declared permission payload: named boolean
// capability flags plus the departments a dept_manager administers.
//
// The set is derived state. It is idempotently replaced as a whole by
// FetchPermissions and never patched field by field.
type PermissionSet struct {
	CanCreateTask      bool         `json:"can_create_task"`
	CanManageUsers     bool         `json:"can_manage_users"`
	IsAdmin            bool         `json:"is_admin"`
	ManagedDepartments []Department `json:"managed_departments"`
}

// DefaultPermissionSet is the fixed fallback applied when the permission
// fetch times out or fails: task creation allowed, user management denied,
// no managed departments.
func DefaultPermissionSet() PermissionSet {
	return PermissionSet{
		CanCreateTask:      true,
		CanManageUsers:     false,
		ManagedDepartments: []Department{},
	}
}

// LoginResult is the payload of a successful authentication call.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Profile      *Profile
}

// Gateway is the opaque network contract the Session consumes. The api
// subpackage provides the HTTP implementation; tests substitute mocks.
//
// All methods are blocking and honor ctx cancellation. Implementations
// must not retain references to returned values.
type Gateway interface {
	// Authenticate exchanges credentials for token pair and profile.
	Authenticate(ctx context.Context, username, password string) (*LoginResult, error)
	// EndSession invalidates the refresh token server-side.
	EndSession(ctx context.Context, refreshToken string) error
	// RenewToken exchanges a refresh token for a fresh access token.
	RenewToken(ctx context.Context, refreshToken string) (string, error)
	// FetchProfile returns the profile bound to the current access token.
	FetchProfile(ctx context.Context) (*Profile, error)
	// FetchPermissionSet returns the server-declared permission payload.
	FetchPermissionSet(ctx context.Context) (*PermissionSet, error)
}
