package permission

import "testing"

func TestParseCheckClosedSet(t *testing.T) {
	known := map[string]Check{
		"can_create_task":  CheckCreateTask,
		"can_manage_users": CheckManageUsers,
		"is_admin":         CheckIsAdmin,
		"is_dept_manager":  CheckIsDeptManager,
		"is_prof_manager":  CheckIsProfManager,
	}

	for name, want := range known {
		got, ok := ParseCheck(name)
		if !ok || got != want {
			t.Fatalf("ParseCheck(%q) = (%v, %v), want (%v, true)", name, got, ok, want)
		}
	}

	for _, name := range []string{"", "can_delete_task", "CAN_CREATE_TASK", "admin", "is_admin "} {
		if got, ok := ParseCheck(name); ok {
			t.Fatalf("ParseCheck(%q) unexpectedly resolved to %v", name, got)
		}
	}
}

func TestIsAdminGrants(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want bool
	}{
		{"admin role", Input{Role: RoleAdmin}, true},
		{"superuser executor", Input{Role: RoleExecutor, Superuser: true}, true},
		{"is_admin flag", Input{Role: RoleExecutor, Flags: Set{IsAdmin: true}}, true},
		{"plain executor", Input{Role: RoleExecutor}, false},
		{"plain dept manager", Input{Role: RoleDeptManager}, false},
		{"empty input", Input{}, false},
	}

	for _, tc := range cases {
		if got := IsAdmin(tc.in); got != tc.want {
			t.Fatalf("%s: IsAdmin = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveAdminShortCircuit(t *testing.T) {
	in := Input{Role: RoleAdmin, Flags: Set{CanCreateTask: false, CanManageUsers: false}}

	for _, check := range []Check{CheckCreateTask, CheckManageUsers, CheckIsAdmin, CheckIsDeptManager, CheckIsProfManager} {
		if !Resolve(in, check) {
			t.Fatalf("admin denied check %v", check)
		}
	}
}

func TestResolveNonAdmin(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		check Check
		want  bool
	}{
		{"create granted by flag", Input{Role: RoleExecutor, Flags: Set{CanCreateTask: true}}, CheckCreateTask, true},
		{"create denied without flag", Input{Role: RoleExecutor}, CheckCreateTask, false},
		{"manage users granted by flag", Input{Role: RoleProfManager, Flags: Set{CanManageUsers: true}}, CheckManageUsers, true},
		{"manage users denied", Input{Role: RoleProfManager}, CheckManageUsers, false},
		{"is_admin false for non-admin", Input{Role: RoleDeptManager, Flags: Set{CanCreateTask: true}}, CheckIsAdmin, false},
		{"dept manager role check", Input{Role: RoleDeptManager}, CheckIsDeptManager, true},
		{"dept manager check for executor", Input{Role: RoleExecutor}, CheckIsDeptManager, false},
		{"prof manager role check", Input{Role: RoleProfManager}, CheckIsProfManager, true},
		{"unknown check denied", Input{Role: RoleExecutor, Flags: Set{CanCreateTask: true}}, CheckUnknown, false},
	}

	for _, tc := range cases {
		if got := Resolve(tc.in, tc.check); got != tc.want {
			t.Fatalf("%s: Resolve = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanAccessDepartment(t *testing.T) {
	managed := Set{ManagedDepartments: []int64{5, 9}}

	cases := []struct {
		name string
		in   Input
		dept int64
		want bool
	}{
		{"admin reaches any department", Input{Role: RoleAdmin}, 42, true},
		{"dept manager managed", Input{Role: RoleDeptManager, Flags: managed}, 5, true},
		{"dept manager unmanaged", Input{Role: RoleDeptManager, Flags: managed}, 6, false},
		{"dept manager empty list", Input{Role: RoleDeptManager}, 5, false},
		{"executor own department", Input{Role: RoleExecutor, Department: 3}, 3, true},
		{"executor other department", Input{Role: RoleExecutor, Department: 3}, 4, false},
		{"executor no department", Input{Role: RoleExecutor}, 0, false},
	}

	for _, tc := range cases {
		if got := CanAccessDepartment(tc.in, tc.dept); got != tc.want {
			t.Fatalf("%s: CanAccessDepartment = %v, want %v", tc.name, got, tc.want)
		}
	}
}
