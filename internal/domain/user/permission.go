package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Audit trail
	PermissionAuditView Permission = "audit.view"
)

var selfServicePermissions = []Permission{
	PermissionAttendanceCreate,
	PermissionAttendanceViewOwn,
	PermissionLeaveCreate,
	PermissionLeaveViewOwn,
}

var reviewerPermissions = []Permission{
	PermissionAttendanceViewAll,
	PermissionAttendanceApprove,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionReportsView,
}

// RolePermissions is static configuration: the map is built once and never
// mutated at runtime.
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    append(append([]Permission{PermissionAuditView}, selfServicePermissions...), reviewerPermissions...),
	RoleHR:       append(append([]Permission{}, selfServicePermissions...), reviewerPermissions...),
	RoleManager:  append(append([]Permission{}, selfServicePermissions...), reviewerPermissions...),
	RoleEmployee: selfServicePermissions,
}

// HasPermission checks if the role grants the permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
