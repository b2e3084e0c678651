package user

import "errors"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

var ErrPermissionDenied = errors.New("insufficient permissions")
