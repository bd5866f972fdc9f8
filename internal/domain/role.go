package domain

import (
	"net/http"
	"strings"

	"go-leave/internal/shared/apperror"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleHRManager Role = "HR_MANAGER"
	RoleEmployee  Role = "EMPLOYEE"
)

var ErrUnknownRole = apperror.NewWithReason(
	apperror.CodeInvalidInput,
	"UnknownRole",
	"Unknown role",
	http.StatusBadRequest,
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleHRManager:
		return RoleHRManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	}
	return "", ErrUnknownRole
}

// IsApprover reports whether the role may decide on leave requests.
func (r Role) IsApprover() bool {
	return r == RoleAdmin || r == RoleHRManager
}

func ApproverRoles() []Role {
	return []Role{RoleAdmin, RoleHRManager}
}

func (r Role) String() string {
	return string(r)
}
