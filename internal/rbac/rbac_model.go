package rbac

import (
	"go-leave/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Resources and actions checked by routes and by the leave engine.
const (
	ResourceLeave       = "leave"
	ResourceBalance     = "balance"
	ResourceEmployee    = "employee"
	ResourceLeaveType   = "leave_type"
	ResourceLeavePolicy = "leave_policy"
	ResourceRBAC        = "rbac"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
	ActionManage  = "manage"
)

type rule struct {
	Role     domain.Role
	Resource string
	Action   string
}

// Built-in grants. HR_MANAGER inherits every EMPLOYEE grant and ADMIN inherits
// every HR_MANAGER grant.
var defaultRules = []rule{
	{domain.RoleEmployee, ResourceLeave, ActionCreate},
	{domain.RoleEmployee, ResourceLeave, ActionRead},
	{domain.RoleEmployee, ResourceLeave, ActionCancel},
	{domain.RoleEmployee, ResourceBalance, ActionRead},
	{domain.RoleEmployee, ResourceLeaveType, ActionRead},
	{domain.RoleEmployee, ResourceLeavePolicy, ActionRead},

	{domain.RoleHRManager, ResourceLeave, ActionReadAll},
	{domain.RoleHRManager, ResourceLeave, ActionApprove},
	{domain.RoleHRManager, ResourceLeave, ActionReject},
	{domain.RoleHRManager, ResourceBalance, ActionReadAll},
	{domain.RoleHRManager, ResourceEmployee, ActionRead},
	{domain.RoleHRManager, ResourceLeaveType, ActionManage},
	{domain.RoleHRManager, ResourceLeavePolicy, ActionManage},

	{domain.RoleAdmin, ResourceEmployee, ActionManage},
	{domain.RoleAdmin, ResourceRBAC, ActionManage},
}

var roleHierarchy = [][2]domain.Role{
	{domain.RoleAdmin, domain.RoleHRManager},
	{domain.RoleHRManager, domain.RoleEmployee},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
