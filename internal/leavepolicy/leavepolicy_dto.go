package leavepolicy

// LeavePolicyRequest is shared by create and full update.
type LeavePolicyRequest struct {
	Name               string `json:"name" binding:"required,max=100"`
	Description        string `json:"description" binding:"max=255"`
	LeaveType          string `json:"leave_type" binding:"required"`
	DaysPerMonth       string `json:"days_per_month"`
	CarryForwardDays   int    `json:"carry_forward_days"`
	MaxConsecutiveDays int    `json:"max_consecutive_days"`
	MinNoticeDays      int    `json:"min_notice_days"`
	RequiresApproval   *bool  `json:"requires_approval"`
	Active             *bool  `json:"active"`
}

type LeavePolicyResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	LeaveType          string `json:"leave_type"`
	DaysPerMonth       string `json:"days_per_month"`
	CarryForwardDays   int    `json:"carry_forward_days"`
	MaxConsecutiveDays int    `json:"max_consecutive_days"`
	MinNoticeDays      int    `json:"min_notice_days"`
	RequiresApproval   bool   `json:"requires_approval"`
	Active             bool   `json:"active"`
}
