package leavetype

type CreateLeaveTypeConfigRequest struct {
	LeaveType        string `json:"leave_type" binding:"required"`
	AnnualLimit      int    `json:"annual_limit" binding:"gte=0"`
	RequiresDocument bool   `json:"requires_document"`
	Description      string `json:"description" binding:"max=255"`
	IsActive         *bool  `json:"is_active"`
}

// UpdateLeaveTypeConfigRequest leaves the flags untouched when they are omitted.
type UpdateLeaveTypeConfigRequest struct {
	AnnualLimit      int    `json:"annual_limit" binding:"gte=0"`
	RequiresDocument *bool  `json:"requires_document"`
	Description      string `json:"description" binding:"max=255"`
	IsActive         *bool  `json:"is_active"`
}

type LeaveTypeConfigResponse struct {
	ID               string `json:"id"`
	LeaveType        string `json:"leave_type"`
	AnnualLimit      int    `json:"annual_limit"`
	RequiresDocument bool   `json:"requires_document"`
	Description      string `json:"description"`
	IsActive         bool   `json:"is_active"`
}
