package leave

import (
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateLeaveRequest is bound from JSON or multipart form fields. EmployeeID
// defaults to the caller; only approvers may file for someone else.
type CreateLeaveRequest struct {
	EmployeeID    string `json:"employee_id" form:"employee_id" binding:"omitempty,uuid"`
	LeaveType     string `json:"leave_type" form:"leave_type" binding:"required"`
	StartDate     string `json:"start_date" form:"start_date" binding:"required"`
	EndDate       string `json:"end_date" form:"end_date" binding:"required"`
	HoldDays      string `json:"hold_days" form:"hold_days"`
	LeaveDuration string `json:"leave_duration" form:"leave_duration" binding:"omitempty,oneof=FULL_DAY HALF_DAY"`
	Reason        string `json:"reason" form:"reason" binding:"required"`
}

type UpdateLeaveStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID                     string          `json:"id"`
	ReferenceNo            string          `json:"reference_no"`
	EmployeeID             string          `json:"employee_id"`
	LeaveType              string          `json:"leave_type"`
	StartDate              string          `json:"start_date"`
	EndDate                string          `json:"end_date"`
	NumberOfDays           int             `json:"number_of_days"`
	HoldDays               decimal.Decimal `json:"hold_days"`
	LeaveDuration          string          `json:"leave_duration"`
	Reason                 string          `json:"reason"`
	Status                 string          `json:"status"`
	RejectionReason        *string         `json:"rejection_reason"`
	ApplicationDate        string          `json:"application_date"`
	SupportingDocumentPath *string         `json:"supporting_document_path,omitempty"`
	DecidedBy              *string         `json:"decided_by,omitempty"`
	DecidedAt              *string         `json:"decided_at,omitempty"`
}

type LeaveBalanceResponse struct {
	LeaveType        string          `json:"leave_type"`
	DaysAllowed      int             `json:"days_allowed"`
	DaysUsed         decimal.Decimal `json:"days_used"`
	DaysAvailable    decimal.Decimal `json:"days_available"`
	CarryForwardDays int             `json:"carry_forward_days"`
	LeaveDateRanges  []DateRange     `json:"leave_date_ranges"`
}
