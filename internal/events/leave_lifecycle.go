package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveCreated   = "leave_created"
	LeaveApproved  = "leave_approved"
	LeaveRejected  = "leave_rejected"
	LeaveCancelled = "leave_cancelled"
)

type LeaveLifecycleEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	LeaveID         string    `json:"leave_id"`
	ReferenceNo     string    `json:"reference_no"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeEmail   string    `json:"employee_email"`
	EmployeeName    string    `json:"employee_name"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	NumberOfDays    int       `json:"number_of_days"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ActorID         string    `json:"actor_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
