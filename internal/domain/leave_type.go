package domain

import (
	"net/http"
	"strings"

	"go-leave/internal/shared/apperror"
)

type LeaveType string

const (
	LeaveTypePTO         LeaveType = "PTO"
	LeaveTypeSick        LeaveType = "SICK"
	LeaveTypeMaternity   LeaveType = "MATERNITY"
	LeaveTypePaternity   LeaveType = "PATERNITY"
	LeaveTypeBereavement LeaveType = "BEREAVEMENT"
	LeaveTypeUnpaid      LeaveType = "UNPAID"
)

var leaveTypes = []LeaveType{
	LeaveTypePTO,
	LeaveTypeSick,
	LeaveTypeMaternity,
	LeaveTypePaternity,
	LeaveTypeBereavement,
	LeaveTypeUnpaid,
}

var ErrUnknownLeaveType = apperror.NewWithReason(
	apperror.CodeInvalidInput,
	"UnknownLeaveType",
	"Unknown leave type",
	http.StatusBadRequest,
)

func LeaveTypes() []LeaveType {
	out := make([]LeaveType, len(leaveTypes))
	copy(out, leaveTypes)
	return out
}

// ParseLeaveType accepts any casing and surrounding whitespace.
func ParseLeaveType(raw string) (LeaveType, error) {
	candidate := LeaveType(strings.ToUpper(strings.TrimSpace(raw)))
	for _, lt := range leaveTypes {
		if lt == candidate {
			return lt, nil
		}
	}
	return "", ErrUnknownLeaveType
}

func (t LeaveType) IsValid() bool {
	_, err := ParseLeaveType(string(t))
	return err == nil
}

// DeductsBalance reports whether leaves of this type draw on the employee's
// annual leave balance.
func (t LeaveType) DeductsBalance() bool {
	return t == LeaveTypePTO
}

func (t LeaveType) String() string {
	return string(t)
}
