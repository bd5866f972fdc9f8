package leave

import (
	"strings"

	leaveerrors "go-leave/internal/leave/errors"
)

// Status is the lifecycle state of a leave request.
//
//	PENDING ──► APPROVED
//	   │  └───► REJECTED ──► APPROVED
//	   └──────► CANCELLED
//
// APPROVED and CANCELLED are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

var validTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusRejected: {StatusApproved},
}

// ParseStatus accepts the status names case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return st, nil
	}
	return "", leaveerrors.ErrInvalidStatus
}

func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Active reports whether a leave in this status still consumes allowance.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) String() string {
	return string(s)
}
