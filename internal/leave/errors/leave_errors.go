package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHoldDays = apperror.New(
		apperror.CodeInvalidInput,
		"hold_days must be a decimal below 1000 with at most two decimal places",
		http.StatusBadRequest,
	)
	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"leave_duration must be FULL_DAY or HALF_DAY",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"ReasonRequired",
		"reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"InvalidStatus",
		"status must be one of PENDING, APPROVED, REJECTED, CANCELLED",
		http.StatusBadRequest,
	)

	// Validator failures.
	ErrInvalidRange = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"InvalidRange",
		"end date must not be before start date",
		http.StatusBadRequest,
	)
	ErrHalfDayRange = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"HalfDayRange",
		"half day leave must start and end on the same date",
		http.StatusBadRequest,
	)
	ErrNegativeHoldDays = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"NegativeHoldDays",
		"hold days must not be negative",
		http.StatusBadRequest,
	)
	ErrTypeInactive = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"TypeInactive",
		"leave type is not configured or inactive",
		http.StatusBadRequest,
	)
	ErrDocumentRequired = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"DocumentRequired",
		"a supporting document is required for this leave type",
		http.StatusBadRequest,
	)
	ErrExceedsAnnualLimit = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"ExceedsAnnualLimit",
		"requested days exceed the annual limit for this leave type",
		http.StatusBadRequest,
	)
	ErrExceedsBalance = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"ExceedsAnnualLimit",
		"requested days exceed the employee's annual leave balance",
		http.StatusBadRequest,
	)
	ErrExceedsMaxConsecutive = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"ExceedsMaxConsecutive",
		"requested days exceed the maximum consecutive days allowed by policy",
		http.StatusBadRequest,
	)
	ErrInsufficientNotice = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"InsufficientNotice",
		"leave must be requested earlier to satisfy the policy notice period",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.NewWithReason(
		apperror.CodeInvalidInput,
		"RejectionReasonRequired",
		"rejection reason is required",
		http.StatusBadRequest,
	)

	ErrLeaveNotFound = apperror.NewWithReason(
		apperror.CodeNotFound,
		"LeaveNotFound",
		"leave not found",
		http.StatusNotFound,
	)
	ErrUnauthorized = apperror.NewWithReason(
		apperror.CodeForbidden,
		"Unauthorized",
		"you are not allowed to perform this action on the leave",
		http.StatusForbidden,
	)
	ErrInvalidStateTransition = apperror.NewWithReason(
		apperror.CodeInvalidState,
		"InvalidStateTransition",
		"leave status transition is not allowed",
		http.StatusBadRequest,
	)
	ErrLeaveModified = apperror.NewWithReason(
		apperror.CodeInvalidState,
		"ConcurrentModification",
		"leave was modified by another request, please retry",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.NewWithReason(
		apperror.CodeConflict,
		"LeaveOverlap",
		"leave period overlaps with an existing pending or approved leave",
		http.StatusConflict,
	)
	ErrDocumentStorage = apperror.NewWithReason(
		apperror.CodeInternalError,
		"DocumentStorageError",
		"failed to store supporting document",
		http.StatusInternalServerError,
	)
)
