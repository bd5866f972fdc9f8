package leavepolicyerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave policy not found",
		http.StatusNotFound,
	)
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave policy ID",
		http.StatusBadRequest,
	)
	ErrInvalidPolicyLimits = apperror.New(
		apperror.CodeInvalidInput,
		"Policy day counts must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidDaysPerMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Days per month must be a non-negative decimal",
		http.StatusBadRequest,
	)
)
