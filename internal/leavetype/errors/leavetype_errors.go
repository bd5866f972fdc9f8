package leavetypeerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type configuration not found",
		http.StatusNotFound,
	)
	ErrConfigAlreadyExists = apperror.NewWithReason(
		apperror.CodeConflict,
		"ConfigAlreadyExists",
		"A configuration for this leave type already exists",
		http.StatusConflict,
	)
	ErrInvalidConfigID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type configuration ID",
		http.StatusBadRequest,
	)
	ErrInvalidAnnualLimit = apperror.New(
		apperror.CodeInvalidInput,
		"Annual limit must not be negative",
		http.StatusBadRequest,
	)
)
