package employeeerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.NewWithReason(
		apperror.CodeNotFound,
		"EmployeeNotFound",
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrEmployeeModified = apperror.New(
		apperror.CodeInvalidState,
		"Employee was modified by another request, please retry",
		http.StatusBadRequest,
	)
)
