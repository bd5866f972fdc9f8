package rbacerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role permission not found",
		http.StatusNotFound,
	)

	ErrInvalidPolicy = apperror.New(
		apperror.CodeInvalidInput,
		"Role, resource and action are required",
		http.StatusBadRequest,
	)
)
