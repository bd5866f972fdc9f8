package middleware

import (
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrRequestInProgress = apperror.New(
		apperror.CodeConflict,
		"A request with this idempotency key is still being processed",
		http.StatusConflict,
	)

	ErrTooManyRequests = apperror.New(
		"TOO_MANY_REQUESTS",
		"Too many requests",
		http.StatusTooManyRequests,
	)
)

func abortWithError(c *gin.Context, appErr *apperror.AppError) {
	httpErr := apperror.ToHTTP(appErr)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
