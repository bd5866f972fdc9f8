package middleware

import (
	"go-leave/internal/domain"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can answer a role/resource/action question.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWithError(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			abortWithError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
