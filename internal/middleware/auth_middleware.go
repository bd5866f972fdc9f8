package middleware

import (
	"errors"
	"fmt"
	"strings"

	"go-leave/internal/domain"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextEmployeeID = "employee_id"
	ContextRole       = "role"
)

// AuthMiddleware verifies an HS256 bearer token issued elsewhere and exposes
// its employee_id and role claims to the handlers.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithError(c, ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = ErrTokenExpired
			}
			abortWithError(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithError(c, ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			abortWithError(c, ErrInvalidToken)
			return
		}

		rawRole, _ := claims["role"].(string)
		role, err := domain.ParseRole(rawRole)
		if err != nil {
			abortWithError(c, ErrInvalidToken)
			return
		}

		c.Set(ContextEmployeeID, employeeID)
		c.Set(ContextRole, string(role))
		c.Request = c.Request.WithContext(contextutil.WithActorID(c.Request.Context(), employeeID))

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := domain.Role(c.GetString(ContextRole))

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWithError(c, apperror.ErrForbidden)
	}
}
