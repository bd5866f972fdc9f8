package employee

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddleware gin.HandlerFunc,
) {
	employees := r.Group("/employees")
	employees.Use(authMiddleware)
	{
		employees.GET("",
			middleware.RateLimitByEmployee(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByEmployee(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "manage"),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByEmployee(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "manage"),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByEmployee(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "manage"),
			handler.Delete,
		)
	}
}
