package leavepolicy

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
	policies := r.Group("/leave-policies")
	policies.Use(authMiddleware)
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, "leave_policy", "read"), handler.GetAll)
		policies.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_policy", "read"), handler.GetByID)
		policies.POST("", middleware.RBACAuthorize(rbacService, "leave_policy", "manage"), handler.Create)
		policies.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_policy", "manage"), handler.Update)
		policies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_policy", "manage"), handler.Delete)
	}
}
