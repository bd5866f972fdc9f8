package leavetype

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
	types := r.Group("/leave-types")
	types.Use(authMiddleware)
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetByID)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Delete)
	}
}
