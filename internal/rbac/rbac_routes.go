package rbac

import (
	"go-leave/internal/domain"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, authMiddleware gin.HandlerFunc) {
	manage := middleware.RBACAuthorize(service, ResourceRBAC, ActionManage)
	// Policy writes stay with ADMIN even if the policy table grants more.
	adminOnly := middleware.RoleMiddleware(domain.RoleAdmin)

	group := r.Group("/rbac")
	group.Use(authMiddleware)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", manage, handler.ListPolicies)
		group.POST("/policies", adminOnly, manage, handler.AddPolicy)
		group.DELETE("/policies/:id", adminOnly, manage, handler.RemovePolicy)
	}
}
