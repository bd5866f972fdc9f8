package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddleware gin.HandlerFunc,
	rdb *redis.Client,
) {
	createChain := []gin.HandlerFunc{
		middleware.RateLimitByEmployee(1, 5),
		middleware.RBACAuthorize(rbacService, "leave", "create"),
	}
	if rdb != nil {
		createChain = append(createChain, middleware.Idempotency(rdb))
	}
	createChain = append(createChain, handler.Create)

	leaves := r.Group("/leaves")
	leaves.Use(authMiddleware)
	{
		leaves.POST("", createChain...)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetAll)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetPending)
		leaves.GET("/me", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetMine)
		leaves.GET("/balances", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetMyBalances)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.PUT("/:id/status",
			middleware.RateLimitByEmployee(2, 10),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.UpdateStatus,
		)
		leaves.POST("/:id/cancel",
			middleware.RateLimitByEmployee(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "cancel"),
			handler.Cancel,
		)
	}

	employees := r.Group("/employees")
	employees.Use(authMiddleware)
	{
		employees.GET("/:id/leaves", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetByEmployee)
		employees.GET("/:id/balances", middleware.RBACAuthorize(rbacService, "balance", "read_all"), handler.GetEmployeeBalances)
	}
}
