package app

import (
	"context"
	"database/sql"

	"go-leave/internal/document"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leavetype"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/config"
	"go-leave/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leavePolicyRepo := leavepolicy.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.Reload(ctx); err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	leavePolicyService := leavepolicy.NewService(leavePolicyRepo)
	leaveService := leave.NewService(leave.Dependencies{
		DB:         db,
		Leaves:     leaveRepo,
		Employees:  employeeRepo,
		LeaveTypes: leaveTypeRepo,
		Policies:   leavePolicyRepo,
		Counter:    counterRepo,
		Documents:  document.NewLocalStorage(cfg.DocumentDir, cfg.MaxDocumentBytes),
		Publisher:  leave.NewOutboxEventPublisher(outboxRepo),
		Authorizer: rbacService,
	})

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leavePolicyHandler := leavepolicy.NewHandler(leavePolicyService)
	leaveHandler := leave.NewHandler(leaveService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L().Named("http")),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	)
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, authMiddleware)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService, authMiddleware)
		leavepolicy.RegisterRoutes(api, leavePolicyHandler, rbacService, authMiddleware)
		leave.RegisterRoutes(api, leaveHandler, rbacService, authMiddleware, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, authMiddleware)
	}

	return nil
}
