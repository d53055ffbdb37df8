package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lendly/rental-marketplace/docs"
	"github.com/lendly/rental-marketplace/internal/api/handler"
	"github.com/lendly/rental-marketplace/internal/api/middleware"
	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/service"
	mongorepo "github.com/lendly/rental-marketplace/internal/infrastructure/db/mongo"
	redisinfra "github.com/lendly/rental-marketplace/internal/infrastructure/db/redis"
	"github.com/lendly/rental-marketplace/pkg/logger"
)

// RouterConfig carries the externally owned collaborators the router needs.
// The audit recorder is owned by main so its workers outlive request scope.
type RouterConfig struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Audit     service.AuditRecorder
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Dependencies ---
	seq := redisinfra.NewSequence(cfg.Redis)
	contractRepo := mongorepo.NewContractRepository(cfg.DB, seq)
	itemRepo := mongorepo.NewItemRepository(cfg.DB, seq)
	userRepo := mongorepo.NewUserRepository(cfg.DB, seq)
	roleRepo := mongorepo.NewRoleRepository(cfg.DB, seq)
	auditRepo := mongorepo.NewAuditRepository(cfg.DB)

	contractService := service.NewContractService(contractRepo, itemRepo, userRepo, nil, cfg.Audit, log)
	auditService := service.NewAuditService(contractRepo, auditRepo)
	itemService := service.NewItemService(itemRepo, userRepo, nil, log)
	userService := service.NewUserService(userRepo)
	roleService := service.NewRoleService(roleRepo)
	authService := service.NewAuthService(userRepo, roleRepo, cfg.JWTSecret, cfg.TokenTTL)

	contractHandler := handler.NewContractHandler(contractService)
	auditHandler := handler.NewAuditHandler(auditService)
	itemHandler := handler.NewItemHandler(itemService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	authHandler := handler.NewAuthHandler(authService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Contract routes ---
	contracts := e.Group("/contracts", authMiddleware)
	contracts.GET("/contracts", contractHandler.List, middleware.RBAC(domain.RoleAdmin))
	contracts.GET("/contract/:contractid", contractHandler.Get)
	contracts.GET("/contract/:contractid/audit", auditHandler.Trail, middleware.RBAC(domain.RoleAdmin))
	contracts.POST("/new/:itemid", contractHandler.New)
	contracts.PUT("/contract/:contractid", contractHandler.Save)
	contracts.PATCH("/contract/agree/:contractid", contractHandler.Agree)
	contracts.PATCH("/contract/:contractid", contractHandler.Update,
		middleware.RBAC(domain.RoleAdmin, domain.RoleLender, domain.RoleUser))
	contracts.DELETE("/contract/:contractid", contractHandler.Delete,
		middleware.RBAC(domain.RoleAdmin, domain.RoleLender))

	// --- Item routes ---
	items := e.Group("/items", authMiddleware)
	items.GET("/items", itemHandler.List, middleware.RBAC(domain.RoleAdmin))
	items.GET("/item/:itemid", itemHandler.Get, middleware.RBAC(domain.RoleAdmin))
	items.GET("/item/name/:itemname", itemHandler.GetByName, middleware.RBAC(domain.RoleAdmin))
	items.GET("/item/name/like/:itemname", itemHandler.Search, middleware.RBAC(domain.RoleAdmin))
	items.POST("/item", itemHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleLender))
	items.PUT("/item/:itemid", itemHandler.Save, middleware.RBAC(domain.RoleAdmin, domain.RoleLender))
	items.PATCH("/item/:itemid", itemHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleLender))
	items.DELETE("/item/:itemid", itemHandler.Delete, middleware.RBAC(domain.RoleAdmin, domain.RoleLender))

	// --- Role routes (admin only) ---
	roles := e.Group("/roles", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	roles.GET("/roles", roleHandler.List)
	roles.GET("/role/:roleid", roleHandler.Get)
	roles.GET("/role/name/:rolename", roleHandler.GetByName)
	roles.POST("/role", roleHandler.Create)
	roles.DELETE("/role/:roleid", roleHandler.Delete)

	// --- User routes (admin only) ---
	users := e.Group("/users", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	users.GET("/users", userHandler.List)
	users.GET("/user/:userid", userHandler.Get)
	users.GET("/user/name/:username", userHandler.GetByName)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
