package router

import (
	"time"

	"github.com/MalditoKM/Asistent-Restaurant/internal/config"
	"github.com/MalditoKM/Asistent-Restaurant/internal/handler"
	"github.com/MalditoKM/Asistent-Restaurant/internal/middleware"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/repository"
	"github.com/MalditoKM/Asistent-Restaurant/internal/service"
	"github.com/MalditoKM/Asistent-Restaurant/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	restaurantRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	directorySvc := service.NewDirectoryService(restaurantRepo, userRepo)
	userSvc := service.NewUserService(userRepo)
	productSvc := service.NewProductService(productRepo, rdb)
	categorySvc := service.NewCategoryService(categoryRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo)
	saleSvc := service.NewSaleService(saleRepo)
	reportSvc := service.NewReportService(dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, directorySvc)
	restaurantsH := handler.NewRestaurantsHandler(directorySvc)
	usersH := handler.NewUsersHandler(userSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg.ReportStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public). Registration creates a restaurant with its admin; the
	// first registration of an empty system bootstraps the superadmin.
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/register", authH.Register)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := []model.Role{model.RoleSuperadmin, model.RoleAdmin, model.RoleSeller, model.RoleWaiter}
	managers := []model.Role{model.RoleSuperadmin, model.RoleAdmin}

	v1 := r.Group("/v1", jwtMW)
	{
		// Restaurant directory. Listing all tenants is superadmin-only;
		// get/update/delete are checked against the actor inside the service.
		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", middleware.RequireRole(model.RoleSuperadmin), restaurantsH.List)
			restaurants.GET("/:id", middleware.RequireRole(managers...), restaurantsH.Get)
			restaurants.PUT("/:id", middleware.RequireRole(managers...), restaurantsH.Update)
			restaurants.DELETE("/:id", middleware.RequireRole(model.RoleSuperadmin), restaurantsH.Delete)
		}

		users := v1.Group("/users", middleware.RequireRole(managers...))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		// Catalog: all staff can read, managers can write
		v1.GET("/products", middleware.RequireRole(staff...), productsH.List)
		products := v1.Group("/products", middleware.RequireRole(managers...))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		v1.GET("/categories", middleware.RequireRole(staff...), categoriesH.List)
		categories := v1.Group("/categories", middleware.RequireRole(managers...))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		v1.GET("/customers", middleware.RequireRole(staff...), customersH.List)
		customers := v1.Group("/customers", middleware.RequireRole(managers...))
		{
			customers.POST("", customersH.Create)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		purchases := v1.Group("/purchases", middleware.RequireRole(managers...))
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
			purchases.PUT("/:id", purchasesH.Update)
			purchases.DELETE("/:id", purchasesH.Delete)
		}

		// Sales: any staff member can record and read; destructive
		// operations stay with managers.
		sales := v1.Group("/sales")
		{
			sales.POST("", middleware.RequireRole(staff...), salesH.Create)
			sales.GET("", middleware.RequireRole(staff...), salesH.List)
			sales.GET("/:id", middleware.RequireRole(staff...), salesH.Get)
			sales.PATCH("/:id/status", middleware.RequireRole(staff...), salesH.UpdateStatus)
			sales.DELETE("/:id", middleware.RequireRole(managers...), salesH.Delete)
			sales.POST("/bulk-delete", middleware.RequireRole(managers...), salesH.BulkDelete)
		}

		reports := v1.Group("/reports", middleware.RequireRole(managers...))
		{
			reports.POST("/sales", reportsH.EnqueueSales)
			reports.GET("/:file", reportsH.Download)
		}
	}

	return r
}
