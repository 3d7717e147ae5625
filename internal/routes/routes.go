package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/app"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/dashboard"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/devicetoken"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/menu"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/phonebook"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/statistics"
	ucTreatment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

func RegisterRoutes(r *gin.Engine, a *app.AppContext) {
	cfg := a.Config
	repos := a.Repos

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Sentry(),
		middleware.Logger(a.Log),
		middleware.Recovery(a.Log),
		middleware.CORSMiddleware(a.Config.CORSOrigins),
	)

	// ======================================================
	// SERVICES
	// ======================================================
	profiles := user.NewProfileCache(repos.Users, a.Cache, cfg.UserCacheTTL())
	selection := shop.NewSelection(repos.Shops, a.Cache, cfg.SelectedShopTTL())

	authService := auth.NewService(repos.Users, a.Cache, a.Tokens, a.Log)
	registerUC := auth.NewRegister(repos.Users, repos.Shops, a.Now, cfg.ValidateEmailDomain)

	userService := user.NewService(repos.Users, profiles, a.Log)
	shopService := shop.NewService(repos.Shops, selection, a.Log)
	invites := shop.NewInvites(repos.Shops, shopService, a.Audit, a.Now, cfg.InviteTTL())

	phonebookService := phonebook.NewService(repos.Phonebooks, a.Audit)
	menuService := menu.NewService(repos.Menus)
	deviceTokenService := devicetoken.NewService(repos.DeviceTokens, repos.Shops, a.Push, a.Log)

	dashboardService := dashboard.NewService(
		statistics.NewEngine(repos.Statistics),
		a.Cache,
		cfg.DashboardCacheTTL(),
		a.Location,
		a.Now,
		a.Log,
	)

	// ======================================================
	// USE CASES: TREATMENTS
	// ======================================================
	createTreatmentUC := ucTreatment.NewCreateTreatment(repos.Treatments, repos.Shops, a.Audit, a.Now)
	listTreatmentsUC := ucTreatment.NewListTreatments(repos.Treatments, a.Location)
	getTreatmentUC := ucTreatment.NewGetTreatment(repos.Treatments)
	updateTreatmentUC := ucTreatment.NewUpdateTreatment(repos.Treatments, repos.Shops, a.Audit, a.Now)
	deleteTreatmentUC := ucTreatment.NewDeleteTreatment(repos.Treatments, a.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authService, registerUC)
	userHandler := handlers.NewUserHandler(userService)
	shopHandler := handlers.NewShopHandler(shopService, selection, invites)
	phonebookHandler := handlers.NewPhonebookHandler(phonebookService)
	menuHandler := handlers.NewMenuHandler(menuService)
	treatmentHandler := handlers.NewTreatmentHandler(
		createTreatmentUC,
		listTreatmentsUC,
		getTreatmentUC,
		updateTreatmentUC,
		deleteTreatmentUC,
		a.Location,
	)
	deviceTokenHandler := handlers.NewDeviceTokenHandler(deviceTokenService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst)
	authenticated := middleware.AuthMiddleware(a.Tokens, profiles)
	shopSelected := middleware.RequireShop(selection)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ------------------------------
	// AUTH
	// ------------------------------
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", middleware.RateLimit(loginLimiter), authHandler.Register)
		authGroup.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// ------------------------------
	// USERS
	// ------------------------------
	users := r.Group("/users", authenticated)
	{
		users.POST("", middleware.RequireRole(models.RoleAdmin), userHandler.Create)
		users.GET("/me", userHandler.GetMe)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// ------------------------------
	// SHOPS
	// ------------------------------
	shops := r.Group("/shops", authenticated)
	{
		shops.GET("", shopHandler.List)
		shops.POST("", shopHandler.Create)

		shops.POST("/selected", shopHandler.Select)
		shops.GET("/selected", shopHandler.Selected)
		shops.DELETE("/selected", shopHandler.ClearSelected)

		shops.GET("/:id", shopHandler.Get)
		shops.PUT("/:id", shopHandler.Update)
		shops.DELETE("/:id", shopHandler.Delete)
		shops.GET("/:id/users", shopHandler.Members)

		shops.POST("/:id/invites", shopHandler.CreateInvite)
		shops.GET("/:id/invites", shopHandler.GetInvite)
		shops.DELETE("/:id/invites", shopHandler.DeleteInvite)
	}

	// ------------------------------
	// DEVICE TOKENS
	// ------------------------------
	tokens := r.Group("/device-tokens", authenticated)
	{
		tokens.POST("", deviceTokenHandler.Register)
		tokens.GET("/me", deviceTokenHandler.Mine)
		tokens.PATCH("/:id", deviceTokenHandler.Update)
		tokens.DELETE("/:id", deviceTokenHandler.Delete)
		tokens.POST("/send", shopSelected, deviceTokenHandler.Send)
	}

	// ======================================================
	// SHOP-SCOPED (requires a selected shop)
	// ======================================================
	scoped := r.Group("/", authenticated, shopSelected)
	{
		scoped.GET("/phonebooks", phonebookHandler.List)
		scoped.GET("/phonebooks/groups", phonebookHandler.Groups)
		scoped.POST("/phonebooks", phonebookHandler.Create)
		scoped.GET("/phonebooks/:id", phonebookHandler.Get)
		scoped.PUT("/phonebooks/:id", phonebookHandler.Update)
		scoped.DELETE("/phonebooks/:id", phonebookHandler.Delete)
		scoped.POST("/phonebooks/:id/restore", phonebookHandler.Restore)

		scoped.GET("/treatment-menus", menuHandler.List)
		scoped.POST("/treatment-menus", menuHandler.Create)
		scoped.GET("/treatment-menus/:id", menuHandler.Get)
		scoped.PUT("/treatment-menus/:id", menuHandler.Rename)
		scoped.DELETE("/treatment-menus/:id", menuHandler.Delete)
		scoped.GET("/treatment-menus/:id/details", menuHandler.ListDetails)
		scoped.POST("/treatment-menus/:id/details", menuHandler.CreateDetail)
		scoped.PUT("/treatment-menus/:id/details/:detail_id", menuHandler.UpdateDetail)
		scoped.DELETE("/treatment-menus/:id/details/:detail_id", menuHandler.DeleteDetail)

		scoped.POST("/treatments", treatmentHandler.Create)
		scoped.GET("/treatments", treatmentHandler.List)
		scoped.GET("/treatments/:id", treatmentHandler.Get)
		scoped.PATCH("/treatments/:id", treatmentHandler.Update)
		scoped.DELETE("/treatments/:id", treatmentHandler.Delete)

		scoped.GET("/summary/dashboard", dashboardHandler.Get)

		if a.AuditLogs != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(a.AuditLogs, a.Location)
			scoped.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
