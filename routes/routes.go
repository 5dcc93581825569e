package routes

import (
	"net/http"
	"path/filepath"

	"sazonpos/configs"
	"sazonpos/controllers"
	"sazonpos/entity"
	"sazonpos/middlewares"
	"sazonpos/repository"
	"sazonpos/services"
	"sazonpos/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	admin   = entity.RoleAdmin
	cashier = entity.RoleCashier
	kitchen = entity.RoleKitchen
)

// RegisterRoutes wires repositories, services and controllers onto r. hub
// receives every domain event and serves /ws.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, store *configs.RestaurantConfigStore, hub *ws.Hub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, sessionRepo, cfg.SessionSecret, cfg.SessionTTL)
	taxRate := func() float64 { return services.TaxRateFor(store.Get().Currency) }
	orderSvc := services.NewOrderService(db, orderRepo, taxRate, hub)
	menuSvc := services.NewMenuService(menuRepo, hub)
	inventorySvc := services.NewInventoryService(inventoryRepo, hub)
	reportSvc := services.NewReportService(reportRepo, orderRepo, inventoryRepo, menuRepo)
	hub.Orders = orderSvc

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, cfg.SessionTTL, cfg.CookieSecure)
	userCtrl := controllers.NewUserController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	inventoryCtrl := controllers.NewInventoryController(inventorySvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	configCtrl := controllers.NewConfigController(store)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(authSvc, roles...)
	}

	// Public
	api := r.Group("/api")
	api.POST("/login", authCtrl.Login)
	api.GET("/config", configCtrl.Get)

	// Any logged-in role
	anyRole := api.Group("", auth())
	{
		anyRole.POST("/logout", authCtrl.Logout)
		anyRole.GET("/me", authCtrl.Me)
	}

	// Menu: admin and cashier read, admin writes
	api.GET("/menu", auth(admin, cashier), menuCtrl.List)
	menu := api.Group("/menu", auth(admin))
	{
		menu.POST("", menuCtrl.Create)
		menu.PUT("/:id", menuCtrl.Update)
		menu.DELETE("/:id", menuCtrl.Delete)
	}

	// Inventory: admin and cashier read, admin writes
	api.GET("/inventario", auth(admin, cashier), inventoryCtrl.List)
	api.GET("/inventario/alertas", auth(admin, cashier), inventoryCtrl.LowStock)
	inventory := api.Group("/inventario", auth(admin))
	{
		inventory.POST("", inventoryCtrl.Create)
		inventory.PUT("/:id", inventoryCtrl.Update)
		inventory.POST("/:id/ajuste", inventoryCtrl.Adjust)
		inventory.DELETE("/:id", inventoryCtrl.Delete)
	}

	// Orders
	api.POST("/ordenes", auth(admin, cashier), orderCtrl.Create)
	api.GET("/ordenes/:id", auth(admin, cashier), orderCtrl.Detail)
	api.PUT("/ordenes/:id/lista", auth(admin, kitchen), orderCtrl.MarkReady)
	api.GET("/ordenes-pendientes", auth(admin, cashier, kitchen), orderCtrl.Pending)

	// Admin only
	adminOnly := api.Group("", auth(admin))
	{
		adminOnly.POST("/config", configCtrl.Update)
		adminOnly.GET("/reportes", reportCtrl.Summary)
		adminOnly.GET("/reportes/historial", reportCtrl.History)
		adminOnly.POST("/ventas/reset", reportCtrl.ResetSales)
		adminOnly.GET("/dashboard", reportCtrl.Dashboard)
		adminOnly.GET("/usuarios", userCtrl.List)
		adminOnly.POST("/usuarios", userCtrl.Create)
		adminOnly.DELETE("/usuarios/:id", userCtrl.Delete)
	}

	// Real-time channel
	r.GET("/ws", middlewares.WSAuthMiddleware(authSvc), hub.HandleWebSocket)

	registerPages(r, cfg.PublicDir, auth)
}

// registerPages serves the front-end screens behind the same guard as the API.
func registerPages(r *gin.Engine, dir string, auth func(...entity.Role) gin.HandlerFunc) {
	r.StaticFile("/login.html", filepath.Join(dir, "login.html"))
	r.Static("/uploads", filepath.Join(dir, "uploads"))
	r.Static("/assets", filepath.Join(dir, "assets"))

	pages := []struct {
		path  string
		file  string
		roles []entity.Role
	}{
		{"/", "index.html", nil},
		{"/caja.html", "caja.html", []entity.Role{cashier}},
		{"/cocina.html", "cocina.html", []entity.Role{kitchen}},
		{"/admin.html", "admin.html", []entity.Role{admin}},
		{"/reportes.html", "reportes.html", []entity.Role{admin}},
	}
	for _, p := range pages {
		file := filepath.Join(dir, p.file)
		r.GET(p.path, auth(p.roles...), func(c *gin.Context) { c.File(file) })
	}
}
