package routes

import (
	"net/http"

	"tableside/configs"
	"tableside/controllers"
	"tableside/middlewares"
	"tableside/repository"
	"tableside/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	// Repositories
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	orderSvc := services.NewOrderService(db, orderRepo, tableRepo, menuRepo, cfg.Location())
	menuSvc := services.NewMenuService(menuRepo, cfg.Categories)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	orderCtrl := controllers.NewOrderController(orderSvc)
	waiterCtrl := controllers.NewWaiterController(orderSvc)
	pageCtrl := controllers.NewPageController(orderSvc, menuSvc, tableRepo)
	menuCtrl := controllers.NewMenuAdminController(menuSvc, cfg.UploadDir)
	authCtrl := controllers.NewAuthController(authSvc, cfg.JWTTTL)

	// Diner
	r.GET("/menu/:tableId", pageCtrl.Menu)
	r.POST("/order", orderCtrl.Create)
	r.GET("/order_status/:orderId", pageCtrl.OrderStatus)
	r.POST("/request_bill/:orderId", orderCtrl.RequestBill)
	r.POST("/call_waiter/:orderId", orderCtrl.CallWaiter)

	// Staff polling + actions
	r.GET("/check_new_orders", orderCtrl.CheckNewOrders)
	r.GET("/check_waiter_calls", waiterCtrl.CheckWaiterCalls)
	r.POST("/dismiss_call/:orderId", waiterCtrl.DismissCall)
	r.POST("/dismiss_bill/:orderId", waiterCtrl.DismissBill)
	r.GET("/waiter_view", pageCtrl.WaiterView)
	r.GET("/order_history", pageCtrl.OrderHistory)
	r.POST("/update_order_status/:orderId", waiterCtrl.UpdateOrderStatus)

	// Auth
	r.GET("/login", pageCtrl.LoginPage)
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)
	}

	// Admin catalog management (staff only)
	admin := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		admin.GET("/admin", pageCtrl.AdminPanel)
		admin.POST("/add_menu_item", menuCtrl.Add)
		admin.POST("/edit_menu_item/:id", menuCtrl.Edit)
		admin.POST("/delete_menu_item/:id", menuCtrl.Delete)
	}
}
