package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"tableside/repository"
	"tableside/services"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	Orders  *services.OrderService
	MenuSvc *services.MenuService
	Tables  *repository.TableRepository
}

func NewPageController(orders *services.OrderService, menu *services.MenuService, tables *repository.TableRepository) *PageController {
	return &PageController{Orders: orders, MenuSvc: menu, Tables: tables}
}

// GET /menu/:tableId
func (pc *PageController) Menu(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tableId"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "table not found")
		return
	}

	ok, err := pc.Tables.Exists(uint(id))
	if err != nil {
		pc.pageError(c, err)
		return
	}
	if !ok {
		c.String(http.StatusNotFound, "table not found")
		return
	}

	groups, err := pc.MenuSvc.ListByCategory()
	if err != nil {
		pc.pageError(c, err)
		return
	}

	c.HTML(http.StatusOK, "menu.html", gin.H{
		"Categories": groups,
		"TableID":    id,
	})
}

// GET /order_status/:orderId
func (pc *PageController) OrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	view, err := pc.Orders.StatusView(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.String(http.StatusNotFound, "order not found")
			return
		}
		pc.pageError(c, err)
		return
	}

	c.HTML(http.StatusOK, "order_status.html", gin.H{
		"Order":            view.Order,
		"RemainingSeconds": view.RemainingSeconds,
	})
}

// GET /waiter_view
func (pc *PageController) WaiterView(c *gin.Context) {
	orders, err := pc.Orders.ActiveOrders()
	if err != nil {
		pc.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "waiter_view.html", gin.H{"Orders": orders})
}

// GET /order_history
func (pc *PageController) OrderHistory(c *gin.Context) {
	orders, err := pc.Orders.CompletedOrders()
	if err != nil {
		pc.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "order_history.html", gin.H{"Orders": orders})
}

// GET /admin
func (pc *PageController) AdminPanel(c *gin.Context) {
	items, err := pc.MenuSvc.ListAll()
	if err != nil {
		pc.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_panel.html", gin.H{
		"MenuItems":  items,
		"Categories": pc.MenuSvc.Categories,
		"Msg":        c.Query("msg"),
	})
}

// GET /login
func (pc *PageController) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Msg": c.Query("msg")})
}

func (pc *PageController) pageError(c *gin.Context, err error) {
	log.Println("render page:", err)
	c.String(http.StatusInternalServerError, "internal server error")
}
