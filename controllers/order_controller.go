package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"tableside/pkg/resp"
	"tableside/services"

	"github.com/gin-gonic/gin"
)

var errInternal = errors.New("internal server error")

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /order
func (oc *OrderController) Create(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.PlaceOrder(&req)
	switch {
	case errors.Is(err, services.ErrTableNotFound):
		resp.NotFound(c, "table not found")
	case errors.Is(err, services.ErrMenuItemNotFound):
		resp.NotFound(c, "menu item not found")
	case err != nil:
		log.Println("place order:", err)
		resp.ServerError(c, errInternal)
	default:
		c.JSON(http.StatusOK, out)
	}
}

// GET /check_new_orders
func (oc *OrderController) CheckNewOrders(c *gin.Context) {
	orders, err := oc.Orders.PendingOrders()
	if err != nil {
		log.Println("check new orders:", err)
		resp.ServerError(c, errInternal)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// POST /request_bill/:orderId
func (oc *OrderController) RequestBill(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var body struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.Orders.RequestBill(id, body.PaymentMethod); err != nil {
		orderActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Bill requested"})
}

// POST /call_waiter/:orderId
func (oc *OrderController) CallWaiter(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	err := oc.Orders.CallWaiter(id)
	switch {
	case errors.Is(err, services.ErrCallTooSoon):
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You must wait before calling the waiter again"})
	case err != nil:
		orderActionError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("orderId"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid order id")
		return 0, false
	}
	return uint(id), true
}

func orderActionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrOrderNotFound) {
		resp.NotFound(c, "order not found")
		return
	}
	log.Println("order action:", err)
	resp.ServerError(c, errInternal)
}
