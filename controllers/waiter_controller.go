package controllers

import (
	"log"
	"net/http"

	"tableside/pkg/resp"
	"tableside/services"

	"github.com/gin-gonic/gin"
)

type WaiterController struct {
	Orders *services.OrderService
}

func NewWaiterController(orders *services.OrderService) *WaiterController {
	return &WaiterController{Orders: orders}
}

// GET /check_waiter_calls
func (wc *WaiterController) CheckWaiterCalls(c *gin.Context) {
	calls, err := wc.Orders.Notifications()
	if err != nil {
		log.Println("check waiter calls:", err)
		resp.ServerError(c, errInternal)
		return
	}
	c.JSON(http.StatusOK, calls)
}

// POST /dismiss_call/:orderId
func (wc *WaiterController) DismissCall(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := wc.Orders.DismissCall(id); err != nil {
		orderActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Waiter call dismissed"})
}

// POST /dismiss_bill/:orderId
func (wc *WaiterController) DismissBill(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := wc.Orders.DismissBill(id); err != nil {
		orderActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Bill request dismissed"})
}

// POST /update_order_status/:orderId
func (wc *WaiterController) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := wc.Orders.Complete(id); err != nil {
		orderActionError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/waiter_view")
}
