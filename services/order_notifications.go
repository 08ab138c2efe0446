package services

import (
	"time"

	"tableside/entity"

	"gorm.io/gorm"
)

// ----- Diner actions -----

// CallWaiter sets the call flag unless a previous call is still inside the
// cooldown window, in which case nothing is mutated.
func (s *OrderService) CallWaiter(orderID uint) error {
	o, err := s.get(orderID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if o.LastCallTime != nil && now.Sub(*o.LastCallTime) < callCooldown {
		return ErrCallTooSoon
	}

	return s.Repo.SetCallWaiter(o.ID, now)
}

// RequestBill has no precondition; repeating it just refreshes the method.
func (s *OrderService) RequestBill(orderID uint, paymentMethod string) error {
	if _, err := s.get(orderID); err != nil {
		return err
	}
	return s.Repo.SetBillRequest(orderID, paymentMethod)
}

// ----- Waiter actions -----

// DismissCall clears the call flag. Clearing an already-clear flag is fine.
func (s *OrderService) DismissCall(orderID uint) error {
	if _, err := s.get(orderID); err != nil {
		return err
	}
	return s.Repo.ClearCallWaiter(orderID)
}

// DismissBill clears the bill flag and the stored payment method.
func (s *OrderService) DismissBill(orderID uint) error {
	if _, err := s.get(orderID); err != nil {
		return err
	}
	return s.Repo.ClearBillRequest(orderID)
}

// Complete is the one-way Pending -> Completed transition. Completing an
// already-completed order succeeds and leaves it completed.
func (s *OrderService) Complete(orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, entity.StatusPending, entity.StatusCompleted)
		if err != nil {
			return err
		}
		if affected == 0 {
			_, err := s.get(orderID)
			return err
		}
		return nil
	})
}

// ----- Notification polling -----

const (
	CallTypeWaiter        = "waiter"
	CallTypeBill          = "bill"
	CallTypeWaiterAndBill = "waiter+bill"
)

type CallNotification struct {
	OrderID       uint   `json:"order_id"`
	OrderNumber   int    `json:"order_number"`
	TableID       uint   `json:"table_id"`
	CallType      string `json:"call_type"`
	CallTime      string `json:"call_time,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Notifications returns every order with an active call or bill flag, tagged
// with which condition applies.
func (s *OrderService) Notifications() ([]CallNotification, error) {
	orders, err := s.Repo.ListWithActiveCalls()
	if err != nil {
		return nil, err
	}

	out := make([]CallNotification, 0, len(orders))
	for _, o := range orders {
		n := CallNotification{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			TableID:     o.TableID,
		}
		switch {
		case o.CallWaiter && o.RequestBill:
			n.CallType = CallTypeWaiterAndBill
		case o.CallWaiter:
			n.CallType = CallTypeWaiter
		default:
			n.CallType = CallTypeBill
		}
		if o.CallWaiter && o.LastCallTime != nil {
			n.CallTime = o.LastCallTime.In(s.Loc).Format("15:04:05")
		}
		if o.RequestBill {
			n.PaymentMethod = o.BillPaymentMethod
		}
		out = append(out, n)
	}
	return out, nil
}
