package services

import (
	"errors"
	"time"

	"tableside/entity"
	"tableside/repository"

	"gorm.io/gorm"
)

// CustomizationFee is added per unit when a line carries customization text.
const CustomizationFee = 5.0

const (
	callCooldown    = 3 * time.Minute
	nominalPrepTime = 15 * time.Minute
)

var (
	ErrTableNotFound    = errors.New("table not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCallTooSoon      = errors.New("waiter already called, wait before calling again")
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	TableRepo *repository.TableRepository
	MenuRepo  *repository.MenuRepository

	// Zone the daily order-number boundary is evaluated in.
	Loc *time.Location
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	tableRepo *repository.TableRepository,
	menuRepo *repository.MenuRepository,
	loc *time.Location,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, TableRepo: tableRepo, MenuRepo: menuRepo, Loc: loc}
}

// ----- DTOs from Controller -----

type OrderLineIn struct {
	MenuItemID    uint   `json:"id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	Customization string `json:"customization"`
}

type PlaceOrderReq struct {
	TableID uint          `json:"table_id" binding:"required"`
	Items   []OrderLineIn `json:"items" binding:"required,min=1"`
}

type PlaceOrderRes struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber int    `json:"order_number"`
	Status      string `json:"status"`
}

// ----- Create -----

// PlaceOrder prices the lines, allocates the daily order number and writes
// the order with its items in one transaction, so a partial order is never
// visible and the number is taken under the same snapshot as the insert.
func (s *OrderService) PlaceOrder(req *PlaceOrderReq) (*PlaceOrderRes, error) {
	ok, err := s.TableRepo.Exists(req.TableID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTableNotFound
	}

	var total float64
	type line struct {
		menuItemID    uint
		qty           int
		customization string
	}
	lines := make([]line, 0, len(req.Items))

	for _, it := range req.Items {
		m, err := s.MenuRepo.Basics(it.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMenuItemNotFound
			}
			return nil, err
		}
		unit := m.Price
		if it.Customization != "" {
			unit += CustomizationFee
		}
		total += unit * float64(it.Quantity)
		lines = append(lines, line{menuItemID: m.ID, qty: it.Quantity, customization: it.Customization})
	}

	day := time.Now().In(s.Loc).Format("2006-01-02")

	var out PlaceOrderRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.NextOrderNumber(tx, day)
		if err != nil {
			return err
		}

		order := entity.Order{
			TableID:     req.TableID,
			Status:      entity.StatusPending,
			TotalPrice:  total,
			OrderNumber: n,
			OrderDay:    day,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, l := range lines {
			oi := entity.OrderItem{
				OrderID:       order.ID,
				MenuItemID:    l.menuItemID,
				Quantity:      l.qty,
				Customization: l.customization,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		out = PlaceOrderRes{OrderID: order.ID, OrderNumber: order.OrderNumber, Status: "Order placed"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ----- Views -----

type OrderSummary struct {
	OrderID     uint                    `json:"order_id"`
	OrderNumber int                     `json:"order_number"`
	TableID     uint                    `json:"table_id"`
	Status      string                  `json:"status"`
	TotalPrice  float64                 `json:"total_price"`
	OrderTime   string                  `json:"order_time"`
	Items       []repository.LineDetail `json:"items"`
}

// PendingOrders is what the kitchen polls.
func (s *OrderService) PendingOrders() ([]OrderSummary, error) {
	orders, err := s.Repo.ListByStatus(entity.StatusPending)
	if err != nil {
		return nil, err
	}
	return s.summarize(orders)
}

// ActiveOrders backs the waiter view: everything not yet completed.
func (s *OrderService) ActiveOrders() ([]OrderSummary, error) {
	orders, err := s.Repo.ListActive()
	if err != nil {
		return nil, err
	}
	return s.summarize(orders)
}

func (s *OrderService) CompletedOrders() ([]OrderSummary, error) {
	orders, err := s.Repo.ListByStatus(entity.StatusCompleted)
	if err != nil {
		return nil, err
	}
	return s.summarize(orders)
}

func (s *OrderService) summarize(orders []entity.Order) ([]OrderSummary, error) {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		items, err := s.Repo.GetLineDetails(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderSummary{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			TableID:     o.TableID,
			Status:      o.Status,
			TotalPrice:  o.TotalPrice,
			OrderTime:   o.CreatedAt.In(s.Loc).Format("15:04"),
			Items:       items,
		})
	}
	return out, nil
}

type StatusView struct {
	Order            *entity.Order
	RemainingSeconds int
}

// StatusView feeds the diner countdown page. RemainingSeconds goes negative
// once the nominal window has passed; the template decides how to show that.
func (s *OrderService) StatusView(orderID uint) (*StatusView, error) {
	o, err := s.get(orderID)
	if err != nil {
		return nil, err
	}
	remaining := int((nominalPrepTime - time.Since(o.CreatedAt)).Seconds())
	return &StatusView{Order: o, RemainingSeconds: remaining}, nil
}

func (s *OrderService) get(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}
