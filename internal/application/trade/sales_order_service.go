package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/motogarage/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=PART LABOR"`
	Description string          `json:"description" binding:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateOrderRequest describes a new repair or retail order
type CreateOrderRequest struct {
	CustomerID   uuid.UUID          `json:"customer_id" binding:"required"`
	VehiclePlate string             `json:"vehicle_plate,omitempty" binding:"max=20"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount     decimal.Decimal    `json:"discount,omitempty"`
	Remark       string             `json:"remark,omitempty"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents a sales order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	CustomerName   string              `json:"customer_name"`
	VehiclePlate   string              `json:"vehicle_plate,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	PayableAmount  decimal.Decimal     `json:"payable_amount"`
	Status         string              `json:"status"`
	Remark         string              `json:"remark,omitempty"`
	ConfirmedAt    *time.Time          `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// SalesOrderService manages the order lifecycle. Confirming an order opens
// a receivable for its payable amount in the same transaction.
type SalesOrderService struct {
	txScope      TransactionScope
	customerRepo partner.CustomerRepository
	events       shared.EventPublisher
}

// SalesOrderServiceOption is a functional option for configuring SalesOrderService
type SalesOrderServiceOption func(*SalesOrderService)

// WithEventPublisher sets the publisher for order lifecycle events
func WithEventPublisher(p shared.EventPublisher) SalesOrderServiceOption {
	return func(s *SalesOrderService) {
		s.events = p
	}
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(txScope TransactionScope, customerRepo partner.CustomerRepository, opts ...SalesOrderServiceOption) *SalesOrderService {
	s := &SalesOrderService{
		txScope:      txScope,
		customerRepo: customerRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publishEvents drains and publishes pending events after a commit.
// Event delivery is best-effort and never fails the operation.
func (s *SalesOrderService) publishEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	if s.events == nil {
		return
	}
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.events.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}

// CreateOrder creates a draft order with its items
func (s *SalesOrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot create orders for an inactive customer")
	}

	var order *trade.SalesOrder
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		orderNumber, err := repos.OrderRepo().NextOrderNumber(ctx)
		if err != nil {
			return err
		}

		order, err = trade.NewSalesOrder(orderNumber, customer.ID, customer.Name)
		if err != nil {
			return err
		}
		if req.VehiclePlate != "" {
			if err := order.SetVehiclePlate(req.VehiclePlate); err != nil {
				return err
			}
		}
		for _, item := range req.Items {
			if _, err := order.AddItem(trade.ItemKind(item.Kind), item.Description, item.Quantity, valueobject.NewMoneyVND(item.UnitPrice)); err != nil {
				return err
			}
		}
		if req.Discount.IsPositive() {
			if err := order.ApplyDiscount(valueobject.NewMoneyVND(req.Discount)); err != nil {
				return err
			}
		}
		if req.Remark != "" {
			order.SetRemark(req.Remark)
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	return toOrderResponse(order), nil
}

// GetOrder retrieves an order by ID
func (s *SalesOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sales order not found")
	}
	return toOrderResponse(order), nil
}

// ListOrders retrieves a customer's orders
func (s *SalesOrderService) ListOrders(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	var page *shared.Paginated[trade.SalesOrder]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		page, err = repos.OrderRepo().FindByCustomer(ctx, customerID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toOrderResponse(&page.Items[i]))
	}
	out := shared.Paginated[OrderResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	return &out, nil
}

// ConfirmOrder confirms a draft order and opens a receivable for its
// payable amount. Both writes commit atomically.
func (s *SalesOrderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var (
		order      *trade.SalesOrder
		receivable *finance.Receivable
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Sales order not found")
		}

		existing, err := repos.ReceivableRepo().FindBySalesOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS", "Order already has a receivable")
		}

		if err := order.Confirm(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		receivable, err = finance.NewReceivable(order.ID, order.OrderNumber, order.CustomerID, order.GetPayableAmountMoney())
		if err != nil {
			return err
		}
		return repos.ReceivableRepo().Save(ctx, receivable)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order, receivable)

	return toOrderResponse(order), nil
}

// CompleteOrder marks a confirmed order as completed
func (s *SalesOrderService) CompleteOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.Complete()
	})
}

// CancelOrder cancels a draft order
func (s *SalesOrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.Cancel(reason)
	})
}

func (s *SalesOrderService) transition(ctx context.Context, orderID uuid.UUID, fn func(order *trade.SalesOrder) error) (*OrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.NewDomainError("NOT_FOUND", "Sales order not found")
		}
		if err := fn(order); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	return toOrderResponse(order), nil
}

func toOrderResponse(o *trade.SalesOrder) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			Kind:        string(item.Kind),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return &OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		VehiclePlate:   o.VehiclePlate,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		PayableAmount:  o.PayableAmount,
		Status:         o.Status.String(),
		Remark:         o.Remark,
		ConfirmedAt:    o.ConfirmedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
