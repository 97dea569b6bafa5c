package trade

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOrderRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*trade.SalesOrder
	seq   int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{items: make(map[uuid.UUID]*trade.SalesOrder)}
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.items[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *memOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*trade.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trade.SalesOrder, 0)
	for _, o := range r.items {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	page := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *memOrderRepo) Save(_ context.Context, order *trade.SalesOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.items[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) NextOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return fmt.Sprintf("SO-2026-%03d", r.seq), nil
}

type memReceivableRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*finance.Receivable
}

func newMemReceivableRepo() *memReceivableRepo {
	return &memReceivableRepo{items: make(map[uuid.UUID]*finance.Receivable)}
}

func (r *memReceivableRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.Receivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.items[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *memReceivableRepo) FindBySalesOrder(_ context.Context, salesOrderID uuid.UUID) (*finance.Receivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.items {
		if rec.SalesOrderID == salesOrderID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReceivableRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, status *finance.ReceivableStatus, filter shared.Filter) (*shared.Paginated[finance.Receivable], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]finance.Receivable, 0)
	for _, rec := range r.items {
		if rec.CustomerID == customerID {
			out = append(out, *rec)
		}
	}
	page := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *memReceivableRepo) FindOutstanding(_ context.Context, customerID uuid.UUID) ([]finance.Receivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]finance.Receivable, 0)
	for _, rec := range r.items {
		if rec.CustomerID == customerID && !rec.IsPaid() {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memReceivableRepo) Save(_ context.Context, receivable *finance.Receivable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *receivable
	r.items[receivable.ID] = &cp
	return nil
}

func (r *memReceivableRepo) SaveWithLock(_ context.Context, receivable *finance.Receivable) error {
	return r.Save(context.Background(), receivable)
}

func (r *memReceivableRepo) SumOutstanding(_ context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, rec := range r.items {
		if rec.CustomerID == customerID {
			sum = sum.Add(rec.Balance())
		}
	}
	return sum, nil
}

func (r *memReceivableRepo) SummarizeByCustomer(_ context.Context, customerID uuid.UUID) (finance.LedgerTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := finance.LedgerTotals{
		TotalOriginal:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for _, rec := range r.items {
		if rec.CustomerID != customerID {
			continue
		}
		totals.TotalOriginal = totals.TotalOriginal.Add(rec.OriginalAmount)
		totals.TotalPaid = totals.TotalPaid.Add(rec.PaidAmount)
		totals.TotalOutstanding = totals.TotalOutstanding.Add(rec.Balance())
		if !rec.IsPaid() {
			totals.OpenCount++
		}
	}
	return totals, nil
}

type memCustomerRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*partner.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{items: make(map[uuid.UUID]*partner.Customer)}
}

func (r *memCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCustomerRepo) FindByCode(_ context.Context, code string) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[partner.Customer], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]partner.Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	page := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *memCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *customer
	r.items[customer.ID] = &cp
	return nil
}

func (r *memCustomerRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	c, _ := r.FindByCode(context.Background(), code)
	return c != nil, nil
}

type orderFixture struct {
	orders      *memOrderRepo
	receivables *memReceivableRepo
	customers   *memCustomerRepo
	service     *SalesOrderService
	customerID  uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orders := newMemOrderRepo()
	receivables := newMemReceivableRepo()
	customers := newMemCustomerRepo()

	customer, err := partner.NewIndividualCustomer("KH-001", "Nguyen Van An")
	require.NoError(t, err)
	require.NoError(t, customers.Save(context.Background(), customer))

	scope := NewNoOpTransactionScope(orders, receivables)
	return &orderFixture{
		orders:      orders,
		receivables: receivables,
		customers:   customers,
		service:     NewSalesOrderService(scope, customers),
		customerID:  customer.ID,
	}
}

func validCreateRequest(customerID uuid.UUID) CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID:   customerID,
		VehiclePlate: "59-X1 234.56",
		Items: []OrderItemRequest{
			{Kind: "PART", Description: "Brake pads front", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150000)},
			{Kind: "LABOR", Description: "Brake service", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80000)},
		},
	}
}

func TestSalesOrderService_CreateOrder(t *testing.T) {
	t.Run("creates draft with sequential number", func(t *testing.T) {
		f := newOrderFixture(t)

		resp, err := f.service.CreateOrder(context.Background(), validCreateRequest(f.customerID))

		require.NoError(t, err)
		assert.Equal(t, "SO-2026-001", resp.OrderNumber)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.True(t, resp.PayableAmount.Equal(decimal.NewFromInt(380000)))
		assert.Len(t, resp.Items, 2)
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.service.CreateOrder(context.Background(), validCreateRequest(uuid.New()))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects inactive customer", func(t *testing.T) {
		f := newOrderFixture(t)
		customer, err := f.customers.FindByID(context.Background(), f.customerID)
		require.NoError(t, err)
		require.NoError(t, customer.Deactivate())
		require.NoError(t, f.customers.Save(context.Background(), customer))

		_, err = f.service.CreateOrder(context.Background(), validCreateRequest(f.customerID))
		assert.Error(t, err)
	})

	t.Run("applies discount", func(t *testing.T) {
		f := newOrderFixture(t)
		req := validCreateRequest(f.customerID)
		req.Discount = decimal.NewFromInt(30000)

		resp, err := f.service.CreateOrder(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, resp.PayableAmount.Equal(decimal.NewFromInt(350000)))
	})
}

func TestSalesOrderService_ConfirmOrder(t *testing.T) {
	t.Run("confirm opens a receivable for the payable amount", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.service.CreateOrder(context.Background(), validCreateRequest(f.customerID))
		require.NoError(t, err)

		confirmed, err := f.service.ConfirmOrder(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", confirmed.Status)

		receivable, err := f.receivables.FindBySalesOrder(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, receivable)
		assert.Equal(t, created.OrderNumber, receivable.OrderNumber)
		assert.Equal(t, f.customerID, receivable.CustomerID)
		assert.True(t, receivable.OriginalAmount.Equal(created.PayableAmount))
		assert.Equal(t, finance.ReceivableStatusUnpaid, receivable.Status())
	})

	t.Run("second confirm fails and creates no duplicate receivable", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.service.CreateOrder(context.Background(), validCreateRequest(f.customerID))
		require.NoError(t, err)
		_, err = f.service.ConfirmOrder(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = f.service.ConfirmOrder(context.Background(), created.ID)
		assert.Error(t, err)

		sum, err := f.receivables.SumOutstanding(context.Background(), f.customerID)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromInt(380000)))
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.service.ConfirmOrder(context.Background(), uuid.New())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestSalesOrderService_Lifecycle(t *testing.T) {
	t.Run("complete after confirm", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.service.CreateOrder(context.Background(), validCreateRequest(f.customerID))
		require.NoError(t, err)
		_, err = f.service.ConfirmOrder(context.Background(), created.ID)
		require.NoError(t, err)

		completed, err := f.service.CompleteOrder(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", completed.Status)
	})

	t.Run("cancel draft leaves no receivable", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.service.CreateOrder(context.Background(), validCreateRequest(f.customerID))
		require.NoError(t, err)

		cancelled, err := f.service.CancelOrder(context.Background(), created.ID, "customer changed mind")
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", cancelled.Status)

		receivable, err := f.receivables.FindBySalesOrder(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Nil(t, receivable)
	})
}
