package partner

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestCustomerService_CreateCustomer(t *testing.T) {
	t.Run("creates and normalizes code", func(t *testing.T) {
		service := NewCustomerService(newMemCustomerRepo())

		resp, err := service.CreateCustomer(context.Background(), CreateCustomerRequest{
			Code:  "kh-001",
			Name:  "Nguyen Van An",
			Type:  "individual",
			Phone: "+84 90 123 4567",
		})

		require.NoError(t, err)
		assert.Equal(t, "KH-001", resp.Code)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		service := NewCustomerService(newMemCustomerRepo())
		_, err := service.CreateCustomer(context.Background(), CreateCustomerRequest{Code: "KH-001", Name: "A", Type: "individual"})
		require.NoError(t, err)

		_, err = service.CreateCustomer(context.Background(), CreateCustomerRequest{Code: "KH-001", Name: "B", Type: "individual"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	service := NewCustomerService(newMemCustomerRepo())
	created, err := service.CreateCustomer(context.Background(), CreateCustomerRequest{Code: "KH-001", Name: "Nguyen Van An", Type: "individual"})
	require.NoError(t, err)

	limit := decimal.NewFromInt(2000000)
	updated, err := service.UpdateCustomer(context.Background(), created.ID, UpdateCustomerRequest{
		Name:        "Nguyen Van An",
		Phone:       "090 123 4567",
		CreditLimit: &limit,
	})

	require.NoError(t, err)
	assert.True(t, updated.CreditLimit.Equal(limit))
	assert.Equal(t, "090 123 4567", updated.Phone)

	_, err = service.UpdateCustomer(context.Background(), uuid.New(), UpdateCustomerRequest{Name: "X"})
	assert.Error(t, err)
}

func TestCustomerService_StatusChanges(t *testing.T) {
	service := NewCustomerService(newMemCustomerRepo())
	created, err := service.CreateCustomer(context.Background(), CreateCustomerRequest{Code: "KH-001", Name: "Nguyen Van An", Type: "individual"})
	require.NoError(t, err)

	deactivated, err := service.DeactivateCustomer(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", deactivated.Status)

	activated, err := service.ActivateCustomer(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", activated.Status)
}
