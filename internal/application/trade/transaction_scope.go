package trade

import (
	"context"

	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the order repositories.
// Confirming an order writes the order and opens its receivable in one
// transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order and receivable
// repositories within one transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the sales order repository scoped to the current transaction
	OrderRepo() trade.SalesOrderRepository
	// ReceivableRepo returns the receivable repository scoped to the current transaction
	ReceivableRepo() finance.ReceivableRepository
}

// NoOpTransactionScope runs the function without a real transaction.
type NoOpTransactionScope struct {
	orderRepo      trade.SalesOrderRepository
	receivableRepo finance.ReceivableRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(orderRepo trade.SalesOrderRepository, receivableRepo finance.ReceivableRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		receivableRepo: receivableRepo,
	}
}

// Execute runs the function without transaction boundaries.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.SalesOrderRepository {
	return s.orderRepo
}

// ReceivableRepo returns the receivable repository.
func (s *NoOpTransactionScope) ReceivableRepo() finance.ReceivableRepository {
	return s.receivableRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
