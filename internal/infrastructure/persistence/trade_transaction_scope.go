package persistence

import (
	"context"

	apptrade "github.com/motogarage/backend/internal/application/trade"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the order TransactionScope using GORM
// transactions. Confirming an order persists the order and opens its
// receivable in one transaction.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope.
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradeRepositories provides access to the order repositories within a transaction.
type gormTradeRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the sales order repository scoped to the current transaction.
func (r *gormTradeRepositories) OrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// ReceivableRepo returns the receivable repository scoped to the current transaction.
func (r *gormTradeRepositories) ReceivableRepo() finance.ReceivableRepository {
	return NewGormReceivableRepository(r.tx)
}

var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
