package persistence

import (
	"context"

	appfinance "github.com/motogarage/backend/internal/application/finance"
	"github.com/motogarage/backend/internal/domain/finance"
	"gorm.io/gorm"
)

// GormFinanceTransactionScope implements the settlement TransactionScope using
// GORM transactions. Receivable updates and payment record inserts performed
// inside Execute commit or roll back together.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope.
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormFinanceRepositories{tx: tx}
		return fn(repos)
	})
}

// gormFinanceRepositories provides access to the settlement repositories within a transaction.
type gormFinanceRepositories struct {
	tx *gorm.DB
}

// ReceivableRepo returns the receivable repository scoped to the current transaction.
func (r *gormFinanceRepositories) ReceivableRepo() finance.ReceivableRepository {
	return NewGormReceivableRepository(r.tx)
}

// PaymentRepo returns the payment record repository scoped to the current transaction.
func (r *gormFinanceRepositories) PaymentRepo() finance.PaymentRecordRepository {
	return NewGormPaymentRecordRepository(r.tx)
}

var _ appfinance.TransactionScope = (*GormFinanceTransactionScope)(nil)
var _ appfinance.TransactionalRepositories = (*gormFinanceRepositories)(nil)
