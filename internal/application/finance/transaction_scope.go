package finance

import (
	"context"

	"github.com/motogarage/backend/internal/domain/finance"
)

// TransactionScope provides transactional access to the settlement repositories.
// Repository operations performed inside Execute share one database transaction
// and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the settlement repositories
// within one transaction. Receivable updates and payment record inserts must
// land together or not at all.
type TransactionalRepositories interface {
	// ReceivableRepo returns the receivable repository scoped to the current transaction
	ReceivableRepo() finance.ReceivableRepository
	// PaymentRepo returns the payment record repository scoped to the current transaction
	PaymentRepo() finance.PaymentRecordRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with in-memory repositories.
type NoOpTransactionScope struct {
	receivableRepo finance.ReceivableRepository
	paymentRepo    finance.PaymentRecordRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(receivableRepo finance.ReceivableRepository, paymentRepo finance.PaymentRecordRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		receivableRepo: receivableRepo,
		paymentRepo:    paymentRepo,
	}
}

// Execute runs the function without transaction boundaries.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ReceivableRepo returns the receivable repository.
func (s *NoOpTransactionScope) ReceivableRepo() finance.ReceivableRepository {
	return s.receivableRepo
}

// PaymentRepo returns the payment record repository.
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRecordRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
