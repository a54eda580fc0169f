package repositories

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// BankRepository persists imported bank transactions and reconciliation
// links.
type BankRepository interface {
	// InsertTransactions inserts statement rows, silently skipping any whose
	// external_ref already exists. The batch never fails on duplicates.
	InsertTransactions(ctx context.Context, txns []domain.BankTransaction) (*domain.ImportResult, error)

	// FindTransactionByID returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, bankTxnID string) (*domain.BankTransaction, error)

	// ListUnlinkedTransactions returns imported transactions not yet linked
	// to a posting, ordered by (date, id).
	ListUnlinkedTransactions(ctx context.Context) ([]domain.BankTransaction, error)

	// ListUnreconciledPostings returns non-voided, unreconciled postings
	// against the given account, ordered by (entry date, id).
	ListUnreconciledPostings(ctx context.Context, accountCode string) ([]domain.Posting, error)

	// Reconcile sets posting.reconciled and bank_transaction.linked_posting_id
	// in one transaction with both rows locked. apperrors.ErrConflict when
	// either side is already linked; apperrors.ErrNotFound when either row is
	// missing.
	Reconcile(ctx context.Context, postingID, bankTxnID string) error
}
