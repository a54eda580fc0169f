package services

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	"github.com/velia-fin/ledgercore/internal/dto"
)

// ReconciliationSvcFacade is the bank reconciliation surface.
type ReconciliationSvcFacade interface {
	// ImportBankStatement is idempotent: rows whose external_ref already
	// exists are skipped without failing the batch.
	ImportBankStatement(ctx context.Context, req dto.ImportStatementRequest) (*domain.ImportResult, error)

	// GetBankTransaction retrieves one imported bank transaction.
	GetBankTransaction(ctx context.Context, bankTxnID string) (*domain.BankTransaction, error)

	// SuggestMatches runs the greedy first-match-wins matcher over unlinked
	// bank transactions and the account's unreconciled postings.
	SuggestMatches(ctx context.Context, accountCode string) ([]domain.MatchSuggestion, error)

	// Reconcile links one posting to one bank transaction atomically.
	Reconcile(ctx context.Context, postingID, bankTxnID string) error
}
