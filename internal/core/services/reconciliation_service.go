package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
	"github.com/velia-fin/ledgercore/internal/utils/accounting"
)

var (
	ErrReconciliationConflict = errors.New("posting or bank transaction is already reconciled")
	ErrEmptyStatement         = errors.New("bank statement has no transactions")
)

// reconciliationService imports bank statements and matches them against
// ledger postings.
type reconciliationService struct {
	bankRepo    portsrepo.BankRepository
	accountRepo portsrepo.AccountRepository
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(bankRepo portsrepo.BankRepository, accountRepo portsrepo.AccountRepository) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ImportBankStatement inserts the statement rows. Rows whose external_ref
// was imported before are skipped, so re-submitting the same file is safe.
func (s *reconciliationService) ImportBankStatement(ctx context.Context, req dto.ImportStatementRequest) (*domain.ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Transactions) == 0 {
		return nil, ErrEmptyStatement
	}

	txns := make([]domain.BankTransaction, 0, len(req.Transactions))
	for _, input := range req.Transactions {
		txns = append(txns, domain.BankTransaction{
			BankTxnID:   uuid.NewString(),
			Date:        input.Date,
			Description: input.Description,
			Amount:      input.Amount,
			ExternalRef: input.ExternalRef,
		})
	}

	result, err := s.bankRepo.InsertTransactions(ctx, txns)
	if err != nil {
		logger.Error("Failed to import bank statement", slog.String("error", err.Error()), slog.Int("rows", len(txns)))
		return nil, fmt.Errorf("failed to import bank statement: %w", err)
	}

	logger.Info("Bank statement imported",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

// GreedyMatch pairs bank transactions with postings, first match wins.
// Transactions are walked in the given order; each takes the first posting
// whose debit (amount < 0) or credit (amount > 0) equals the transaction's
// absolute amount within the balance tolerance. A posting claimed by one
// transaction is never offered to a later one.
func GreedyMatch(txns []domain.BankTransaction, postings []domain.Posting) []domain.MatchSuggestion {
	suggestions := []domain.MatchSuggestion{}
	taken := make(map[string]bool, len(postings))

	for _, txn := range txns {
		if txn.Amount.IsZero() {
			continue
		}
		target := txn.Amount.Abs()
		wantDebit := txn.Amount.IsNegative()

		for _, posting := range postings {
			if taken[posting.PostingID] {
				continue
			}
			side := posting.Credit
			if wantDebit {
				side = posting.Debit
			}
			if !side.IsPositive() || !accounting.AmountsMatch(side, target) {
				continue
			}
			taken[posting.PostingID] = true
			suggestions = append(suggestions, domain.MatchSuggestion{
				BankTxnID: txn.BankTxnID,
				PostingID: posting.PostingID,
				Amount:    txn.Amount,
			})
			break
		}
	}
	return suggestions
}

// GetBankTransaction retrieves one imported bank transaction by ID.
func (s *reconciliationService) GetBankTransaction(ctx context.Context, bankTxnID string) (*domain.BankTransaction, error) {
	return s.bankRepo.FindTransactionByID(ctx, bankTxnID)
}

// SuggestMatches runs GreedyMatch over the unlinked bank transactions and
// the account's unreconciled postings. Suggestions are advisory: nothing is
// linked until Reconcile confirms a pair.
func (s *reconciliationService) SuggestMatches(ctx context.Context, accountCode string) ([]domain.MatchSuggestion, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByCode(ctx, accountCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, accountCode)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountCode, err)
	}

	txns, err := s.bankRepo.ListUnlinkedTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked bank transactions: %w", err)
	}
	postings, err := s.bankRepo.ListUnreconciledPostings(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreconciled postings for %s: %w", accountCode, err)
	}

	suggestions := GreedyMatch(txns, postings)
	logger.Info("Reconciliation suggestions computed",
		slog.String("account_code", accountCode),
		slog.Int("bank_txns", len(txns)),
		slog.Int("postings", len(postings)),
		slog.Int("suggestions", len(suggestions)),
	)
	return suggestions, nil
}

// Reconcile confirms one suggestion: the posting is flagged reconciled and
// the bank transaction points at it, atomically.
func (s *reconciliationService) Reconcile(ctx context.Context, postingID, bankTxnID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.bankRepo.Reconcile(ctx, postingID, bankTxnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: posting %s, bank txn %s", ErrReconciliationConflict, postingID, bankTxnID)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to reconcile",
			slog.String("error", err.Error()),
			slog.String("posting_id", postingID),
			slog.String("bank_txn_id", bankTxnID),
		)
		return fmt.Errorf("failed to reconcile posting %s with bank txn %s: %w", postingID, bankTxnID, err)
	}

	logger.Info("Reconciled", slog.String("posting_id", postingID), slog.String("bank_txn_id", bankTxnID))
	return nil
}
