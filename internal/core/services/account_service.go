package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
)

var (
	ErrDuplicateCode = errors.New("account code already exists")
	ErrAccountInUse  = errors.New("account is referenced by postings")
	ErrBadNature     = errors.New("account nature must be DEBIT or CREDIT")
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// AddAccount registers a new account. The nature is fixed at creation and
// never mutated afterwards.
func (s *accountService) AddAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	nature := domain.AccountNature(req.Nature)
	if nature != domain.DebitNature && nature != domain.CreditNature {
		return nil, fmt.Errorf("%w: got %q", ErrBadNature, req.Nature)
	}

	class := domain.AccountClass(req.Class)
	if req.Class == "" {
		class = domain.ClassForCode(req.Code)
	}

	account := domain.Account{
		Code:   req.Code,
		Name:   req.Name,
		Nature: nature,
		Class:  class,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account %s: %w", req.Code, err)
	}

	logger.Info("Account created", slog.String("code", account.Code), slog.String("nature", string(account.Nature)))
	return &account, nil
}

// GetAccount retrieves one account by code.
func (s *accountService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts returns accounts whose code or name contains the filter,
// ordered by code ascending.
func (s *accountService) ListAccounts(ctx context.Context, filter string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// RemoveAccount deletes an account that no posting references.
func (s *accountService) RemoveAccount(ctx context.Context, code string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", ErrAccountInUse, code)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("code", code))
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}

	logger.Info("Account removed", slog.String("code", code))
	return nil
}
