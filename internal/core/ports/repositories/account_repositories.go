package repositories

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// AccountRepository persists the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when
	// the code already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByCode returns apperrors.ErrNotFound when absent.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes batch-fetches accounts; missing codes are simply
	// absent from the returned map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns accounts whose code or name contains filter,
	// ordered by code ascending. An empty filter returns everything.
	ListAccounts(ctx context.Context, filter string) ([]domain.Account, error)

	// DeleteAccount removes an account in one transaction, failing with
	// apperrors.ErrConflict if any posting references the code and
	// apperrors.ErrNotFound when the code does not exist.
	DeleteAccount(ctx context.Context, code string) error
}
