package services

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	"github.com/velia-fin/ledgercore/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts surface.
type AccountSvcFacade interface {
	AddAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)
	GetAccount(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, filter string) ([]domain.Account, error)
	RemoveAccount(ctx context.Context, code string) error
}
