package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool, journalRepo)
	assetRepo := newPgxAssetRepository(dbPool, journalRepo)
	bankRepo := newPgxBankRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
		InventoryRepo: inventoryRepo,
		AssetRepo:     assetRepo,
		BankRepo:      bankRepo,
	}
}
