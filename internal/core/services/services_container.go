package services

import (
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.AccountRepo)
	container.Asset = NewAssetService(repos.AssetRepo, repos.JournalRepo, repos.AccountRepo)
	container.Reconciliation = NewReconciliationService(repos.BankRepo, repos.AccountRepo)

	return container
}
