package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	JournalRepo   JournalRepository
	ReportingRepo ReportingRepository
	InventoryRepo InventoryRepository
	AssetRepo     AssetRepository
	BankRepo      BankRepository
}
