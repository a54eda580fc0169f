package services

// ServiceContainer bundles all service facades for handler registration.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Reporting      ReportingSvcFacade
	Inventory      InventorySvcFacade
	Asset          AssetSvcFacade
	Reconciliation ReconciliationSvcFacade
}
