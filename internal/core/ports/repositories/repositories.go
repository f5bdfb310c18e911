package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ProfileRepo     ProfileRepositoryFacade
	TeamRepo        TeamRepositoryWithTx
	CustomerRepo    CustomerRepositoryFacade
	CompanyRepo     CompanyRepositoryFacade
	DealRepo        DealRepositoryFacade
	TaskRepo        TaskRepositoryFacade
	InteractionRepo InteractionRepositoryFacade
	ActivityRepo    ActivityLogRepositoryFacade
}
