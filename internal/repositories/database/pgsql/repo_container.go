package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo:     newPgxProfileRepository(dbPool),
		TeamRepo:        newPgxTeamRepository(dbPool),
		CustomerRepo:    newPgxCustomerRepository(dbPool),
		CompanyRepo:     newPgxCompanyRepository(dbPool),
		DealRepo:        newPgxDealRepository(dbPool),
		TaskRepo:        newPgxTaskRepository(dbPool),
		InteractionRepo: newPgxInteractionRepository(dbPool),
		ActivityRepo:    newPgxActivityLogRepository(dbPool),
	}
}
