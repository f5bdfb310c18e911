package services

import (
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The activity recorder comes first since every entity service records
	// through it.
	container.Activity = NewActivityService(repos.ActivityRepo)
	var recorder portssvc.ActivityRecorderSvc = container.Activity

	container.Identity = NewIdentityService(repos.ProfileRepo, cfg.JWTSecret, cfg.JWTIssuer)
	container.Profile = NewProfileService(repos.ProfileRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, recorder)
	container.Company = NewCompanyService(repos.CompanyRepo, recorder)
	container.Deal = NewDealService(repos.DealRepo, recorder)
	container.Task = NewTaskService(repos.TaskRepo, recorder)
	container.Interaction = NewInteractionService(repos.InteractionRepo, recorder)
	container.Team = NewTeamService(
		repos.TeamRepo,
		repos.ProfileRepo,
		repos.CustomerRepo,
		repos.DealRepo,
		repos.TaskRepo,
	)

	return container
}
