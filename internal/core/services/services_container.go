package services

import (
	"github.com/go-redis/redis/v8"

	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache *redis.Client, events portssvc.EventPublisherSvc, runner TaskRunner) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	glMapping := GLMapping{
		CashCode:             cfg.GLCashCode,
		CustomerDepositsCode: cfg.GLCustomerDepositsCode,
		FeeIncomeCode:        cfg.GLFeeIncomeCode,
	}

	container.Events = events
	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, glMapping)
	container.Aggregate = NewAggregateService(repos.AggregateRepo, cache)
	container.Webhook = NewWebhookService(repos.WebhookRepo, runner, cfg.WebhookSecret, nil)
	container.Charge = NewChargeService(repos.ChargeRepo, repos.AccountRepo, repos.TransactionRepo, container.Journal, container.Aggregate, events, cache)
	container.Transaction = NewTransactionService(
		repos.AccountRepo,
		repos.TransactionRepo,
		container.Journal,
		container.Charge,
		container.Aggregate,
		container.Webhook,
		events,
		runner,
	)

	return container
}
