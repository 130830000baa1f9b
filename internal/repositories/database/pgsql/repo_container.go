package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		ChargeRepo:      newPgxChargeRepository(dbPool),
		AggregateRepo:   newPgxAggregateRepository(dbPool),
		WebhookRepo:     newPgxWebhookRepository(dbPool),
	}
}
