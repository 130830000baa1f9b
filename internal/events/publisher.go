// Package events publishes transaction status changes on a Redis channel so
// downstream consumers (notification senders, read models) can react without
// touching the mutation path.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/bankman-core/bankman/internal/core/domain"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
)

// StatusChannel is the pub/sub channel carrying transaction status events.
const StatusChannel = "transactions.status"

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher backed by the given Redis client.
func NewRedisPublisher(client *redis.Client) portssvc.EventPublisherSvc {
	return &redisPublisher{client: client}
}

var _ portssvc.EventPublisherSvc = (*redisPublisher)(nil)

// PublishStatusChange publishes a status event on the transactions status
// channel.
func (p *redisPublisher) PublishStatusChange(ctx context.Context, event domain.TransactionStatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event for transaction %s: %w", event.TransactionID, err)
	}
	if err := p.client.Publish(ctx, StatusChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status event for transaction %s: %w", event.TransactionID, err)
	}
	return nil
}
