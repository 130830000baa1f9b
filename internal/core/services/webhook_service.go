package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/middleware"
)

const webhookMaxAttempts = 3

// webhookPayload is the body POSTed to the caller's endpoint. JobID is set
// only for queued operations; Error only when such an operation permanently
// failed.
type webhookPayload struct {
	Event         string                         `json:"event"`
	WebhookID     string                         `json:"webhook_id"`
	JobID         string                         `json:"job_id,omitempty"`
	TransactionID string                         `json:"transaction_id,omitempty"`
	Status        domain.TransactionStatus       `json:"status,omitempty"`
	Error         string                         `json:"error,omitempty"`
	Timestamp     int64                          `json:"timestamp"`
	Data          *domain.TransactionStatusEvent `json:"data,omitempty"`
}

// webhookService delivers transaction status webhooks with signed payloads
// and bounded retries. Every delivery state lands in one idempotent row per
// webhook id, so a crashed worker can never double-record an outcome.
type webhookService struct {
	webhookRepo portsrepo.WebhookRepositoryFacade
	client      *http.Client
	runner      TaskRunner
	secret      string
	backoff     []time.Duration
}

// NewWebhookService creates a new WebhookService. backoff holds the wait
// before each retry; nil selects the default 30s/60s/120s schedule.
func NewWebhookService(webhookRepo portsrepo.WebhookRepositoryFacade, runner TaskRunner, secret string, backoff []time.Duration) portssvc.WebhookNotifierSvc {
	if backoff == nil {
		backoff = []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second}
	}
	return &webhookService{
		webhookRepo: webhookRepo,
		client:      &http.Client{Timeout: 15 * time.Second},
		runner:      runner,
		secret:      secret,
		backoff:     backoff,
	}
}

var _ portssvc.WebhookNotifierSvc = (*webhookService)(nil)

// NotifyTransaction schedules delivery of a status webhook for a
// transaction. A blank URL is a no-op.
func (s *webhookService) NotifyTransaction(ctx context.Context, txn domain.Transaction, url string) error {
	if url == "" {
		return nil
	}

	data := domain.StatusEventFromTransaction(txn)
	payload := webhookPayload{
		Event:         "transaction.status_changed",
		WebhookID:     uuid.NewString(),
		TransactionID: txn.TransactionID,
		Status:        txn.Status,
		Timestamp:     time.Now().UTC().Unix(),
		Data:          &data,
	}
	return s.schedule(ctx, payload, url)
}

// NotifyJobResult delivers the final outcome of a queued operation to the
// caller's endpoint. A nil jobErr reports success with the resulting
// transaction; a non-nil jobErr reports the permanent failure. A blank URL
// is a no-op.
func (s *webhookService) NotifyJobResult(ctx context.Context, jobID string, txn *domain.Transaction, jobErr error, url string) error {
	if url == "" {
		return nil
	}

	payload := webhookPayload{
		Event:     "job.completed",
		WebhookID: uuid.NewString(),
		JobID:     jobID,
		Status:    domain.StatusCompleted,
		Timestamp: time.Now().UTC().Unix(),
	}
	if jobErr != nil {
		payload.Event = "job.failed"
		payload.Status = domain.StatusFailed
		payload.Error = jobErr.Error()
	} else if txn != nil {
		payload.TransactionID = txn.TransactionID
		payload.Status = txn.Status
		data := domain.StatusEventFromTransaction(*txn)
		payload.Data = &data
	}
	return s.schedule(ctx, payload, url)
}

// schedule records the payload as a pending event and hands delivery to the
// background runner.
func (s *webhookService) schedule(ctx context.Context, payload webhookPayload, url string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	now := time.Now().UTC()
	event := domain.WebhookEvent{
		EventID:     uuid.NewString(),
		WebhookID:   payload.WebhookID,
		URL:         url,
		Payload:     body,
		Status:      domain.WebhookPending,
		Attempt:     0,
		ScheduledAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.webhookRepo.UpsertEvent(ctx, event); err != nil {
		return err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	s.runner.Submit("deliver_webhook", func(jobCtx context.Context) error {
		// Delivery retries and the terminal state are handled per event;
		// the runner never re-runs a delivery loop.
		s.deliverWithRetries(jobCtx, event, logger)
		return nil
	})
	return nil
}

// deliverWithRetries drives an event through its delivery attempts,
// sleeping the configured backoff between failures.
func (s *webhookService) deliverWithRetries(ctx context.Context, event domain.WebhookEvent, logger *slog.Logger) {
	current := event
	for {
		updated, retry, err := s.Deliver(ctx, current)
		if err != nil {
			logger.Error("webhook delivery attempt errored",
				slog.String("webhook_id", current.WebhookID),
				slog.String("error", err.Error()))
			return
		}
		if !retry {
			return
		}
		current = *updated

		wait := s.backoff[len(s.backoff)-1]
		if current.Attempt-1 < len(s.backoff) {
			wait = s.backoff[current.Attempt-1]
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// sign computes the payload signature clients verify.
func (s *webhookService) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// Deliver performs one delivery attempt for a webhook event and records the
// outcome. It returns the updated event and whether another attempt should
// be scheduled.
func (s *webhookService) Deliver(ctx context.Context, event domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	now := time.Now().UTC()
	event.Attempt++
	event.UpdatedAt = now

	status, body, err := s.attempt(ctx, &event)
	if err == nil && status >= 200 && status < 300 {
		event.Status = domain.WebhookDelivered
		event.ResponseStatus = &status
		event.ResponseBody = body
		event.ErrorMessage = ""
		event.DeliveredAt = &now
		if upsertErr := s.webhookRepo.UpsertEvent(ctx, event); upsertErr != nil {
			return nil, false, upsertErr
		}
		return &event, false, nil
	}

	if err != nil {
		event.ErrorMessage = err.Error()
	} else {
		event.ResponseStatus = &status
		event.ResponseBody = body
		event.ErrorMessage = "unexpected response status " + strconv.Itoa(status)
	}

	if event.Attempt >= webhookMaxAttempts {
		event.Status = domain.WebhookPermanentlyFailed
		event.FailedAt = &now
		if upsertErr := s.webhookRepo.UpsertEvent(ctx, event); upsertErr != nil {
			return nil, false, upsertErr
		}
		return &event, false, nil
	}

	event.Status = domain.WebhookRetrying
	next := now.Add(s.backoff[0])
	if event.Attempt-1 < len(s.backoff) {
		next = now.Add(s.backoff[event.Attempt-1])
	}
	event.ScheduledAt = &next
	if upsertErr := s.webhookRepo.UpsertEvent(ctx, event); upsertErr != nil {
		return nil, false, upsertErr
	}
	return &event, true, nil
}

// attempt fires one signed POST and returns the response status and a
// truncated body.
func (s *webhookService) attempt(ctx context.Context, event *domain.WebhookEvent) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, event.URL, bytes.NewReader(event.Payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", s.sign(event.Payload))
	req.Header.Set("X-Webhook-ID", event.WebhookID)
	req.Header.Set("X-Webhook-Timestamp", strconv.FormatInt(time.Now().UTC().Unix(), 10))

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(body), nil
}
