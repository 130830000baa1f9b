package domain

import (
	"encoding/json"
	"time"
)

// WebhookStatus is the delivery state of a webhook event.
type WebhookStatus string

const (
	WebhookPending           WebhookStatus = "pending"
	WebhookRetrying          WebhookStatus = "retrying"
	WebhookDelivered         WebhookStatus = "delivered"
	WebhookFailed            WebhookStatus = "failed"
	WebhookPermanentlyFailed WebhookStatus = "permanently_failed"
)

// WebhookEvent records the delivery attempts for one outbound webhook.
// There is exactly one row per WebhookID; retries update the row rather
// than inserting a new one, so the record is idempotent and auditable.
type WebhookEvent struct {
	EventID        string          `json:"eventID"`
	WebhookID      string          `json:"webhookID"`
	URL            string          `json:"url"`
	Payload        json.RawMessage `json:"payload"`
	Status         WebhookStatus   `json:"status"`
	Attempt        int             `json:"attempt"`
	ResponseStatus *int            `json:"responseStatus,omitempty"`
	ResponseBody   string          `json:"responseBody,omitempty"`
	ErrorMessage   string          `json:"errorMessage,omitempty"`
	ScheduledAt    *time.Time      `json:"scheduledAt,omitempty"`
	DeliveredAt    *time.Time      `json:"deliveredAt,omitempty"`
	FailedAt       *time.Time      `json:"failedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
