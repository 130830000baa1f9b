package mapping

import (
	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/models"
)

// ToModelWebhookEvent converts a domain WebhookEvent to a model WebhookEvent
func ToModelWebhookEvent(d domain.WebhookEvent) models.WebhookEvent {
	m := models.WebhookEvent{
		EventID:        d.EventID,
		WebhookID:      d.WebhookID,
		URL:            d.URL,
		Payload:        []byte(d.Payload),
		Status:         string(d.Status),
		Attempt:        d.Attempt,
		ResponseStatus: d.ResponseStatus,
		ScheduledAt:    d.ScheduledAt,
		DeliveredAt:    d.DeliveredAt,
		FailedAt:       d.FailedAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.ResponseBody != "" {
		body := d.ResponseBody
		m.ResponseBody = &body
	}
	if d.ErrorMessage != "" {
		msg := d.ErrorMessage
		m.ErrorMessage = &msg
	}
	return m
}

// ToDomainWebhookEvent converts a model WebhookEvent to a domain WebhookEvent
func ToDomainWebhookEvent(m models.WebhookEvent) domain.WebhookEvent {
	d := domain.WebhookEvent{
		EventID:        m.EventID,
		WebhookID:      m.WebhookID,
		URL:            m.URL,
		Payload:        m.Payload,
		Status:         domain.WebhookStatus(m.Status),
		Attempt:        m.Attempt,
		ResponseStatus: m.ResponseStatus,
		ScheduledAt:    m.ScheduledAt,
		DeliveredAt:    m.DeliveredAt,
		FailedAt:       m.FailedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.ResponseBody != nil {
		d.ResponseBody = *m.ResponseBody
	}
	if m.ErrorMessage != nil {
		d.ErrorMessage = *m.ErrorMessage
	}
	return d
}
