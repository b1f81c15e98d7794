package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
)

var auditedEvents = []events.EventType{
	events.EventTicketCreated,
	events.EventTicketDeleted,
	events.EventTicketStatusChanged,
	events.EventTicketPriorityChanged,
	events.EventTicketMessageAdded,
	events.EventUserCreated,
	events.EventUserUpdated,
	events.EventUserDeleted,
}

// AuditService writes an audit line and a metric for every domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range auditedEvents {
		a.dispatcher.Subscribe(eventType, a.record)
	}
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("at", event.Timestamp),
	}
	if event.TicketID != 0 {
		fields = append(fields, zap.Int64("ticket_id", event.TicketID))
	}
	if event.Actor != nil {
		fields = append(fields, zap.String("actor", event.Actor.Username), zap.Int64("actor_id", event.Actor.ID))
	} else {
		fields = append(fields, zap.String("actor", "system"))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	a.logger.Info("audit", fields...)
	a.metrics.RecordEvent(string(event.Type))
	return nil
}
