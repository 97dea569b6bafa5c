package event

import (
	"context"

	"github.com/motogarage/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler logs every domain event for the audit trail.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a handler that records all events
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// Handle logs the event metadata
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice: the audit log receives all events.
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
