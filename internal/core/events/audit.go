package events

import (
	"context"
	"log/slog"
)

// RegisterAuditLogger subscribes a structured-log audit trail to every
// account lifecycle event.
func RegisterAuditLogger(bus *EventBus, logger *slog.Logger) {
	audit := logger.With("channel", "audit")

	handler := func(ctx context.Context, event Event) error {
		audit.Info(event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		UserRegistered,
		UserBootstrapped,
		UserApproved,
		UserRejected,
		UserBlocked,
		UserReactivated,
		UserUpdated,
	} {
		bus.Subscribe(eventType, handler)
	}
}
