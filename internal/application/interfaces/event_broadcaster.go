package interfaces

import (
	"context"

	"catalog-service/internal/domain/events"
)

// EventBroadcaster delivers an event to live subscribers, best effort.
// Implementations never report delivery failures to the caller.
type EventBroadcaster interface {
	Broadcast(ctx context.Context, event events.Event)
}
