package providers

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// EventChannelModeration carries review moderation transitions.
const EventChannelModeration = "moderation:events"

// EventBus publishes and subscribes to moderation events across
// processes.
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.ModerationEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ModerationEvent, error)
	Unsubscribe(ctx context.Context, channel string) error
	Close() error
}
