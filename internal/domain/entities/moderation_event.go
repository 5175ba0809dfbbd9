package entities

import "time"

// ModerationEventType enumerates the moderation transitions published on
// the event bus.
type ModerationEventType string

const (
	ModerationEventReported ModerationEventType = "review_reported"
	ModerationEventApproved ModerationEventType = "review_approved"
	ModerationEventDeleted  ModerationEventType = "review_deleted"
)

// ModerationEvent is published when a review changes moderation state so
// dependent view caches can be invalidated.
type ModerationEvent struct {
	ID         string              `json:"id"`
	ReviewID   string              `json:"review_id"`
	TargetID   string              `json:"target_id"`
	TargetType TargetType          `json:"target_type"`
	EventType  ModerationEventType `json:"event_type"`
	OccurredAt time.Time           `json:"occurred_at"`
}
