package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// MessageRepository stores contact-form submissions.
type MessageRepository interface {
	Create(ctx context.Context, message *entities.ContactMessage) error
	List(ctx context.Context) ([]*entities.ContactMessage, error)
	MarkAsRead(ctx context.Context, id string) error
	Counts(ctx context.Context) (*entities.MessageCounts, error)
}
