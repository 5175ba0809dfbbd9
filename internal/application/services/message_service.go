package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// MessageService handles contact-form submissions and the operator
// inbox.
type MessageService struct {
	repo repositories.MessageRepository
}

// NewMessageService creates a new message service
func NewMessageService(repo repositories.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Create stores a contact message
func (s *MessageService) Create(ctx context.Context, message *entities.ContactMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.IsRead = false
	message.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, message)
}

// List returns the operator inbox. Operator only.
func (s *MessageService) List(ctx context.Context, actor *entities.User) ([]*entities.ContactMessage, error) {
	if !actor.CanModerate() {
		return nil, apperrors.NewUnauthorizedError("only operators may read contact messages")
	}
	return s.repo.List(ctx)
}

// MarkAsRead flips the read flag on one message. Operator only.
func (s *MessageService) MarkAsRead(ctx context.Context, id string, actor *entities.User) error {
	if !actor.CanModerate() {
		return apperrors.NewUnauthorizedError("only operators may read contact messages")
	}
	return s.repo.MarkAsRead(ctx, id)
}

// Counts returns the unread/total pair for the dashboard badge.
// Repeated calls never change state.
func (s *MessageService) Counts(ctx context.Context) (*entities.MessageCounts, error) {
	return s.repo.Counts(ctx)
}
