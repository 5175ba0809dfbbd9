package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// MessageAdapter implements the MessageRepository interface
type MessageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMessageAdapter creates a new message adapter
func NewMessageAdapter(client *postgres.Client) repositories.MessageRepository {
	return &MessageAdapter{
		client: client,
		db:     newBuilder(client),
	}
}

// Create stores a contact-form submission
func (a *MessageAdapter) Create(ctx context.Context, message *entities.ContactMessage) error {
	if a.db == nil {
		return errNotConfigured()
	}

	record := goqu.Record{
		"id":         message.ID,
		"name":       message.Name,
		"email":      message.Email,
		"subject":    message.Subject,
		"body":       message.Body,
		"is_read":    message.IsRead,
		"created_at": message.CreatedAt,
	}

	query, args, err := a.db.Insert("messages").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build message insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create message", err)
	}

	return nil
}

// List retrieves all contact messages, newest first
func (a *MessageAdapter) List(ctx context.Context) ([]*entities.ContactMessage, error) {
	if a.db == nil {
		return []*entities.ContactMessage{}, nil
	}

	query, args, err := a.db.From("messages").
		Select("id", "name", "email", "subject", "body", "is_read", "created_at").
		Order(goqu.C("created_at").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build message list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list messages", err)
	}
	defer rows.Close()

	messages := []*entities.ContactMessage{}
	for rows.Next() {
		message := &entities.ContactMessage{}
		err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Subject,
			&message.Body,
			&message.IsRead,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan message", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating messages", err)
	}

	return messages, nil
}

// MarkAsRead flips the read flag on one message
func (a *MessageAdapter) MarkAsRead(ctx context.Context, id string) error {
	if a.db == nil {
		return errNotConfigured()
	}

	query, args, err := a.db.Update("messages").
		Set(goqu.Record{"is_read": true}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build message read query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark message as read", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("message with id %s not found", id))
	}

	return nil
}

// Counts returns the unread and total message counts in one query
func (a *MessageAdapter) Counts(ctx context.Context) (*entities.MessageCounts, error) {
	if a.db == nil {
		return &entities.MessageCounts{}, nil
	}

	query, args, err := a.db.From("messages").
		Select(
			goqu.L("COUNT(*) FILTER (WHERE is_read = false)"),
			goqu.COUNT("*"),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build message counts query", err)
	}

	counts := &entities.MessageCounts{}
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&counts.Unread, &counts.Total); err != nil {
		return nil, apperrors.NewInternalError("failed to count messages", err)
	}

	return counts, nil
}
