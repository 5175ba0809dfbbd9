package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

// ImageAdapter implements the ImageRepository interface
type ImageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewImageAdapter creates a new image adapter
func NewImageAdapter(client *postgres.Client) repositories.ImageRepository {
	return &ImageAdapter{
		client: client,
		db:     newBuilder(client),
	}
}

// Create stores an uploaded image reference
func (a *ImageAdapter) Create(ctx context.Context, image *entities.Image) error {
	if a.db == nil {
		return errNotConfigured()
	}

	record := goqu.Record{
		"id":         image.ID,
		"url":        image.URL,
		"created_at": image.CreatedAt,
	}

	query, args, err := a.db.Insert("images").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build image insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create image", err)
	}

	return nil
}

// List retrieves all stored image references, newest first. Unlike the
// directory reads, a missing database is reported to the caller rather
// than degraded to an empty list.
func (a *ImageAdapter) List(ctx context.Context) ([]*entities.Image, error) {
	if a.db == nil {
		return nil, errNotConfigured()
	}

	query, args, err := a.db.From("images").
		Select("id", "url", "created_at").
		Order(goqu.C("created_at").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build image list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list images", err)
	}
	defer rows.Close()

	images := []*entities.Image{}
	for rows.Next() {
		image := &entities.Image{}
		if err := rows.Scan(&image.ID, &image.URL, &image.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan image", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating images", err)
	}

	return images, nil
}
