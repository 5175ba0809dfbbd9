package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/domain/entities"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

func TestImageAdapter_List(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewImageAdapter(client)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT "id", "url", "created_at" FROM "images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "created_at"}).
			AddRow("img-1", "https://cdn.example.com/a.png", now))

	images, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "img-1", images[0].ID)
	assert.Equal(t, "https://cdn.example.com/a.png", images[0].URL)
}

func TestImageAdapter_List_Unconfigured(t *testing.T) {
	adapter := NewImageAdapter(nil)

	_, err := adapter.List(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestImageAdapter_Create_Unconfigured(t *testing.T) {
	adapter := NewImageAdapter(nil)

	err := adapter.Create(context.Background(), &entities.Image{
		ID:  "img-1",
		URL: "https://cdn.example.com/a.png",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}
