package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

func setupMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return postgres.NewClientWithDB(mockDB), mock
}

func providerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "specialty", "location", "bio",
		"phone", "email", "address",
		"languages", "qualifications", "insurances",
		"rating", "review_count", "image_url", "submitted_by",
		"created_at", "updated_at",
	})
}

func TestProviderAdapter_CreateAndGet(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewProviderAdapter(client)

	now := time.Now()
	provider := &entities.Provider{
		ID:        "prov-1",
		Name:      "Dr. Ada Bello",
		Specialty: "Cardiology",
		Location:  "Lagos",
		Bio:       "Twenty years of practice.",
		Contact: entities.Contact{
			Phone:   "+2348000000000",
			Email:   "ada@example.com",
			Address: "12 Marina Road, Lagos",
		},
		Languages:   []string{"English", "Yoruba"},
		ImageURL:    "https://placehold.co/400x300?text=AB",
		SubmittedBy: "user-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(`INSERT INTO "providers"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), provider)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM "providers"`).
		WithArgs("prov-1").
		WillReturnRows(providerRows().AddRow(
			"prov-1", "Dr. Ada Bello", "Cardiology", "Lagos", "Twenty years of practice.",
			"+2348000000000", "ada@example.com", "12 Marina Road, Lagos",
			pq.StringArray{"English", "Yoruba"}, pq.StringArray{}, pq.StringArray{},
			0.0, 0, "https://placehold.co/400x300?text=AB", "user-1",
			now, now,
		))

	got, err := adapter.GetByID(context.Background(), "prov-1")
	require.NoError(t, err)
	assert.Equal(t, provider.Name, got.Name)
	assert.Equal(t, provider.Specialty, got.Specialty)
	assert.Equal(t, provider.Contact.Address, got.Contact.Address)
	assert.Equal(t, []string{"English", "Yoruba"}, got.Languages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProviderAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewProviderAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "providers"`).
		WithArgs("missing").
		WillReturnRows(providerRows())

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProviderAdapter_Delete_Ownership(t *testing.T) {
	tests := []struct {
		name        string
		submittedBy string
		noRow       bool
		wantType    apperrors.ErrorType
	}{
		{
			name:        "owner may delete",
			submittedBy: "user-1",
		},
		{
			name:        "non-owner is rejected",
			submittedBy: "someone-else",
			wantType:    apperrors.ErrorTypeUnauthorized,
		},
		{
			name:     "missing listing is not found",
			noRow:    true,
			wantType: apperrors.ErrorTypeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := setupMockClient(t)
			adapter := NewProviderAdapter(client)

			rows := sqlmock.NewRows([]string{"submitted_by"})
			if !tt.noRow {
				rows.AddRow(tt.submittedBy)
			}
			mock.ExpectQuery(`SELECT "submitted_by" FROM "providers"`).
				WithArgs("prov-1").
				WillReturnRows(rows)

			if tt.wantType == "" {
				mock.ExpectExec(`DELETE FROM "providers"`).
					WithArgs("prov-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := adapter.Delete(context.Background(), "prov-1", "user-1")
			if tt.wantType == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProviderAdapter_List_Filters(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewProviderAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "providers"`).
		WillReturnRows(providerRows().AddRow(
			"prov-2", "Dr. Chinedu Okafor", "Dermatology", "Abuja", "",
			"", "", "",
			pq.StringArray{}, pq.StringArray{}, pq.StringArray{},
			4.5, 12, "", "user-2",
			now, now,
		))

	providers, err := adapter.List(context.Background(), repositories.ProviderFilter{
		Specialty: "Dermatology",
		Location:  "Abuja",
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "Dr. Chinedu Okafor", providers[0].Name)
	assert.Equal(t, 4.5, providers[0].Rating)
}

func TestProviderAdapter_UnconfiguredDatabase(t *testing.T) {
	adapter := NewProviderAdapter(nil)
	ctx := context.Background()

	providers, err := adapter.List(ctx, repositories.ProviderFilter{})
	require.NoError(t, err)
	assert.Empty(t, providers)

	count, err := adapter.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = adapter.Create(ctx, &entities.Provider{ID: "prov-1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))

	err = adapter.Delete(ctx, "prov-1", "user-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}
