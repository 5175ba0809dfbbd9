package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/knowhealth/backend/pkg/config"
	"github.com/knowhealth/backend/pkg/retry"
)

// DirectoryCollection holds both provider and facility documents,
// distinguished by a kind field so one query searches the whole
// directory.
const DirectoryCollection = "directory"

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	retryConfig := retry.DefaultConfig()
	retryConfig.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().
			Int("attempt", attempt).
			Err(err).
			Dur("next_delay", nextDelay).
			Msg("typesense connection attempt failed, retrying")
	}

	err := retry.Do(context.Background(), retryConfig, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := client.Health(ctx, 2*time.Second)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Msg("connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// InitSchema ensures the directory collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == DirectoryCollection {
			return nil
		}
	}

	schema := &api.CollectionSchema{
		Name: DirectoryCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "entity_id", Type: "string"},
			{Name: "kind", Type: "string", Facet: pointer.True()},
			{Name: "name", Type: "string"},
			{Name: "specialty", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "facility_type", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "location", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "services", Type: "string[]", Optional: pointer.True()},
			{Name: "languages", Type: "string[]", Optional: pointer.True()},
			{Name: "insurances", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "rating", Type: "float", Facet: pointer.True()},
			{Name: "review_count", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := c.client.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", DirectoryCollection).Msg("created Typesense collection")
	return nil
}

// UpsertDocument indexes a directory document
func (c *Client) UpsertDocument(ctx context.Context, document map[string]interface{}) error {
	_, err := c.client.Collection(DirectoryCollection).Documents().Upsert(ctx, document)
	return err
}

// DeleteDocument removes a directory document
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	_, err := c.client.Collection(DirectoryCollection).Document(id).Delete(ctx)
	return err
}
