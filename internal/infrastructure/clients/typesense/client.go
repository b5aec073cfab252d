package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/mediqueue/backend/pkg/config"
	"github.com/mediqueue/backend/pkg/retry"
	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	FacilitiesCollection = "facilities"
)

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

	err := retry.DoWithLog(
		context.Background(),
		retry.QuickConfig(),
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Typesense connection attempt failed")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("Successfully connected to Typesense")
	return &Client{client: client}, nil
}

// NewClientFromTypesense wraps an already configured Typesense client
func NewClientFromTypesense(client *typesense.Client) *Client {
	return &Client{client: client}
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// FacilitiesSchema describes the searchable facility documents
func FacilitiesSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: FacilitiesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string", Infix: pointer.True()},
			{Name: "kind", Type: "string", Facet: pointer.True()},
			{Name: "street", Type: "string", Optional: pointer.True()},
			{Name: "city", Type: "string", Facet: pointer.True(), Infix: pointer.True()},
			{Name: "state", Type: "string", Optional: pointer.True()},
			{Name: "zip_code", Type: "string", Infix: pointer.True()},
			{Name: "country", Type: "string", Optional: pointer.True()},
			{Name: "phone_number", Type: "string", Optional: pointer.True()},
			{Name: "operating_hours", Type: "string", Optional: pointer.True()},
			{Name: "services", Type: "string[]", Optional: pointer.True()},
			{Name: "image_url", Type: "string", Optional: pointer.True()},
			{Name: "location", Type: "geopoint"},
			{Name: "is_active", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
}

// InitSchema ensures the facilities collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == FacilitiesCollection {
			log.Debug().Str("collection", FacilitiesCollection).Msg("Typesense collection already exists")
			return nil
		}
	}

	if _, err := c.client.Collections().Create(ctx, FacilitiesSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", FacilitiesCollection).Msg("Created Typesense collection")
	return nil
}

// DropSchema deletes the facilities collection if it exists
func (c *Client) DropSchema(ctx context.Context) error {
	if _, err := c.client.Collection(FacilitiesCollection).Delete(ctx); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return nil
}
