package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
	tsclient "github.com/mediqueue/backend/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	queryBy         = "name,city,zip_code"
	infixMode       = "always,always,always"
	defaultPageSize = 50
)

// TypesenseAdapter implements facility search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements FacilitySearchRepository
var _ repositories.FacilitySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

func facilityDocument(facility *entities.Facility) map[string]interface{} {
	services := facility.Services
	if services == nil {
		services = []string{}
	}
	return map[string]interface{}{
		"id":              facility.ID,
		"name":            facility.Name,
		"kind":            string(facility.Kind),
		"street":          facility.Address.Street,
		"city":            facility.Address.City,
		"state":           facility.Address.State,
		"zip_code":        facility.Address.ZipCode,
		"country":         facility.Address.Country,
		"phone_number":    facility.PhoneNumber,
		"operating_hours": facility.OperatingHours,
		"services":        services,
		"image_url":       facility.ImageURL,
		"location":        []float64{facility.Location.Latitude, facility.Location.Longitude},
		"is_active":       facility.IsActive,
		"created_at":      facility.CreatedAt.Unix(),
	}
}

// Index indexes a facility
func (a *TypesenseAdapter) Index(ctx context.Context, facility *entities.Facility) error {
	_, err := a.client.Client().Collection(tsclient.FacilitiesCollection).Documents().Upsert(ctx, facilityDocument(facility))
	if err != nil {
		return fmt.Errorf("failed to index facility: %w", err)
	}
	return nil
}

// Delete removes a facility from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.FacilitiesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete facility from index: %w", err)
	}
	return nil
}

// Search returns active facilities whose name, city or zip code match the query
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Facility, error) {
	filter := "is_active:=true"
	if params.Kind != "" {
		filter += fmt.Sprintf(" && kind:=%s", params.Kind)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	// Infix with zero typos keeps Typesense to plain substring matches
	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(strings.TrimSpace(params.Query)),
		QueryBy:  pointer.String(queryBy),
		FilterBy: pointer.String(filter),
		PerPage:  pointer.Int(limit),
		Infix:    pointer.String(infixMode),
		NumTypos: pointer.String("0"),
	}

	result, err := a.client.Client().Collection(tsclient.FacilitiesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search facilities: %w", err)
	}

	facilities := []*entities.Facility{}
	if result.Hits == nil {
		return facilities, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		facilities = append(facilities, facilityFromDocument(*hit.Document))
	}
	return facilities, nil
}

func facilityFromDocument(doc map[string]interface{}) *entities.Facility {
	str := func(key string) string {
		v, _ := doc[key].(string)
		return v
	}

	facility := &entities.Facility{
		ID:   str("id"),
		Name: str("name"),
		Kind: entities.FacilityKind(str("kind")),
		Address: entities.Address{
			Street:  str("street"),
			City:    str("city"),
			State:   str("state"),
			ZipCode: str("zip_code"),
			Country: str("country"),
		},
		PhoneNumber:    str("phone_number"),
		OperatingHours: str("operating_hours"),
		ImageURL:       str("image_url"),
		Services:       []string{},
	}

	if active, ok := doc["is_active"].(bool); ok {
		facility.IsActive = active
	}
	if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
		facility.Location.Latitude, _ = loc[0].(float64)
		facility.Location.Longitude, _ = loc[1].(float64)
	}
	if services, ok := doc["services"].([]interface{}); ok {
		for _, s := range services {
			if v, ok := s.(string); ok {
				facility.Services = append(facility.Services, v)
			}
		}
	}
	if created, ok := doc["created_at"].(float64); ok {
		facility.CreatedAt = time.Unix(int64(created), 0).UTC()
	}
	return facility
}
