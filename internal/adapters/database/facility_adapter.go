package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

var facilityColumns = []interface{}{
	"id", "name", "kind", "street", "city", "state", "zip_code", "country",
	"latitude", "longitude", "phone_number", "operating_hours", "services",
	"image_url", "is_active", "created_at", "updated_at",
}

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFacilityAdapter creates a new facility adapter
func NewFacilityAdapter(client *postgres.Client) repositories.FacilityRepository {
	return &FacilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func facilityRecord(facility *entities.Facility) goqu.Record {
	return goqu.Record{
		"name":            facility.Name,
		"kind":            string(facility.Kind),
		"street":          facility.Address.Street,
		"city":            facility.Address.City,
		"state":           facility.Address.State,
		"zip_code":        facility.Address.ZipCode,
		"country":         facility.Address.Country,
		"latitude":        facility.Location.Latitude,
		"longitude":       facility.Location.Longitude,
		"phone_number":    facility.PhoneNumber,
		"operating_hours": facility.OperatingHours,
		"services":        pq.Array(facility.Services),
		"image_url":       facility.ImageURL,
		"is_active":       facility.IsActive,
		"updated_at":      facility.UpdatedAt,
	}
}

// Create creates a new facility
func (a *FacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	defer a.client.Observe(ctx, "facility.create", time.Now())

	record := facilityRecord(facility)
	record["id"] = facility.ID
	record["created_at"] = facility.CreatedAt

	query, args, err := a.db.Insert("facilities").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("facility with id %s already exists", facility.ID))
		}
		return apperrors.NewInternalError("failed to create facility", err)
	}

	return nil
}

// GetByID retrieves a facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	defer a.client.Observe(ctx, "facility.get_by_id", time.Now())

	query, args, err := a.db.From("facilities").Prepared(true).
		Select(facilityColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	facility, err := scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get facility", err)
	}

	return facility, nil
}

// Update updates a facility
func (a *FacilityAdapter) Update(ctx context.Context, facility *entities.Facility) error {
	defer a.client.Observe(ctx, "facility.update", time.Now())

	facility.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("facilities").Prepared(true).
		Set(facilityRecord(facility)).
		Where(goqu.Ex{"id": facility.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update facility", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", facility.ID))
	}

	return nil
}

// List retrieves facilities with filters
func (a *FacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	defer a.client.Observe(ctx, "facility.list", time.Now())

	ds := a.db.From("facilities").Prepared(true).Select(facilityColumns...)

	if filter.Kind != "" {
		ds = ds.Where(goqu.Ex{"kind": string(filter.Kind)})
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}
	ds = ds.Order(goqu.I("id").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facilities", err)
	}
	defer rows.Close()

	facilities := make([]*entities.Facility, 0)
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate facilities", err)
	}

	return facilities, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	facility := &entities.Facility{}
	var kind string
	var operatingHours, imageURL sql.NullString

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&kind,
		&facility.Address.Street,
		&facility.Address.City,
		&facility.Address.State,
		&facility.Address.ZipCode,
		&facility.Address.Country,
		&facility.Location.Latitude,
		&facility.Location.Longitude,
		&facility.PhoneNumber,
		&operatingHours,
		pq.Array(&facility.Services),
		&imageURL,
		&facility.IsActive,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	facility.Kind = entities.FacilityKind(kind)
	facility.OperatingHours = operatingHours.String
	facility.ImageURL = imageURL.String
	return facility, nil
}
