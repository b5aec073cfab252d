package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// WardAdapter implements the WardRepository interface
type WardAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWardAdapter creates a new ward adapter
func NewWardAdapter(client *postgres.Client) repositories.WardRepository {
	return &WardAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all wards ordered by display position
func (a *WardAdapter) List(ctx context.Context) ([]*entities.Ward, error) {
	defer a.client.Observe(ctx, "ward.list", time.Now())

	query, args, err := a.db.From("wards").Prepared(true).
		Select("id", "name", "unit", "total", "occupied", "updated_at").
		Order(goqu.I("position").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list wards", err)
	}
	defer rows.Close()

	wards := make([]*entities.Ward, 0)
	for rows.Next() {
		ward, err := scanWard(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan ward", err)
		}
		wards = append(wards, ward)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate wards", err)
	}

	return wards, nil
}

// GetByID retrieves a ward by ID
func (a *WardAdapter) GetByID(ctx context.Context, id string) (*entities.Ward, error) {
	defer a.client.Observe(ctx, "ward.get_by_id", time.Now())

	query, args, err := a.db.From("wards").Prepared(true).
		Select("id", "name", "unit", "total", "occupied", "updated_at").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	ward, err := scanWard(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("ward with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get ward", err)
	}

	return ward, nil
}

// Update stores new occupancy figures for a ward
func (a *WardAdapter) Update(ctx context.Context, ward *entities.Ward) error {
	defer a.client.Observe(ctx, "ward.update", time.Now())

	ward.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("wards").Prepared(true).
		Set(goqu.Record{
			"total":      ward.Total,
			"occupied":   ward.Occupied,
			"updated_at": ward.UpdatedAt,
		}).
		Where(goqu.Ex{"id": ward.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update ward", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("ward with id %s not found", ward.ID))
	}

	return nil
}

func scanWard(row rowScanner) (*entities.Ward, error) {
	ward := &entities.Ward{}
	var unit string
	if err := row.Scan(&ward.ID, &ward.Name, &unit, &ward.Total, &ward.Occupied, &ward.UpdatedAt); err != nil {
		return nil, err
	}
	ward.Unit = entities.BedUnit(unit)
	return ward, nil
}
