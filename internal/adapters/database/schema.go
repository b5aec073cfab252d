package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
)

// Schema creates the tables backing the Postgres repositories
const Schema = `
CREATE TABLE IF NOT EXISTS facilities (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	kind            TEXT NOT NULL CHECK (kind IN ('hospital', 'pharmacy')),
	street          TEXT NOT NULL DEFAULT '',
	city            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT '',
	zip_code        TEXT NOT NULL DEFAULT '',
	country         TEXT NOT NULL DEFAULT '',
	latitude        DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
	phone_number    TEXT NOT NULL DEFAULT '',
	operating_hours TEXT,
	services        TEXT[],
	image_url       TEXT,
	is_active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_facilities_kind ON facilities (kind);

CREATE TABLE IF NOT EXISTS appointments (
	id            TEXT PRIMARY KEY,
	patient_id    TEXT NOT NULL,
	patient_name  TEXT NOT NULL DEFAULT '',
	patient_phone TEXT,
	doctor_id     TEXT NOT NULL,
	doctor_name   TEXT NOT NULL DEFAULT '',
	department    TEXT NOT NULL DEFAULT '',
	date          DATE NOT NULL,
	time_slot     TEXT NOT NULL,
	mode          TEXT NOT NULL,
	reason        TEXT,
	status        TEXT NOT NULL CHECK (status IN ('Scheduled', 'Completed', 'Canceled')),
	notes         TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments (patient_id);
CREATE INDEX IF NOT EXISTS idx_appointments_doctor ON appointments (doctor_id);

CREATE TABLE IF NOT EXISTS wards (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL DEFAULT 0,
	name       TEXT NOT NULL,
	unit       TEXT NOT NULL DEFAULT 'Beds',
	total      INTEGER NOT NULL CHECK (total >= 0),
	occupied   INTEGER NOT NULL CHECK (occupied >= 0 AND occupied <= total),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate applies Schema
func Migrate(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Truncate removes all rows from the repository tables
func Truncate(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, `TRUNCATE TABLE appointments, wards, facilities`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// InsertWards stores wards keeping their slice order as display position
func InsertWards(ctx context.Context, client *postgres.Client, wards []*entities.Ward) error {
	if len(wards) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(wards))
	for i, ward := range wards {
		rows = append(rows, goqu.Record{
			"id":         ward.ID,
			"position":   i,
			"name":       ward.Name,
			"unit":       string(ward.Unit),
			"total":      ward.Total,
			"occupied":   ward.Occupied,
			"updated_at": ward.UpdatedAt,
		})
	}

	query, args, err := goqu.Dialect("postgres").Insert("wards").Prepared(true).Rows(rows...).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build ward insert: %w", err)
	}
	if _, err := client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert wards: %w", err)
	}
	return nil
}
