package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mediqueue/backend/internal/domain/entities"
	apperrors "github.com/mediqueue/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWardAdapter_List(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewWardAdapter(client)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT "id", "name", "unit", "total", "occupied", "updated_at" FROM "wards" ORDER BY "position" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit", "total", "occupied", "updated_at"}).
			AddRow("icu", "ICU", "Beds", 20, 18, now).
			AddRow("pediatric", "Pediatric Ward", "Cots", 30, 15, now))

	wards, err := adapter.List(context.Background())

	require.NoError(t, err)
	require.Len(t, wards, 2)
	assert.Equal(t, 2, wards[0].Available())
	assert.Equal(t, entities.BedUnitCots, wards[1].Unit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWardAdapter_Update(t *testing.T) {
	t.Run("stores occupancy", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewWardAdapter(client)
		mock.ExpectExec(`UPDATE "wards" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.Update(context.Background(), &entities.Ward{ID: "icu", Total: 20, Occupied: 19})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown ward", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewWardAdapter(client)
		mock.ExpectExec(`UPDATE "wards" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.Update(context.Background(), &entities.Ward{ID: "nope"})

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestInsertWards(t *testing.T) {
	client, mock := setupMockDB(t)
	mock.ExpectExec(`INSERT INTO "wards" .* ON CONFLICT DO NOTHING`).WillReturnResult(sqlmock.NewResult(0, 2))

	err := InsertWards(context.Background(), client, []*entities.Ward{
		{ID: "icu", Name: "ICU", Unit: entities.BedUnitBeds, Total: 20, Occupied: 18},
		{ID: "maternity", Name: "Maternity Ward", Unit: entities.BedUnitBeds, Total: 25, Occupied: 20},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
