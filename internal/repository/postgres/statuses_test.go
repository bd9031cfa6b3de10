package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
)

var statusColumns = []string{
	"id", "erp_code", "title", "position", "color", "image", "image_list", "show_expected", "show_comment",
}

func TestStatusRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatusRepository(db, zap.NewNop())

	rows := sqlmock.NewRows(statusColumns).
		AddRow(1, 10, "Accepted", "", "#00ff00", "/img/a.png", "/img/a-list.png", true, true).
		AddRow(2, nil, "Ready for pickup", "pickup", "#0000ff", nil, nil, false, true).
		AddRow(3, 40, "Delivered", "last", nil, "", "/img/d-list.png", false, false).
		AddRow(4, 50, "Odd", "sideways", "", nil, nil, false, false)

	mock.ExpectQuery(`SELECT cs.id, s.erp_code, cs.title.* FROM client_statuses cs LEFT JOIN statuses s`).
		WillReturnRows(rows)

	defs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 4)

	assert.Equal(t, int64(10), defs[0].Code)
	assert.Equal(t, domain.PositionNormal, defs[0].Position)
	require.NotNil(t, defs[0].ImageList)
	assert.Equal(t, "/img/a-list.png", *defs[0].ImageList)
	assert.True(t, defs[0].ShowComment)

	assert.Equal(t, int64(0), defs[1].Code)
	assert.Equal(t, domain.PositionPickup, defs[1].Position)
	assert.False(t, defs[1].ShowComment, "show_comment requires a list image")

	assert.Equal(t, domain.PositionLast, defs[2].Position)
	assert.Nil(t, defs[2].Image)
	assert.Equal(t, "", defs[2].Color)

	assert.Equal(t, domain.Position("sideways"), defs[3].Position)
	assert.False(t, defs[3].Position.IsBoundary())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_ListActive_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatusRepository(db, zap.NewNop())
	mock.ExpectQuery(`SELECT cs.id`).WillReturnError(errors.New("connection reset"))

	_, err = repo.ListActive(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
