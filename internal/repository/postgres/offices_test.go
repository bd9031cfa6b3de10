package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/pkg/errors"
)

var officeRowColumns = []string{"id", "code", "name", "address", "phone", "is_active", "created_at", "updated_at"}

func TestOfficeRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOfficeRepository(db, zap.NewNop())
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM partners")).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(officeRowColumns).
			AddRow(id.String(), 12, "Kyiv Central", "Main st. 1", nil, true, now, now))

	office, err := repo.GetByCode(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, id, office.ID)
	assert.Equal(t, "Kyiv Central", office.Name)
	assert.Equal(t, "Main st. 1", office.Address)
	assert.Equal(t, "", office.Phone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfficeRepository_GetByCode_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOfficeRepository(db, zap.NewNop())
	mock.ExpectQuery(regexp.QuoteMeta("FROM partners")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(officeRowColumns))

	_, err = repo.GetByCode(context.Background(), 99)
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "99", notFound.ID)
}

func TestOfficeRepository_ListByCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOfficeRepository(db, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE code = ANY($1)")).
		WithArgs("{7,12}").
		WillReturnRows(sqlmock.NewRows(officeRowColumns).
			AddRow(uuid.New().String(), 7, "Lviv", nil, nil, true, now, now).
			AddRow(uuid.New().String(), 12, "Kyiv", nil, nil, true, now, now))

	offices, err := repo.ListByCodes(context.Background(), []int64{7, 12})
	require.NoError(t, err)
	require.Len(t, offices, 2)
	assert.Equal(t, int64(7), offices[0].Code)
	assert.Equal(t, "Kyiv", offices[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfficeRepository_ListByCodes_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOfficeRepository(db, zap.NewNop())
	offices, err := repo.ListByCodes(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, offices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfficeRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOfficeRepository(db, zap.NewNop())
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO partners")).
		WithArgs(sqlmock.AnyArg(), int64(5), "Odesa", "", "", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	office := &domain.Office{Code: 5, Name: "Odesa", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), office))
	assert.NotEqual(t, uuid.Nil, office.ID)
	assert.False(t, office.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfficeRepository_Create_RequiresName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOfficeRepository(db, zap.NewNop())
	assert.Error(t, repo.Create(context.Background(), &domain.Office{Code: 5}))
}
