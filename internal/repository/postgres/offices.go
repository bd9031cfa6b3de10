package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/pkg/errors"
)

type officeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOfficeRepository creates a new partner office repository
func NewOfficeRepository(db *sql.DB, logger *zap.Logger) *officeRepository {
	return &officeRepository{
		db:     db,
		logger: logger,
	}
}

const officeColumns = `id, code, name, address, phone, is_active, created_at, updated_at`

func scanOffice(scan func(dest ...interface{}) error) (*domain.Office, error) {
	var office domain.Office
	var address, phone sql.NullString

	err := scan(
		&office.ID,
		&office.Code,
		&office.Name,
		&address,
		&phone,
		&office.IsActive,
		&office.CreatedAt,
		&office.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	office.Address = address.String
	office.Phone = phone.String
	return &office, nil
}

func (r *officeRepository) GetByCode(ctx context.Context, code int64) (*domain.Office, error) {
	query := `
		SELECT ` + officeColumns + `
		FROM partners
		WHERE code = $1 AND is_active = true
		ORDER BY created_at
		LIMIT 1
	`

	office, err := scanOffice(r.db.QueryRowContext(ctx, query, code).Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "office", ID: strconv.FormatInt(code, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get office by code", zap.Int64("code", code), zap.Error(err))
		return nil, err
	}

	return office, nil
}

func (r *officeRepository) ListByCodes(ctx context.Context, codes []int64) ([]*domain.Office, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + officeColumns + `
		FROM partners
		WHERE code = ANY($1) AND is_active = true
		ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(codes))
	if err != nil {
		r.logger.Error("Failed to query offices", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var offices []*domain.Office
	for rows.Next() {
		office, err := scanOffice(rows.Scan)
		if err != nil {
			r.logger.Error("Failed to scan office", zap.Error(err))
			return nil, err
		}
		offices = append(offices, office)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offices, nil
}

func (r *officeRepository) Create(ctx context.Context, office *domain.Office) error {
	if office.Name == "" {
		return fmt.Errorf("office name is required")
	}

	query := `
		INSERT INTO partners (id, code, name, address, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	if office.ID == uuid.Nil {
		office.ID = uuid.New()
	}
	if office.CreatedAt.IsZero() {
		office.CreatedAt = now
	}
	if office.UpdatedAt.IsZero() {
		office.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		office.ID,
		office.Code,
		office.Name,
		office.Address,
		office.Phone,
		office.IsActive,
		office.CreatedAt,
		office.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create office", zap.Error(err))
		return err
	}

	return nil
}
