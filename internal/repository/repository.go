package repository

import (
	"context"

	"github.com/jafarshop/myorders/internal/domain"
)

// StatusRepository reads the status configuration
type StatusRepository interface {
	ListActive(ctx context.Context) ([]domain.StatusDefinition, error)
}

// OfficeRepository reads and maintains the partner office directory
type OfficeRepository interface {
	GetByCode(ctx context.Context, code int64) (*domain.Office, error)
	ListByCodes(ctx context.Context, codes []int64) ([]*domain.Office, error)
	Create(ctx context.Context, office *domain.Office) error
}

// Repositories bundles the configuration store repositories
type Repositories struct {
	Status StatusRepository
	Office OfficeRepository
}
