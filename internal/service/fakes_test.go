package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/erp"
	"github.com/jafarshop/myorders/internal/repository"
	"github.com/jafarshop/myorders/internal/session"
	apperrors "github.com/jafarshop/myorders/pkg/errors"
)

var errUnavailable = errors.New("connection refused")

func strPtr(s string) *string { return &s }

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// statusFixture covers two regular statuses and both boundaries
func statusFixture() []domain.StatusDefinition {
	return []domain.StatusDefinition{
		{ID: 1, Code: 10, Title: "Accepted", Color: "#2d9cdb", ImageList: strPtr("accepted-list.svg"), Image: strPtr("accepted.svg")},
		{ID: 2, Code: 20, Title: "Packed", Color: "#f2994a", ImageList: strPtr("packed-list.svg")},
		{ID: 3, Code: 0, Title: "Ready for pickup", Position: domain.PositionPickup, Color: "#27ae60"},
		{ID: 4, Code: 40, Title: "Received", Position: domain.PositionLast, Color: "#219653", ImageList: strPtr("received-list.svg")},
	}
}

type fakeProducts struct {
	mu       sync.Mutex
	products []domain.ProductView
	err      error
	calls    int
	gotIDs   []int64
	gotLimit int
}

func (f *fakeProducts) SearchByWareIDs(ctx context.Context, wareIDs []int64, limit int) ([]domain.ProductView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotIDs = wareIDs
	f.gotLimit = limit
	return f.products, f.err
}

type fakeComments struct {
	mu      sync.Mutex
	entries []domain.CommentAnnotation
	err     error
	calls   int
}

func (f *fakeComments) OrdersInfo(ctx context.Context, lineIDs []int64) ([]domain.CommentAnnotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.entries, f.err
}

type fakeStates struct {
	entries []domain.OrderStates
	err     error
}

func (f *fakeStates) OrdersStates(ctx context.Context, lineIDs []int64) ([]domain.OrderStates, error) {
	return f.entries, f.err
}

// fakeERP answers GetOrders from a queue of results, one per call
type fakeERP struct {
	results    []*erp.OrdersResult
	errs       []error
	tokens     []string
	renewToken string
	renewErr   error
	renewCalls int
	renewIP    string
	renewFrom  string
}

func (f *fakeERP) GetOrders(ctx context.Context, sessionToken string, q erp.OrdersQuery) (*erp.OrdersResult, error) {
	call := len(f.tokens)
	f.tokens = append(f.tokens, sessionToken)

	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}
	if err != nil {
		return nil, err
	}
	if call < len(f.results) {
		return f.results[call], nil
	}
	return &erp.OrdersResult{Facets: domain.RawFacets{}}, nil
}

func (f *fakeERP) SessionRegister(ctx context.Context, clientIP, currentToken string) (string, error) {
	f.renewCalls++
	f.renewIP = clientIP
	f.renewFrom = currentToken
	return f.renewToken, f.renewErr
}

type fakeStatusRepo struct {
	defs []domain.StatusDefinition
	err  error
}

func (f *fakeStatusRepo) ListActive(ctx context.Context) ([]domain.StatusDefinition, error) {
	return f.defs, f.err
}

type fakeOfficeRepo struct {
	offices []*domain.Office
	err     error
}

func (f *fakeOfficeRepo) GetByCode(ctx context.Context, code int64) (*domain.Office, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.offices {
		if o.Code == code {
			return o, nil
		}
	}
	return nil, &apperrors.ErrNotFound{Resource: "office", ID: "unknown"}
}

func (f *fakeOfficeRepo) ListByCodes(ctx context.Context, codes []int64) ([]*domain.Office, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Office
	for _, o := range f.offices {
		for _, c := range codes {
			if o.Code == c {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func (f *fakeOfficeRepo) Create(ctx context.Context, office *domain.Office) error {
	f.offices = append(f.offices, office)
	return nil
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (*session.Session, error) {
	return nil, errUnavailable
}

func (failingStore) Save(ctx context.Context, s *session.Session) error {
	return errUnavailable
}

func newRepos(statuses *fakeStatusRepo, offices *fakeOfficeRepo) *repository.Repositories {
	return &repository.Repositories{Status: statuses, Office: offices}
}
