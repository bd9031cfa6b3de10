package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/erp"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/internal/repository"
	"github.com/jafarshop/myorders/internal/session"
	"github.com/jafarshop/myorders/pkg/errors"
)

// OrdersSource is the ERP order service
type OrdersSource interface {
	GetOrders(ctx context.Context, sessionToken string, q erp.OrdersQuery) (*erp.OrdersResult, error)
	SessionRegistrar
}

// StatesSource fetches order status histories from the customer-service data source
type StatesSource interface {
	OrdersStates(ctx context.Context, lineIDs []int64) ([]domain.OrderStates, error)
}

// Dependencies are the collaborators of the orders query service
type Dependencies struct {
	Orders   OrdersSource
	Products ProductSearcher
	Comments CommentSource
	States   StatesSource
	Repos    *repository.Repositories
	Sessions session.Store
	Metrics  *metrics.Registry
}

// OrdersQueryService coordinates the list and detail queries
type OrdersQueryService struct {
	orders   OrdersSource
	states   StatesSource
	repos    *repository.Repositories
	catalog  *CatalogEnricher
	comments *CommentEnricher
	composer *OrderListComposer
	facets   *FacetBuilder
	renewal  *SessionRenewalPolicy
	timeline *TimelineBuilder
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// NewOrdersQueryService creates the list/detail coordinator
func NewOrdersQueryService(deps Dependencies, logger *zap.Logger) *OrdersQueryService {
	return &OrdersQueryService{
		orders:   deps.Orders,
		states:   deps.States,
		repos:    deps.Repos,
		catalog:  NewCatalogEnricher(deps.Products, deps.Metrics, logger),
		comments: NewCommentEnricher(deps.Comments, deps.Metrics, logger),
		composer: NewOrderListComposer(deps.Metrics, logger),
		facets:   NewFacetBuilder(),
		renewal:  NewSessionRenewalPolicy(deps.Orders, deps.Sessions, deps.Metrics, logger),
		timeline: NewTimelineBuilder(deps.Metrics, logger),
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// LoadTaxonomy reads the status configuration into a snapshot for one request
func (s *OrdersQueryService) LoadTaxonomy(ctx context.Context) (domain.StatusTaxonomy, error) {
	defs, err := s.repos.Status.ListActive(ctx)
	if err != nil {
		return domain.StatusTaxonomy{}, err
	}
	taxonomy := domain.NewStatusTaxonomy(defs)
	s.logger.Debug("Loaded status taxonomy", zap.Int("definitions", len(defs)), zap.Int("codes", taxonomy.Len()))
	return taxonomy, nil
}

func (s *OrdersQueryService) fetchOrders(ctx context.Context, token string, params ListParams) *erp.OrdersResult {
	result, err := s.orders.GetOrders(ctx, token, params.erpQuery())
	if err != nil {
		s.logger.Error("ERP order list failed", zap.Int("page", params.Page), zap.Error(err))
		return &erp.OrdersResult{Facets: domain.RawFacets{}}
	}
	return result
}

// List returns one page of the caller's orders with facet options.
// An empty first answer triggers a single session renewal and retry.
func (s *OrdersQueryService) List(ctx context.Context, sess *session.Session, clientIP string, params ListParams) (*OrderList, error) {
	result := s.fetchOrders(ctx, sess.ERPToken, params)
	if len(result.Lines) == 0 && s.renewal.Renew(ctx, sess, clientIP) {
		result = s.fetchOrders(ctx, sess.ERPToken, params)
	}

	wareIDs := make([]int64, 0, len(result.Lines))
	lineIDs := make([]int64, 0, len(result.Lines))
	for _, l := range result.Lines {
		wareIDs = append(wareIDs, l.WareID)
		lineIDs = append(lineIDs, l.LineID)
	}

	var (
		taxonomy domain.StatusTaxonomy
		products ProductSet
		comments Annotations
		offices  OfficeNames
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		taxonomy, err = s.LoadTaxonomy(gctx)
		return err
	})
	g.Go(func() error {
		products = s.catalog.Enrich(gctx, wareIDs, params.PerPage)
		return nil
	})
	g.Go(func() error {
		comments = s.comments.Enrich(gctx, lineIDs)
		return nil
	})
	g.Go(func() error {
		offices = s.officeNames(gctx, OfficeCodes(result.Facets))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries, err := s.composer.Compose(result.Lines, products, comments, taxonomy)
	if err != nil {
		return nil, err
	}

	return &OrderList{
		Orders:   summaries,
		Facets:   s.facets.Build(result.Facets, result.Lines, params.PerPage, offices),
		PerPage:  params.PerPage,
		Page:     params.Page,
		Previous: params.Page - 1,
		Next:     params.Page + 1,
	}, nil
}

func (s *OrdersQueryService) officeNames(ctx context.Context, codes []int64) OfficeNames {
	names := OfficeNames{}
	if len(codes) == 0 {
		return names
	}

	offices, err := s.repos.Office.ListByCodes(ctx, codes)
	if err != nil {
		s.logger.Error("Partner directory lookup failed, keeping ERP office labels", zap.Error(err))
		return names
	}
	for _, o := range offices {
		names[o.Code] = o.Name
	}
	return names
}

// Detail returns the fulfillment timeline of one order line. ErrNotFound means
// the customer-service source has no record for it, ErrUnavailable that the
// source could not be asked.
func (s *OrdersQueryService) Detail(ctx context.Context, orderLineID int64) (*OrderDetail, error) {
	var (
		record    *domain.OrderStates
		taxonomy  domain.StatusTaxonomy
		statesErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.states.OrdersStates(gctx, []int64{orderLineID})
		if err != nil {
			s.logger.Error("Customer-service order states failed", zap.Int64("order_line_id", orderLineID), zap.Error(err))
			s.metrics.Miss("states_source")
			statesErr = err
			return nil
		}
		for i := range entries {
			if entries[i].OrderID == orderLineID {
				record = &entries[i]
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		taxonomy, err = s.LoadTaxonomy(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if statesErr != nil {
		return nil, &errors.ErrUnavailable{Resource: "order states", Err: statesErr}
	}
	if record == nil {
		return nil, &errors.ErrNotFound{Resource: "order line", ID: strconv.FormatInt(orderLineID, 10)}
	}

	detail := &OrderDetail{
		OrderItemID:    orderLineID,
		Shipping:       record.Shipping,
		ShippingAddr:   record.ShippingAddr,
		DeliveryNum:    record.DeliveryNum,
		DeliveryStatus: record.DeliveryStatus,
		Canceled:       record.Canceled,
		DeliveryDate:   s.deliveryDate(record.DeliveryDate),
		Office:         s.office(ctx, record.SalesOfficeCode),
		Type:           domain.ParseShippingType(record.ShippingType),
		Timeline:       s.timeline.Build(record.States, taxonomy),
	}
	return detail, nil
}

func (s *OrdersQueryService) deliveryDate(raw string) *string {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(historyDateLayout, raw)
	if err != nil {
		s.logger.Warn("Unparseable delivery date", zap.String("date", raw), zap.Error(err))
		return nil
	}
	formatted := t.Format(terminalDateLayout)
	return &formatted
}

func (s *OrdersQueryService) office(ctx context.Context, code int64) *domain.Office {
	if code == 0 {
		return nil
	}
	office, err := s.repos.Office.GetByCode(ctx, code)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); !ok {
			s.logger.Error("Partner directory lookup failed", zap.Int64("code", code), zap.Error(err))
		}
		return nil
	}
	return office
}
