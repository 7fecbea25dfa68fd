package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Metric attribute keys
var (
	AttrCheckoutState = attribute.Key("checkout_state")
	AttrCheckoutStep  = attribute.Key("checkout_step")
	AttrOutcome       = attribute.Key("outcome")
	AttrEntity        = attribute.Key("entity")
)

var (
	// checkoutBuckets cover three sequential store calls plus rendering
	checkoutBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
	stepBuckets     = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}
)

// ErrMeterNil is returned by NewSaleMetrics without a meter
var ErrMeterNil = errors.New("sale metrics: meter is nil")

// SessionCounter reports how many sale sessions are open
type SessionCounter interface {
	Len() int
}

// SaleMetricsConfig holds configuration for sale metrics.
type SaleMetricsConfig struct {
	Meter    metric.Meter
	Logger   *zap.Logger
	Sessions SessionCounter
}

// SaleMetrics records checkout and catalog activity.
// It satisfies the checkout observer of the sale service and the load
// observer of the catalog cache.
type SaleMetrics struct {
	logger   *zap.Logger
	sessions SessionCounter

	checkouts      metric.Int64Counter
	soldCentavos   metric.Int64Counter
	checkoutTime   metric.Float64Histogram
	stepTime       metric.Float64Histogram
	catalogLoads   metric.Int64Counter
	catalogEntries metric.Int64Gauge
	openSessions   metric.Int64Gauge

	stop        chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// NewSaleMetrics creates the sale instruments on cfg.Meter.
func NewSaleMetrics(cfg SaleMetricsConfig) (*SaleMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := cfg.Meter
	sm := &SaleMetrics{logger: logger, sessions: cfg.Sessions, stop: make(chan struct{})}

	var errs []error
	record := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	sm.checkouts, err = m.Int64Counter("pos_checkout_total",
		metric.WithDescription("Checkout attempts by final state"), metric.WithUnit("{checkouts}"))
	record(err)
	sm.soldCentavos, err = m.Int64Counter("pos_sale_amount_total",
		metric.WithDescription("Amount of registered sales in centavos"), metric.WithUnit("{centavos}"))
	record(err)
	sm.checkoutTime, err = m.Float64Histogram("pos_checkout_duration_seconds",
		metric.WithDescription("Duration of a checkout attempt"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(checkoutBuckets...))
	record(err)
	sm.stepTime, err = m.Float64Histogram("pos_checkout_step_duration_seconds",
		metric.WithDescription("Duration of each remote call of a checkout"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(stepBuckets...))
	record(err)
	sm.catalogLoads, err = m.Int64Counter("pos_catalog_load_total",
		metric.WithDescription("Catalog loads by outcome"), metric.WithUnit("{loads}"))
	record(err)
	sm.catalogEntries, err = m.Int64Gauge("pos_catalog_entries",
		metric.WithDescription("Entries held by the catalog cache"), metric.WithUnit("{entries}"))
	record(err)
	sm.openSessions, err = m.Int64Gauge("pos_active_sessions",
		metric.WithDescription("Open sale sessions"), metric.WithUnit("{sessions}"))
	record(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sm, nil
}

func outcomeOf(failed bool) attribute.KeyValue {
	if failed {
		return AttrOutcome.String("failure")
	}
	return AttrOutcome.String("success")
}

// CheckoutFinished records the final state of a checkout attempt.
func (sm *SaleMetrics) CheckoutFinished(state sale.CheckoutState, total decimal.Decimal, elapsed time.Duration) {
	ctx := context.Background()
	outcome := outcomeOf(state.IsFailure())
	sm.checkouts.Add(ctx, 1, metric.WithAttributes(AttrCheckoutState.String(state.String()), outcome))
	sm.checkoutTime.Record(ctx, elapsed.Seconds(), metric.WithAttributes(outcome))
	if state == sale.CheckoutStateDone {
		sm.soldCentavos.Add(ctx, total.Shift(2).Round(0).IntPart())
	}
}

// CheckoutStep records one remote call of a checkout.
func (sm *SaleMetrics) CheckoutStep(step string, elapsed time.Duration, err error) {
	sm.stepTime.Record(context.Background(), elapsed.Seconds(),
		metric.WithAttributes(AttrCheckoutStep.String(step), outcomeOf(err != nil)))
}

// CatalogLoaded records a catalog load and the resulting cache size.
func (sm *SaleMetrics) CatalogLoaded(customers, products, rejected int, err error) {
	ctx := context.Background()
	outcome := AttrOutcome.String("success")
	if err != nil {
		outcome = AttrOutcome.String("partial")
	}
	sm.catalogLoads.Add(ctx, 1, metric.WithAttributes(outcome))
	sm.catalogEntries.Record(ctx, int64(customers), metric.WithAttributes(AttrEntity.String("customers")))
	sm.catalogEntries.Record(ctx, int64(products), metric.WithAttributes(AttrEntity.String("products")))
	sm.catalogEntries.Record(ctx, int64(rejected), metric.WithAttributes(AttrEntity.String("rejected_products")))
}

// SetSessions sets the session counter sampled by StartPeriodicCollection.
// It must be called before StartPeriodicCollection.
func (sm *SaleMetrics) SetSessions(sessions SessionCounter) {
	sm.sessions = sessions
}

// StartPeriodicCollection samples the open session count every interval
// until Stop is called or ctx ends.
func (sm *SaleMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if sm.sessions == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	sm.collectOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				sm.openSessions.Record(ctx, int64(sm.sessions.Len()))
				select {
				case <-sm.stop:
					sm.logger.Debug("Session sampling stopped")
					return
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()
	})
}

// Stop ends the periodic collection. It is safe to call more than once.
func (sm *SaleMetrics) Stop() {
	sm.stopOnce.Do(func() { close(sm.stop) })
}
