package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DeskMetrics tracks front-desk business activity: reservations, folio
// postings, payments and room occupancy.
type DeskMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	reservationCreatedTotal   *Counter
	reservationCancelledTotal *Counter
	checkoutTotal             *Counter
	folioPostingTotal         *Counter
	paymentTotal              *Counter
	paymentAmountTotal        *Counter
	invoiceRenderedTotal      *Counter
	invoiceRenderDuration     *Histogram

	roomsOccupied *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	occupancyProvider OccupancyProvider
}

// OccupancyProvider reports how many rooms are currently occupied per
// property. The telemetry layer queries it periodically without depending on
// the reservation domain directly.
type OccupancyProvider interface {
	OccupiedRoomCount(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

// PropertyProvider lists the properties to collect gauge metrics for.
type PropertyProvider interface {
	ActivePropertyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// DeskMetricsConfig holds configuration for desk metrics.
type DeskMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	OccupancyProvider OccupancyProvider
}

// NewDeskMetrics creates a new DeskMetrics instance.
func NewDeskMetrics(cfg DeskMetricsConfig) (*DeskMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dm := &DeskMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		occupancyProvider: cfg.OccupancyProvider,
	}

	var err error

	dm.reservationCreatedTotal, err = NewCounter(
		cfg.Meter,
		"hotel_reservation_created_total",
		"Total number of reservations created",
		"{reservations}",
	)
	if err != nil {
		return nil, err
	}

	dm.reservationCancelledTotal, err = NewCounter(
		cfg.Meter,
		"hotel_reservation_cancelled_total",
		"Total number of reservations cancelled",
		"{reservations}",
	)
	if err != nil {
		return nil, err
	}

	dm.checkoutTotal, err = NewCounter(
		cfg.Meter,
		"hotel_checkout_total",
		"Total number of completed checkouts",
		"{checkouts}",
	)
	if err != nil {
		return nil, err
	}

	dm.folioPostingTotal, err = NewCounter(
		cfg.Meter,
		"hotel_folio_posting_total",
		"Total number of folio line items posted",
		"{postings}",
	)
	if err != nil {
		return nil, err
	}

	dm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"hotel_payment_total",
		"Total number of payments recorded",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	dm.paymentAmountTotal, err = NewCounter(
		cfg.Meter,
		"hotel_payment_amount_total",
		"Total payment amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	dm.invoiceRenderedTotal, err = NewCounter(
		cfg.Meter,
		"hotel_invoice_rendered_total",
		"Total number of invoice PDFs rendered",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	dm.invoiceRenderDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "hotel_invoice_render_duration_seconds",
		Description: "Invoice PDF rendering duration",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	dm.roomsOccupied, err = NewGauge(
		cfg.Meter,
		"hotel_rooms_occupied",
		"Number of rooms currently occupied by an active reservation",
		"{rooms}",
	)
	if err != nil {
		return nil, err
	}

	return dm, nil
}

// PostingKind labels the folio line item kind for metrics.
type PostingKind string

const (
	PostingKindService  PostingKind = "service"
	PostingKindFood     PostingKind = "food"
	PostingKindDiscount PostingKind = "discount"
)

// RecordReservationCreated records a reservation creation event.
func (dm *DeskMetrics) RecordReservationCreated(ctx context.Context, propertyID uuid.UUID) {
	dm.reservationCreatedTotal.Inc(ctx, AttrPropertyID.String(propertyID.String()))
}

// RecordReservationCancelled records a reservation cancellation event.
func (dm *DeskMetrics) RecordReservationCancelled(ctx context.Context, propertyID uuid.UUID) {
	dm.reservationCancelledTotal.Inc(ctx, AttrPropertyID.String(propertyID.String()))
}

// RecordCheckout records a completed checkout.
func (dm *DeskMetrics) RecordCheckout(ctx context.Context, propertyID uuid.UUID) {
	dm.checkoutTotal.Inc(ctx, AttrPropertyID.String(propertyID.String()))
}

// RecordFolioPosting records a folio line item being posted.
func (dm *DeskMetrics) RecordFolioPosting(ctx context.Context, propertyID uuid.UUID, kind PostingKind) {
	dm.folioPostingTotal.Inc(ctx,
		AttrPropertyID.String(propertyID.String()),
		AttrPostingKind.String(string(kind)),
	)
}

// RecordPayment records a payment with its amount. The amount counter uses
// cents so it stays integral.
func (dm *DeskMetrics) RecordPayment(ctx context.Context, propertyID uuid.UUID, method string, paymentType string, amount decimal.Decimal) {
	dm.paymentTotal.Inc(ctx,
		AttrPropertyID.String(propertyID.String()),
		AttrPaymentMethod.String(method),
		AttrPaymentType.String(paymentType),
	)

	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	dm.paymentAmountTotal.Add(ctx, cents,
		AttrPropertyID.String(propertyID.String()),
		AttrPaymentMethod.String(method),
	)
}

// RecordInvoiceRendered records a rendered invoice PDF and how long it took.
func (dm *DeskMetrics) RecordInvoiceRendered(ctx context.Context, propertyID uuid.UUID, d time.Duration) {
	dm.invoiceRenderedTotal.Inc(ctx, AttrPropertyID.String(propertyID.String()))
	dm.invoiceRenderDuration.RecordDuration(ctx, d, AttrPropertyID.String(propertyID.String()))
}

// RecordRoomsOccupied records the current occupied room count for a property.
func (dm *DeskMetrics) RecordRoomsOccupied(ctx context.Context, propertyID uuid.UUID, count int64) {
	dm.roomsOccupied.Record(ctx, count, AttrPropertyID.String(propertyID.String()))
}

// StartPeriodicCollection starts collecting occupancy gauges every interval.
// Non-blocking; use Stop() to stop collection.
func (dm *DeskMetrics) StartPeriodicCollection(ctx context.Context, properties PropertyProvider, interval time.Duration) {
	dm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go dm.runPeriodicCollection(ctx, properties, interval)
	})
}

func (dm *DeskMetrics) runPeriodicCollection(ctx context.Context, properties PropertyProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dm.collectOccupancy(ctx, properties)

	for {
		select {
		case <-dm.stopChan:
			dm.logger.Info("Stopping periodic desk metrics collection")
			return
		case <-ctx.Done():
			dm.logger.Info("Context cancelled, stopping periodic desk metrics collection")
			return
		case <-ticker.C:
			dm.collectOccupancy(ctx, properties)
		}
	}
}

func (dm *DeskMetrics) collectOccupancy(ctx context.Context, properties PropertyProvider) {
	if dm.occupancyProvider == nil {
		dm.logger.Debug("No occupancy provider configured, skipping occupancy collection")
		return
	}

	propertyIDs, err := properties.ActivePropertyIDs(ctx)
	if err != nil {
		dm.logger.Error("Failed to list properties for metrics collection", zap.Error(err))
		return
	}

	for _, propertyID := range propertyIDs {
		count, err := dm.occupancyProvider.OccupiedRoomCount(ctx, propertyID)
		if err != nil {
			dm.logger.Warn("Failed to get occupied room count",
				zap.String("property_id", propertyID.String()),
				zap.Error(err),
			)
			continue
		}
		dm.RecordRoomsOccupied(ctx, propertyID, count)
	}
}

// Stop stops the periodic collection.
func (dm *DeskMetrics) Stop() {
	dm.stopOnce.Do(func() {
		close(dm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewDeskMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
