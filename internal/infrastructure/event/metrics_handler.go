package event

import (
	"context"

	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/hoteldesk/backend/internal/infrastructure/telemetry"
)

// MetricsHandler feeds reservation lifecycle events into the desk metrics
// counters so the business gauges track what the API actually did.
type MetricsHandler struct {
	metrics *telemetry.DeskMetrics
}

// NewMetricsHandler creates a metrics handler over the given DeskMetrics
func NewMetricsHandler(metrics *telemetry.DeskMetrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Handle records the counter matching the event type
func (h *MetricsHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch evt.EventType() {
	case reservation.EventTypeReservationCreated:
		h.metrics.RecordReservationCreated(ctx, evt.PropertyID())
	case reservation.EventTypeReservationCancelled:
		h.metrics.RecordReservationCancelled(ctx, evt.PropertyID())
	case reservation.EventTypeReservationCheckedOut:
		h.metrics.RecordCheckout(ctx, evt.PropertyID())
	}
	return nil
}

// EventTypes limits delivery to the reservation lifecycle events
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		reservation.EventTypeReservationCreated,
		reservation.EventTypeReservationCancelled,
		reservation.EventTypeReservationCheckedOut,
	}
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
