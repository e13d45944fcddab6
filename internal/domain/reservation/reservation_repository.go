package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// ReservationRepository defines the interface for reservation persistence.
// Reservations are never physically deleted; cancellation is a state change.
type ReservationRepository interface {
	// FindByID finds a reservation by its ID, room lines included
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindByIDForProperty finds a reservation by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*Reservation, error)

	// FindByCode finds a reservation by its code within a property
	FindByCode(ctx context.Context, propertyID uuid.UUID, code string) (*Reservation, error)

	// FindAllForProperty finds all reservations for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Reservation, error)

	// FindByGuest finds reservations for a guest within a property
	FindByGuest(ctx context.Context, propertyID, guestID uuid.UUID, filter shared.Filter) ([]Reservation, error)

	// FindByStatus finds reservations by status within a property
	FindByStatus(ctx context.Context, propertyID uuid.UUID, status ReservationStatus, filter shared.Filter) ([]Reservation, error)

	// FindOverlapping finds non-cancelled reservations overlapping [from, to).
	// Overlap means check_in < to AND check_out > from.
	FindOverlapping(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]Reservation, error)

	// FindInRange finds reservations whose stay intersects [from, to)
	FindInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]Reservation, error)

	// Save creates or updates a reservation and its room lines
	Save(ctx context.Context, r *Reservation) error

	// SaveWithLock saves a reservation with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Reservation) error

	// CountForProperty counts reservations for a property
	CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error)

	// GenerateReservationCode generates the next RSV-YYYYMM-NNNNN code
	GenerateReservationCode(ctx context.Context, propertyID uuid.UUID) (string, error)
}

// FolioRepository defines the interface for the folio row tables. Each row
// kind lives in its own table and is CRUD-ed independently of the
// reservation aggregate.
type FolioRepository interface {
	// FindServiceCharges lists service postings for a reservation
	FindServiceCharges(ctx context.Context, reservationID uuid.UUID) ([]ServiceCharge, error)

	// FindServiceChargeByID finds a single service posting
	FindServiceChargeByID(ctx context.Context, reservationID, id uuid.UUID) (*ServiceCharge, error)

	// SaveServiceCharge creates or updates a service posting
	SaveServiceCharge(ctx context.Context, row *ServiceCharge) error

	// DeleteServiceCharge deletes a service posting
	DeleteServiceCharge(ctx context.Context, reservationID, id uuid.UUID) error

	// FindFoodCharges lists food postings for a reservation
	FindFoodCharges(ctx context.Context, reservationID uuid.UUID) ([]FoodCharge, error)

	// FindFoodChargeByID finds a single food posting
	FindFoodChargeByID(ctx context.Context, reservationID, id uuid.UUID) (*FoodCharge, error)

	// SaveFoodCharge creates or updates a food posting
	SaveFoodCharge(ctx context.Context, row *FoodCharge) error

	// DeleteFoodCharge deletes a food posting
	DeleteFoodCharge(ctx context.Context, reservationID, id uuid.UUID) error

	// FindPayments lists payments for a reservation
	FindPayments(ctx context.Context, reservationID uuid.UUID) ([]Payment, error)

	// FindPaymentByID finds a single payment
	FindPaymentByID(ctx context.Context, reservationID, id uuid.UUID) (*Payment, error)

	// FindPaymentsInRange lists payments for a property with paid_at in [from, to)
	FindPaymentsInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]Payment, error)

	// SavePayment creates or updates a payment
	SavePayment(ctx context.Context, row *Payment) error

	// DeletePayment deletes a payment
	DeletePayment(ctx context.Context, reservationID, id uuid.UUID) error

	// FindDiscounts lists discounts for a reservation
	FindDiscounts(ctx context.Context, reservationID uuid.UUID) ([]Discount, error)

	// FindDiscountByID finds a single discount
	FindDiscountByID(ctx context.Context, reservationID, id uuid.UUID) (*Discount, error)

	// SaveDiscount creates or updates a discount
	SaveDiscount(ctx context.Context, row *Discount) error

	// DeleteDiscount deletes a discount
	DeleteDiscount(ctx context.Context, reservationID, id uuid.UUID) error
}
