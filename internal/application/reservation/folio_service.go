package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FolioService provides application-level folio ledger operations. Each row
// kind is CRUD-ed independently; the reservation only gates whether postings
// are still accepted.
type FolioService struct {
	reservationRepo reservation.ReservationRepository
	folioRepo       reservation.FolioRepository
}

// NewFolioService creates a new FolioService
func NewFolioService(
	reservationRepo reservation.ReservationRepository,
	folioRepo reservation.FolioRepository,
) *FolioService {
	return &FolioService{
		reservationRepo: reservationRepo,
		folioRepo:       folioRepo,
	}
}

// ChargeRowResponse represents a service or food posting in API responses
type ChargeRowResponse struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	PostedAt time.Time       `json:"posted_at"`
}

// PaymentRowResponse represents a payment in API responses
type PaymentRowResponse struct {
	ID     uuid.UUID       `json:"id"`
	Type   string          `json:"type"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	PaidAt time.Time       `json:"paid_at"`
	Remark string          `json:"remark,omitempty"`
}

// DiscountRowResponse represents a discount in API responses
type DiscountRowResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	GrantedAt time.Time       `json:"granted_at"`
}

// FolioResponse is the full ledger of a reservation plus derived totals
type FolioResponse struct {
	ReservationID uuid.UUID               `json:"reservation_id"`
	Services      []ChargeRowResponse     `json:"services"`
	Foods         []ChargeRowResponse     `json:"foods"`
	Payments      []PaymentRowResponse    `json:"payments"`
	Discounts     []DiscountRowResponse   `json:"discounts"`
	Totals        reservation.FolioTotals `json:"totals"`
}

// SettlementPrefillResponse carries the amount still owed, used to prefill
// the settlement form at checkout
type SettlementPrefillResponse struct {
	ReservationID uuid.UUID       `json:"reservation_id"`
	Balance       decimal.Decimal `json:"balance"`
}

// SaveChargeRequest represents a request to add or update a charge row
type SaveChargeRequest struct {
	Title    string          `json:"title" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	PostedAt *time.Time      `json:"posted_at"`
}

// SavePaymentRequest represents a request to add or update a payment
type SavePaymentRequest struct {
	Type   string          `json:"type" binding:"required"`
	Method string          `json:"method" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	PaidAt *time.Time      `json:"paid_at"`
	Remark string          `json:"remark"`
}

// SaveDiscountRequest represents a request to add or update a discount
type SaveDiscountRequest struct {
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	GrantedAt *time.Time      `json:"granted_at"`
}

// GetFolio returns every ledger row for a reservation plus derived totals
func (s *FolioService) GetFolio(ctx context.Context, propertyID, reservationID uuid.UUID) (*FolioResponse, error) {
	r, err := s.findReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}
	return s.buildFolio(ctx, r)
}

// SettlementPrefill returns the current balance for the settlement form
func (s *FolioService) SettlementPrefill(ctx context.Context, propertyID, reservationID uuid.UUID) (*SettlementPrefillResponse, error) {
	r, err := s.findReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	folio, err := s.buildFolio(ctx, r)
	if err != nil {
		return nil, err
	}

	return &SettlementPrefillResponse{
		ReservationID: r.ID,
		Balance:       folio.Totals.Balance,
	}, nil
}

// ===================== Service charges =====================

// AddServiceCharge posts a service row to the folio
func (s *FolioService) AddServiceCharge(ctx context.Context, propertyID, reservationID uuid.UUID, req SaveChargeRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := reservation.NewServiceCharge(propertyID, r.ID, req.Title, req.Quantity, req.Rate, postedAtOrNow(req.PostedAt))
	if err != nil {
		return nil, err
	}
	if err := s.folioRepo.SaveServiceCharge(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// UpdateServiceCharge updates a service row
func (s *FolioService) UpdateServiceCharge(ctx context.Context, propertyID, reservationID, rowID uuid.UUID, req SaveChargeRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := s.folioRepo.FindServiceChargeByID(ctx, r.ID, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Service charge not found")
	}

	if err := row.Update(req.Title, req.Quantity, req.Rate); err != nil {
		return nil, err
	}
	if req.PostedAt != nil {
		row.PostedAt = *req.PostedAt
	}
	if err := s.folioRepo.SaveServiceCharge(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// DeleteServiceCharge removes a service row
func (s *FolioService) DeleteServiceCharge(ctx context.Context, propertyID, reservationID, rowID uuid.UUID) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.folioRepo.DeleteServiceCharge(ctx, r.ID, rowID); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// ===================== Food charges =====================

// AddFoodCharge posts a food row to the folio
func (s *FolioService) AddFoodCharge(ctx context.Context, propertyID, reservationID uuid.UUID, req SaveChargeRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := reservation.NewFoodCharge(propertyID, r.ID, req.Title, req.Quantity, req.Rate, postedAtOrNow(req.PostedAt))
	if err != nil {
		return nil, err
	}
	if err := s.folioRepo.SaveFoodCharge(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// UpdateFoodCharge updates a food row
func (s *FolioService) UpdateFoodCharge(ctx context.Context, propertyID, reservationID, rowID uuid.UUID, req SaveChargeRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := s.folioRepo.FindFoodChargeByID(ctx, r.ID, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Food charge not found")
	}

	if err := row.Update(req.Title, req.Quantity, req.Rate); err != nil {
		return nil, err
	}
	if req.PostedAt != nil {
		row.PostedAt = *req.PostedAt
	}
	if err := s.folioRepo.SaveFoodCharge(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// DeleteFoodCharge removes a food row
func (s *FolioService) DeleteFoodCharge(ctx context.Context, propertyID, reservationID, rowID uuid.UUID) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.folioRepo.DeleteFoodCharge(ctx, r.ID, rowID); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// ===================== Payments =====================

// AddPayment posts a payment to the folio
func (s *FolioService) AddPayment(ctx context.Context, propertyID, reservationID uuid.UUID, req SavePaymentRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := reservation.NewPayment(propertyID, r.ID,
		reservation.PaymentType(req.Type), reservation.PaymentMethod(req.Method), req.Amount, postedAtOrNow(req.PaidAt))
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		row.Remark = req.Remark
	}
	if err := s.folioRepo.SavePayment(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// UpdatePayment updates a payment row
func (s *FolioService) UpdatePayment(ctx context.Context, propertyID, reservationID, rowID uuid.UUID, req SavePaymentRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := s.folioRepo.FindPaymentByID(ctx, r.ID, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}

	if err := row.Update(reservation.PaymentType(req.Type), reservation.PaymentMethod(req.Method), req.Amount, postedAtOrNow(req.PaidAt)); err != nil {
		return nil, err
	}
	row.Remark = req.Remark
	if err := s.folioRepo.SavePayment(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// DeletePayment removes a payment row
func (s *FolioService) DeletePayment(ctx context.Context, propertyID, reservationID, rowID uuid.UUID) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.folioRepo.DeletePayment(ctx, r.ID, rowID); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// ===================== Discounts =====================

// AddDiscount posts a discount to the folio
func (s *FolioService) AddDiscount(ctx context.Context, propertyID, reservationID uuid.UUID, req SaveDiscountRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := reservation.NewDiscount(propertyID, r.ID, req.Name, req.Amount, postedAtOrNow(req.GrantedAt))
	if err != nil {
		return nil, err
	}
	if err := s.folioRepo.SaveDiscount(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// UpdateDiscount updates a discount row
func (s *FolioService) UpdateDiscount(ctx context.Context, propertyID, reservationID, rowID uuid.UUID, req SaveDiscountRequest) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	row, err := s.folioRepo.FindDiscountByID(ctx, r.ID, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Discount not found")
	}

	if err := row.Update(req.Name, req.Amount, postedAtOrNow(req.GrantedAt)); err != nil {
		return nil, err
	}
	if err := s.folioRepo.SaveDiscount(ctx, row); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// DeleteDiscount removes a discount row
func (s *FolioService) DeleteDiscount(ctx context.Context, propertyID, reservationID, rowID uuid.UUID) (*FolioResponse, error) {
	r, err := s.postableReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.folioRepo.DeleteDiscount(ctx, r.ID, rowID); err != nil {
		return nil, err
	}

	return s.buildFolio(ctx, r)
}

// ===================== Helpers =====================

func (s *FolioService) findReservation(ctx context.Context, propertyID, reservationID uuid.UUID) (*reservation.Reservation, error) {
	r, err := s.reservationRepo.FindByIDForProperty(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Reservation not found")
	}
	return r, nil
}

// postableReservation loads the reservation and refuses mutations once it is
// cancelled or checked out
func (s *FolioService) postableReservation(ctx context.Context, propertyID, reservationID uuid.UUID) (*reservation.Reservation, error) {
	r, err := s.findReservation(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}
	if !r.AcceptsPostings() {
		return nil, shared.NewDomainError("INVALID_STATE", "Reservation no longer accepts folio changes")
	}
	return r, nil
}

// buildFolio refetches every row after a mutation; totals are always derived
// from what the store returned, never merged locally
func (s *FolioService) buildFolio(ctx context.Context, r *reservation.Reservation) (*FolioResponse, error) {
	services, err := s.folioRepo.FindServiceCharges(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	foods, err := s.folioRepo.FindFoodCharges(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.folioRepo.FindPayments(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	discounts, err := s.folioRepo.FindDiscounts(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	totals := reservation.ComputeFolioTotals(r.CheckIn, r.CheckOut, r.Rooms, services, foods, payments, discounts)

	resp := &FolioResponse{
		ReservationID: r.ID,
		Services:      make([]ChargeRowResponse, len(services)),
		Foods:         make([]ChargeRowResponse, len(foods)),
		Payments:      make([]PaymentRowResponse, len(payments)),
		Discounts:     make([]DiscountRowResponse, len(discounts)),
		Totals:        totals,
	}
	for i, row := range services {
		resp.Services[i] = ChargeRowResponse{ID: row.ID, Title: row.Title, Quantity: row.Quantity, Rate: row.Rate, Amount: row.Amount, PostedAt: row.PostedAt}
	}
	for i, row := range foods {
		resp.Foods[i] = ChargeRowResponse{ID: row.ID, Title: row.Title, Quantity: row.Quantity, Rate: row.Rate, Amount: row.Amount, PostedAt: row.PostedAt}
	}
	for i, row := range payments {
		resp.Payments[i] = PaymentRowResponse{ID: row.ID, Type: string(row.Type), Method: string(row.Method), Amount: row.Amount, PaidAt: row.PaidAt, Remark: row.Remark}
	}
	for i, row := range discounts {
		resp.Discounts[i] = DiscountRowResponse{ID: row.ID, Name: row.Name, Amount: row.Amount, GrantedAt: row.GrantedAt}
	}

	return resp, nil
}

func postedAtOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}
