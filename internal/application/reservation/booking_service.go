package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/room"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BookingService provides application-level reservation operations
type BookingService struct {
	reservationRepo reservation.ReservationRepository
	folioRepo       reservation.FolioRepository
	guestRepo       guest.GuestRepository
	roomRepo        room.RoomRepository
	events          shared.EventPublisher
}

// NewBookingService creates a new BookingService
func NewBookingService(
	reservationRepo reservation.ReservationRepository,
	folioRepo reservation.FolioRepository,
	guestRepo guest.GuestRepository,
	roomRepo room.RoomRepository,
) *BookingService {
	return &BookingService{
		reservationRepo: reservationRepo,
		folioRepo:       folioRepo,
		guestRepo:       guestRepo,
		roomRepo:        roomRepo,
	}
}

// WithEventPublisher wires a domain event publisher. Without one the service
// runs normally and recorded events are simply discarded.
func (s *BookingService) WithEventPublisher(p shared.EventPublisher) *BookingService {
	s.events = p
	return s
}

// ReservationRoomResponse represents a room line in API responses
type ReservationRoomResponse struct {
	ID          uuid.UUID       `json:"id"`
	RoomID      uuid.UUID       `json:"room_id"`
	RoomNumber  string          `json:"room_number"`
	RoomType    string          `json:"room_type"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID           uuid.UUID                 `json:"id"`
	PropertyID   uuid.UUID                 `json:"property_id"`
	Code         string                    `json:"code"`
	GuestID      uuid.UUID                 `json:"guest_id"`
	GuestName    string                    `json:"guest_name"`
	CheckIn      time.Time                 `json:"check_in"`
	CheckOut     time.Time                 `json:"check_out"`
	Status       string                    `json:"status"`
	Rooms        []ReservationRoomResponse `json:"rooms"`
	Notes        string                    `json:"notes,omitempty"`
	CancelReason string                    `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time                `json:"cancelled_at,omitempty"`
	CheckedOutAt *time.Time                `json:"checked_out_at,omitempty"`
	Totals       *reservation.FolioTotals  `json:"totals,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	Version      int                       `json:"version"`
}

// RoomSelection picks a room for a booking, optionally overriding the list
// rate with an ad-hoc offer price
type RoomSelection struct {
	RoomID      uuid.UUID        `json:"room_id" binding:"required"`
	NightlyRate *decimal.Decimal `json:"nightly_rate"`
}

// GuestDocumentInput carries one identity document of a booking guest
type GuestDocumentInput struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// BookingGuestInfo carries the guest block of a booking request
type BookingGuestInfo struct {
	FullName    string               `json:"full_name" binding:"required"`
	Phone       string               `json:"phone"`
	Email       string               `json:"email"`
	Address     string               `json:"address"`
	Nationality string               `json:"nationality"`
	Documents   []GuestDocumentInput `json:"documents" binding:"required,min=1,dive"`
}

// CreateReservationRequest represents a request to book a stay
type CreateReservationRequest struct {
	CheckIn  time.Time        `json:"check_in" binding:"required"`
	CheckOut time.Time        `json:"check_out" binding:"required"`
	Rooms    []RoomSelection  `json:"rooms" binding:"required,min=1"`
	Guest    BookingGuestInfo `json:"guest" binding:"required"`
	Notes    string           `json:"notes"`
}

// UpdateStayRequest represents a request to change reservation dates
type UpdateStayRequest struct {
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required"`
	Notes    *string   `json:"notes"`
}

// CancelReservationRequest represents a cancellation request
type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReservationListFilter defines filtering options for reservation list queries
type ReservationListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status"`
	GuestID  *uuid.UUID `form:"guest_id"`
	FromDate *time.Time `form:"from_date"`
	ToDate   *time.Time `form:"to_date"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// AvailableRoomsQuery defines the availability search facets
type AvailableRoomsQuery struct {
	From        time.Time `form:"from" binding:"required"`
	To          time.Time `form:"to" binding:"required"`
	MinCapacity int       `form:"min_capacity"`
	RoomType    string    `form:"room_type"`
}

// CreateReservation books a stay. The guest is looked up by document value
// and reused when found; each selected room is snapshotted with its number,
// type and a nightly rate that defaults to the room's list rate.
func (s *BookingService) CreateReservation(ctx context.Context, propertyID uuid.UUID, req CreateReservationRequest) (*ReservationResponse, error) {
	g, err := s.resolveGuest(ctx, propertyID, req.Guest)
	if err != nil {
		return nil, err
	}

	code, err := s.reservationRepo.GenerateReservationCode(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	r, err := reservation.NewReservation(propertyID, code, g.ID, g.FullName, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		r.SetNotes(req.Notes)
	}

	occupied, err := s.occupiedSet(ctx, propertyID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	for _, sel := range req.Rooms {
		rm, err := s.roomRepo.FindByIDForProperty(ctx, propertyID, sel.RoomID)
		if err != nil {
			return nil, err
		}
		if rm == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
		}
		if !rm.IsActive() {
			return nil, shared.ErrRoomUnavailable
		}
		if occupied[rm.ID] {
			return nil, shared.ErrRoomUnavailable
		}

		rate := rm.NightlyRate
		if sel.NightlyRate != nil {
			rate = *sel.NightlyRate
		}
		if _, err := r.AddRoom(rm.ID, rm.Number, string(rm.Type), rate); err != nil {
			return nil, err
		}
	}

	if err := s.reservationRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return s.toReservationResponse(ctx, r, true)
}

// GetReservationByID gets a reservation with its room lines and derived totals
func (s *BookingService) GetReservationByID(ctx context.Context, propertyID, id uuid.UUID) (*ReservationResponse, error) {
	r, err := s.findReservation(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	return s.toReservationResponse(ctx, r, true)
}

// ListReservations lists reservations with filtering
func (s *BookingService) ListReservations(ctx context.Context, propertyID uuid.UUID, filter ReservationListFilter) ([]ReservationResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.FromDate != nil {
		domainFilter.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		domainFilter.Filters["to_date"] = *filter.ToDate
	}

	var reservations []reservation.Reservation
	var err error
	if filter.GuestID != nil {
		reservations, err = s.reservationRepo.FindByGuest(ctx, propertyID, *filter.GuestID, domainFilter)
	} else {
		reservations, err = s.reservationRepo.FindAllForProperty(ctx, propertyID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.reservationRepo.CountForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		// Totals omitted on list rows; the detail endpoint derives them
		resp := toReservationResponseBare(&reservations[i])
		responses[i] = *resp
	}

	return responses, total, nil
}

// UpdateStay changes the reservation dates
func (s *BookingService) UpdateStay(ctx context.Context, propertyID, id uuid.UUID, req UpdateStayRequest) (*ReservationResponse, error) {
	r, err := s.findReservation(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}

	if err := r.UpdateStay(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		r.SetNotes(*req.Notes)
	}

	if err := s.reservationRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return s.toReservationResponse(ctx, r, true)
}

// CancelReservation cancels a reservation with a reason. Folio rows are kept.
func (s *BookingService) CancelReservation(ctx context.Context, propertyID, id uuid.UUID, req CancelReservationRequest) (*ReservationResponse, error) {
	r, err := s.findReservation(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}

	if err := r.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return s.toReservationResponse(ctx, r, true)
}

// CheckOutReservation closes a reservation after the guest departs
func (s *BookingService) CheckOutReservation(ctx context.Context, propertyID, id uuid.UUID) (*ReservationResponse, error) {
	r, err := s.findReservation(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}

	if err := r.Complete(); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return s.toReservationResponse(ctx, r, true)
}

// AvailableRooms returns active rooms free for the whole of [from, to),
// optionally narrowed by capacity and room type. A zero or negative width
// range returns an empty result without touching the store.
func (s *BookingService) AvailableRooms(ctx context.Context, propertyID uuid.UUID, query AvailableRoomsQuery) ([]AvailableRoomResponse, error) {
	if !query.To.After(query.From) {
		return []AvailableRoomResponse{}, nil
	}

	occupied, err := s.occupiedSet(ctx, propertyID, query.From, query.To)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.FindActive(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	available := make([]AvailableRoomResponse, 0, len(rooms))
	for _, rm := range rooms {
		if occupied[rm.ID] {
			continue
		}
		if query.MinCapacity > 0 && rm.Capacity < query.MinCapacity {
			continue
		}
		if query.RoomType != "" && string(rm.Type) != query.RoomType {
			continue
		}
		available = append(available, AvailableRoomResponse{
			ID:          rm.ID,
			Number:      rm.Number,
			Type:        string(rm.Type),
			Floor:       rm.Floor,
			Capacity:    rm.Capacity,
			NightlyRate: rm.NightlyRate,
		})
	}

	return available, nil
}

// AvailableRoomResponse represents a bookable room in availability results
type AvailableRoomResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}

func (s *BookingService) resolveGuest(ctx context.Context, propertyID uuid.UUID, info BookingGuestInfo) (*guest.Guest, error) {
	// A returning guest is matched by any of the documents they present.
	for _, doc := range info.Documents {
		existing, err := s.guestRepo.FindByDocument(ctx, propertyID, doc.Value)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	docs := make([]guest.Document, len(info.Documents))
	for i, doc := range info.Documents {
		docs[i] = guest.Document{Type: guest.DocumentType(doc.Type), Value: doc.Value}
	}
	g, err := guest.NewGuest(propertyID, info.FullName, docs)
	if err != nil {
		return nil, err
	}
	if err := g.SetContact(info.Phone, info.Email, info.Address); err != nil {
		return nil, err
	}
	if info.Nationality != "" {
		if err := g.Update(info.FullName, info.Nationality); err != nil {
			return nil, err
		}
	}

	if err := s.guestRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, g)
	return g, nil
}

func (s *BookingService) occupiedSet(ctx context.Context, propertyID uuid.UUID, from, to time.Time) (map[uuid.UUID]bool, error) {
	ids, err := s.roomRepo.FindOccupiedRoomIDs(ctx, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	occupied := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		occupied[id] = true
	}
	return occupied, nil
}

func (s *BookingService) findReservation(ctx context.Context, propertyID, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := s.reservationRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Reservation not found")
	}
	return r, nil
}

func (s *BookingService) toReservationResponse(ctx context.Context, r *reservation.Reservation, withTotals bool) (*ReservationResponse, error) {
	resp := toReservationResponseBare(r)

	if withTotals {
		totals, err := s.computeTotals(ctx, r)
		if err != nil {
			return nil, err
		}
		resp.Totals = totals
	}

	return resp, nil
}

func (s *BookingService) computeTotals(ctx context.Context, r *reservation.Reservation) (*reservation.FolioTotals, error) {
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
	return &totals, nil
}

func toReservationResponseBare(r *reservation.Reservation) *ReservationResponse {
	rooms := make([]ReservationRoomResponse, len(r.Rooms))
	for i, line := range r.Rooms {
		rooms[i] = ReservationRoomResponse{
			ID:          line.ID,
			RoomID:      line.RoomID,
			RoomNumber:  line.RoomNumber,
			RoomType:    line.RoomType,
			NightlyRate: line.NightlyRate,
		}
	}

	return &ReservationResponse{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		Code:         r.Code,
		GuestID:      r.GuestID,
		GuestName:    r.GuestName,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Status:       string(r.Status),
		Rooms:        rooms,
		Notes:        r.Notes,
		CancelReason: r.CancelReason,
		CancelledAt:  r.CancelledAt,
		CheckedOutAt: r.CheckedOutAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Version:      r.Version,
	}
}
