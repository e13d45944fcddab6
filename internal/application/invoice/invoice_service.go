package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/identity"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	infra "github.com/hoteldesk/backend/internal/infrastructure/printing"
)

// InvoiceService renders reservation folios as PDF invoices
type InvoiceService struct {
	propertyRepo    identity.PropertyRepository
	reservationRepo reservation.ReservationRepository
	folioRepo       reservation.FolioRepository
	guestRepo       guest.GuestRepository
	templateEngine  *infra.TemplateEngine
	pdfRenderer     infra.PDFRenderer
	pdfStorage      infra.PDFStorage
	logger          *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	propertyRepo identity.PropertyRepository,
	reservationRepo reservation.ReservationRepository,
	folioRepo reservation.FolioRepository,
	guestRepo guest.GuestRepository,
	templateEngine *infra.TemplateEngine,
	pdfRenderer infra.PDFRenderer,
	pdfStorage infra.PDFStorage,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		propertyRepo:    propertyRepo,
		reservationRepo: reservationRepo,
		folioRepo:       folioRepo,
		guestRepo:       guestRepo,
		templateEngine:  templateEngine,
		pdfRenderer:     pdfRenderer,
		pdfStorage:      pdfStorage,
		logger:          logger,
	}
}

// PropertyBlock is the letterhead on the invoice
type PropertyBlock struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// GuestBlock identifies the guest being billed
type GuestBlock struct {
	Name           string
	DocumentType   string
	DocumentNumber string
	Phone          string
}

// ReservationBlock carries the stay details
type ReservationBlock struct {
	Code     string
	CheckIn  time.Time
	CheckOut time.Time
	Status   string
}

// RoomLine is one room row on the invoice
type RoomLine struct {
	Number string
	Type   string
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// ChargeLine is a service or food row on the invoice
type ChargeLine struct {
	Title    string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	PostedAt time.Time
}

// PaymentLine is a payment row on the invoice
type PaymentLine struct {
	Type   string
	Method string
	Amount decimal.Decimal
	PaidAt time.Time
	Remark string
}

// InvoiceData is the template model for the invoice document
type InvoiceData struct {
	Property    PropertyBlock
	Guest       GuestBlock
	Reservation ReservationBlock
	Rooms       []RoomLine
	Services    []ChargeLine
	Foods       []ChargeLine
	Payments    []PaymentLine
	Totals      reservation.FolioTotals
	GeneratedAt time.Time
}

// InvoiceResponse describes a generated invoice document
type InvoiceResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Code          string    `json:"code"`
	Key           string    `json:"key"`
	URL           string    `json:"url"`
	Size          int64     `json:"size"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// GenerateInvoice renders the reservation folio to a stored PDF and returns
// its location. Cancelled and checked-out reservations can still be invoiced.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, propertyID, reservationID uuid.UUID) (*InvoiceResponse, error) {
	data, res, err := s.buildInvoiceData(ctx, propertyID, reservationID)
	if err != nil {
		return nil, err
	}

	pdfData, generatedAt, err := s.renderPDF(ctx, data, res.Code)
	if err != nil {
		return nil, err
	}

	stored, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
		PropertyID:  propertyID,
		InvoiceID:   res.ID,
		PDFData:     pdfData,
		GeneratedAt: generatedAt,
	})
	if err != nil {
		s.logger.Error("failed to store invoice PDF",
			zap.Error(err),
			zap.String("reservation_code", res.Code))
		return nil, err
	}

	s.logger.Info("invoice generated",
		zap.String("reservation_code", res.Code),
		zap.String("key", stored.Key),
		zap.Int64("size", stored.Size))

	return &InvoiceResponse{
		ReservationID: res.ID,
		Code:          res.Code,
		Key:           stored.Key,
		URL:           stored.URL,
		Size:          stored.Size,
		GeneratedAt:   generatedAt,
	}, nil
}

// RenderInvoicePDF renders the invoice and returns the raw bytes without
// storing them, for direct download responses
func (s *InvoiceService) RenderInvoicePDF(ctx context.Context, propertyID, reservationID uuid.UUID) ([]byte, string, error) {
	data, res, err := s.buildInvoiceData(ctx, propertyID, reservationID)
	if err != nil {
		return nil, "", err
	}

	pdfData, _, err := s.renderPDF(ctx, data, res.Code)
	if err != nil {
		return nil, "", err
	}

	return pdfData, res.Code, nil
}

// GetInvoicePDF fetches a previously stored invoice document
func (s *InvoiceService) GetInvoicePDF(ctx context.Context, key string) ([]byte, error) {
	return s.pdfStorage.Retrieve(ctx, key)
}

func (s *InvoiceService) buildInvoiceData(ctx context.Context, propertyID, reservationID uuid.UUID) (*InvoiceData, *reservation.Reservation, error) {
	res, err := s.reservationRepo.FindByIDForProperty(ctx, propertyID, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if res == nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Reservation not found")
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	if property == nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	guestBlock := GuestBlock{Name: res.GuestName}
	g, err := s.guestRepo.FindByIDForProperty(ctx, propertyID, res.GuestID)
	if err != nil {
		return nil, nil, err
	}
	if g != nil {
		primary := g.PrimaryDocument()
		guestBlock = GuestBlock{
			Name:           g.FullName,
			DocumentType:   string(primary.Type),
			DocumentNumber: primary.Value,
			Phone:          g.Phone,
		}
	}

	services, err := s.folioRepo.FindServiceCharges(ctx, res.ID)
	if err != nil {
		return nil, nil, err
	}
	foods, err := s.folioRepo.FindFoodCharges(ctx, res.ID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.folioRepo.FindPayments(ctx, res.ID)
	if err != nil {
		return nil, nil, err
	}
	discounts, err := s.folioRepo.FindDiscounts(ctx, res.ID)
	if err != nil {
		return nil, nil, err
	}

	totals := reservation.ComputeFolioTotals(res.CheckIn, res.CheckOut, res.Rooms, services, foods, payments, discounts)
	nights := decimal.NewFromInt(int64(totals.Nights))

	data := &InvoiceData{
		Property: PropertyBlock{
			Name:    property.Name,
			Address: property.Address,
			Phone:   property.Phone,
			Email:   property.Email,
		},
		Guest: guestBlock,
		Reservation: ReservationBlock{
			Code:     res.Code,
			CheckIn:  res.CheckIn,
			CheckOut: res.CheckOut,
			Status:   string(res.Status),
		},
		Rooms:       make([]RoomLine, len(res.Rooms)),
		Services:    make([]ChargeLine, len(services)),
		Foods:       make([]ChargeLine, len(foods)),
		Payments:    make([]PaymentLine, len(payments)),
		Totals:      totals,
		GeneratedAt: time.Now(),
	}

	for i, line := range res.Rooms {
		data.Rooms[i] = RoomLine{
			Number: line.RoomNumber,
			Type:   line.RoomType,
			Rate:   line.NightlyRate,
			Amount: line.NightlyRate.Mul(nights),
		}
	}
	for i, row := range services {
		data.Services[i] = ChargeLine{Title: row.Title, Quantity: row.Quantity, Rate: row.Rate, Amount: row.Amount, PostedAt: row.PostedAt}
	}
	for i, row := range foods {
		data.Foods[i] = ChargeLine{Title: row.Title, Quantity: row.Quantity, Rate: row.Rate, Amount: row.Amount, PostedAt: row.PostedAt}
	}
	for i, row := range payments {
		data.Payments[i] = PaymentLine{Type: string(row.Type), Method: string(row.Method), Amount: row.Amount, PaidAt: row.PaidAt, Remark: row.Remark}
	}

	return data, res, nil
}

func (s *InvoiceService) renderPDF(ctx context.Context, data *InvoiceData, code string) ([]byte, time.Time, error) {
	templateHTML, err := infra.InvoiceTemplate()
	if err != nil {
		return nil, time.Time{}, err
	}

	html, err := s.templateEngine.Render(ctx, "invoice", templateHTML, data)
	if err != nil {
		s.logger.Error("failed to render invoice template",
			zap.Error(err),
			zap.String("reservation_code", code))
		return nil, time.Time{}, err
	}

	result, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:    html,
		Margins: infra.DefaultMargins(),
		Title:   "Invoice " + code,
	})
	if err != nil {
		s.logger.Error("failed to render invoice PDF",
			zap.Error(err),
			zap.String("reservation_code", code))
		return nil, time.Time{}, err
	}

	return result.PDFData, data.GeneratedAt, nil
}
