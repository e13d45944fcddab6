package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/finance"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/shopspring/decimal"
)

// ReportService derives the reporting views from folio payments, expense
// records and reservations. Nothing here is stored; every report is computed
// from the rows at request time.
type ReportService struct {
	reservationRepo reservation.ReservationRepository
	folioRepo       reservation.FolioRepository
	expenseRepo     finance.ExpenseRecordRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	reservationRepo reservation.ReservationRepository,
	folioRepo reservation.FolioRepository,
	expenseRepo finance.ExpenseRecordRepository,
) *ReportService {
	return &ReportService{
		reservationRepo: reservationRepo,
		folioRepo:       folioRepo,
		expenseRepo:     expenseRepo,
	}
}

// DateRange bounds a report query to [From, To)
type DateRange struct {
	From time.Time `form:"from" binding:"required"`
	To   time.Time `form:"to" binding:"required"`
}

// PaymentReportRow is one collected payment in the payments report
type PaymentReportRow struct {
	ID              uuid.UUID       `json:"id"`
	ReservationID   uuid.UUID       `json:"reservation_id"`
	ReservationCode string          `json:"reservation_code"`
	GuestName       string          `json:"guest_name"`
	Type            string          `json:"type"`
	Method          string          `json:"method"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          time.Time       `json:"paid_at"`
	Remark          string          `json:"remark,omitempty"`
}

// PaymentsReportResponse is the payments report for a date range
type PaymentsReportResponse struct {
	From  time.Time          `json:"from"`
	To    time.Time          `json:"to"`
	Rows  []PaymentReportRow `json:"rows"`
	Total decimal.Decimal    `json:"total"`
}

// ExpenseReportRow is one expense in the expenses report
type ExpenseReportRow struct {
	ID            uuid.UUID       `json:"id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	IncurredAt    time.Time       `json:"incurred_at"`
	PaymentMethod string          `json:"payment_method"`
}

// ExpensesReportResponse is the expenses report for a date range
type ExpensesReportResponse struct {
	From  time.Time          `json:"from"`
	To    time.Time          `json:"to"`
	Rows  []ExpenseReportRow `json:"rows"`
	Total decimal.Decimal    `json:"total"`
}

// LedgerRow is one entry in the merged ledger. Payments carry positive
// amounts, expenses negative; RunningTotal accumulates in date order.
type LedgerRow struct {
	Date         time.Time       `json:"date"`
	Kind         string          `json:"kind"`
	Reference    string          `json:"reference"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	RunningTotal decimal.Decimal `json:"running_total"`
}

// LedgerResponse is the merged payments/expenses ledger for a date range
type LedgerResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Rows         []LedgerRow     `json:"rows"`
	TotalIn      decimal.Decimal `json:"total_in"`
	TotalOut     decimal.Decimal `json:"total_out"`
	ClosingTotal decimal.Decimal `json:"closing_total"`
}

// SummaryResponse is the period summary: revenue split, cash position,
// expense breakdown and occupancy
type SummaryResponse struct {
	From               time.Time             `json:"from"`
	To                 time.Time             `json:"to"`
	RoomRevenue        decimal.Decimal       `json:"room_revenue"`
	OtherRevenue       decimal.Decimal       `json:"other_revenue"`
	DiscountsGranted   decimal.Decimal       `json:"discounts_granted"`
	Collected          decimal.Decimal       `json:"collected"`
	Outstanding        decimal.Decimal       `json:"outstanding"`
	Expenses           decimal.Decimal       `json:"expenses"`
	ExpensesByCategory []finance.CategorySum `json:"expenses_by_category"`
	Net                decimal.Decimal       `json:"net"`
	ReservationCount   int                   `json:"reservation_count"`
	NightsSold         int                   `json:"nights_sold"`
}

// PaymentsReport lists payments collected in [from, to) with their total
func (s *ReportService) PaymentsReport(ctx context.Context, propertyID uuid.UUID, r DateRange) (*PaymentsReportResponse, error) {
	rows, total, err := s.paymentRows(ctx, propertyID, r)
	if err != nil {
		return nil, err
	}
	return &PaymentsReportResponse{From: r.From, To: r.To, Rows: rows, Total: total}, nil
}

// ExpensesReport lists expenses incurred in [from, to) with their total
func (s *ReportService) ExpensesReport(ctx context.Context, propertyID uuid.UUID, r DateRange) (*ExpensesReportResponse, error) {
	rows, total, err := s.expenseRows(ctx, propertyID, r)
	if err != nil {
		return nil, err
	}
	return &ExpensesReportResponse{From: r.From, To: r.To, Rows: rows, Total: total}, nil
}

// Ledger merges payments and expenses into one date-ordered list with a
// running total
func (s *ReportService) Ledger(ctx context.Context, propertyID uuid.UUID, r DateRange) (*LedgerResponse, error) {
	payments, totalIn, err := s.paymentRows(ctx, propertyID, r)
	if err != nil {
		return nil, err
	}
	expenses, totalOut, err := s.expenseRows(ctx, propertyID, r)
	if err != nil {
		return nil, err
	}

	rows := make([]LedgerRow, 0, len(payments)+len(expenses))
	for _, p := range payments {
		rows = append(rows, LedgerRow{
			Date:        p.PaidAt,
			Kind:        "payment",
			Reference:   p.ReservationCode,
			Description: p.GuestName,
			Amount:      p.Amount,
		})
	}
	for _, e := range expenses {
		rows = append(rows, LedgerRow{
			Date:        e.IncurredAt,
			Kind:        "expense",
			Reference:   e.ExpenseNumber,
			Description: e.Description,
			Amount:      e.Amount.Neg(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].Amount)
		rows[i].RunningTotal = running
	}

	return &LedgerResponse{
		From:         r.From,
		To:           r.To,
		Rows:         rows,
		TotalIn:      totalIn,
		TotalOut:     totalOut,
		ClosingTotal: running,
	}, nil
}

// Summary computes the period summary. Revenue and outstanding come from the
// non-cancelled reservations whose stay intersects the range; collected and
// expenses come from the dated rows themselves.
func (s *ReportService) Summary(ctx context.Context, propertyID uuid.UUID, r DateRange) (*SummaryResponse, error) {
	reservations, err := s.reservationRepo.FindInRange(ctx, propertyID, r.From, r.To)
	if err != nil {
		return nil, err
	}

	resp := &SummaryResponse{
		From:             r.From,
		To:               r.To,
		RoomRevenue:      decimal.Zero,
		OtherRevenue:     decimal.Zero,
		DiscountsGranted: decimal.Zero,
		Outstanding:      decimal.Zero,
	}

	for i := range reservations {
		res := &reservations[i]
		if res.Status == reservation.ReservationStatusCancelled {
			continue
		}

		totals, err := s.reservationTotals(ctx, res)
		if err != nil {
			return nil, err
		}

		resp.RoomRevenue = resp.RoomRevenue.Add(totals.RoomCharges)
		resp.OtherRevenue = resp.OtherRevenue.Add(totals.OtherCharges)
		resp.DiscountsGranted = resp.DiscountsGranted.Add(totals.DiscountTotal)
		resp.Outstanding = resp.Outstanding.Add(totals.Balance)
		resp.ReservationCount++
		resp.NightsSold += totals.Nights * len(res.Rooms)
	}

	payments, err := s.folioRepo.FindPaymentsInRange(ctx, propertyID, r.From, r.To)
	if err != nil {
		return nil, err
	}
	collected := decimal.Zero
	for _, p := range payments {
		collected = collected.Add(p.Amount)
	}
	resp.Collected = collected

	expenseTotal, err := s.expenseRepo.SumInRange(ctx, propertyID, r.From, r.To)
	if err != nil {
		return nil, err
	}
	resp.Expenses = expenseTotal

	byCategory, err := s.expenseRepo.SumByCategoryInRange(ctx, propertyID, r.From, r.To)
	if err != nil {
		return nil, err
	}
	resp.ExpensesByCategory = byCategory

	resp.Net = collected.Sub(expenseTotal)

	return resp, nil
}

func (s *ReportService) paymentRows(ctx context.Context, propertyID uuid.UUID, r DateRange) ([]PaymentReportRow, decimal.Decimal, error) {
	payments, err := s.folioRepo.FindPaymentsInRange(ctx, propertyID, r.From, r.To)
	if err != nil {
		return nil, decimal.Zero, err
	}

	// reservations resolved once per id for code and guest name
	codes := make(map[uuid.UUID]*reservation.Reservation)
	rows := make([]PaymentReportRow, 0, len(payments))
	total := decimal.Zero

	for _, p := range payments {
		res, ok := codes[p.ReservationID]
		if !ok {
			res, err = s.reservationRepo.FindByID(ctx, p.ReservationID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			codes[p.ReservationID] = res
		}

		row := PaymentReportRow{
			ID:            p.ID,
			ReservationID: p.ReservationID,
			Type:          string(p.Type),
			Method:        string(p.Method),
			Amount:        p.Amount,
			PaidAt:        p.PaidAt,
			Remark:        p.Remark,
		}
		if res != nil {
			row.ReservationCode = res.Code
			row.GuestName = res.GuestName
		}
		rows = append(rows, row)
		total = total.Add(p.Amount)
	}

	return rows, total, nil
}

func (s *ReportService) expenseRows(ctx context.Context, propertyID uuid.UUID, r DateRange) ([]ExpenseReportRow, decimal.Decimal, error) {
	expenses, err := s.expenseRepo.FindInRange(ctx, propertyID, r.From, r.To)
	if err != nil {
		return nil, decimal.Zero, err
	}

	rows := make([]ExpenseReportRow, len(expenses))
	total := decimal.Zero
	for i, e := range expenses {
		rows[i] = ExpenseReportRow{
			ID:            e.ID,
			ExpenseNumber: e.ExpenseNumber,
			Category:      string(e.Category),
			Description:   e.Description,
			Amount:        e.Amount,
			IncurredAt:    e.IncurredAt,
			PaymentMethod: string(e.PaymentMethod),
		}
		total = total.Add(e.Amount)
	}

	return rows, total, nil
}

func (s *ReportService) reservationTotals(ctx context.Context, r *reservation.Reservation) (*reservation.FolioTotals, error) {
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
