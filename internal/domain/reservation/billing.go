package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// FolioTotals is the derived billing summary for a reservation. It is never
// stored; every read recomputes it from the folio rows.
type FolioTotals struct {
	Nights        int             `json:"nights"`
	RoomCharges   decimal.Decimal `json:"room_charges"`
	OtherCharges  decimal.Decimal `json:"other_charges"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Balance       decimal.Decimal `json:"balance"`
}

// ComputeFolioTotals derives the billing summary for a stay. Missing
// collections count as zero. Discounts reduce the total, floored at zero;
// overpayment is absorbed silently, so the balance never goes negative.
func ComputeFolioTotals(checkIn, checkOut time.Time, rooms []ReservationRoom, services []ServiceCharge, foods []FoodCharge, payments []Payment, discounts []Discount) FolioTotals {
	nights := NightsBetween(checkIn, checkOut)
	nightsDec := decimal.NewFromInt(int64(nights))

	roomCharges := decimal.Zero
	for _, line := range rooms {
		roomCharges = roomCharges.Add(line.NightlyRate.Mul(nightsDec))
	}

	otherCharges := decimal.Zero
	for _, s := range services {
		otherCharges = otherCharges.Add(s.Amount)
	}
	for _, f := range foods {
		otherCharges = otherCharges.Add(f.Amount)
	}

	discountTotal := decimal.Zero
	for _, d := range discounts {
		discountTotal = discountTotal.Add(d.Amount)
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	grossTotal := roomCharges.Add(otherCharges)

	total := grossTotal.Sub(discountTotal)
	if total.IsNegative() {
		total = decimal.Zero
	}

	balance := total.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return FolioTotals{
		Nights:        nights,
		RoomCharges:   roomCharges,
		OtherCharges:  otherCharges,
		DiscountTotal: discountTotal,
		GrossTotal:    grossTotal,
		Total:         total,
		Paid:          paid,
		Balance:       balance,
	}
}
