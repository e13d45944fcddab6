package report

import (
	"encoding/csv"
	"io"
)

const csvDateLayout = "2006-01-02"

// WritePaymentsCSV streams the payments report as CSV
func WritePaymentsCSV(w io.Writer, report *PaymentsReportResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Reservation", "Guest", "Type", "Method", "Amount", "Remark"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			row.PaidAt.Format(csvDateLayout),
			row.ReservationCode,
			row.GuestName,
			row.Type,
			row.Method,
			row.Amount.StringFixed(2),
			row.Remark,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"", "", "", "", "Total", report.Total.StringFixed(2), ""}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteExpensesCSV streams the expenses report as CSV
func WriteExpensesCSV(w io.Writer, report *ExpensesReportResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Number", "Category", "Description", "Method", "Amount"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			row.IncurredAt.Format(csvDateLayout),
			row.ExpenseNumber,
			row.Category,
			row.Description,
			row.PaymentMethod,
			row.Amount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"", "", "", "", "Total", report.Total.StringFixed(2)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteLedgerCSV streams the merged ledger as CSV. Amounts stay signed:
// payments positive, expenses negative.
func WriteLedgerCSV(w io.Writer, ledger *LedgerResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Kind", "Reference", "Description", "Amount", "Running Total"}); err != nil {
		return err
	}
	for _, row := range ledger.Rows {
		record := []string{
			row.Date.Format(csvDateLayout),
			row.Kind,
			row.Reference,
			row.Description,
			row.Amount.StringFixed(2),
			row.RunningTotal.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"", "", "", "Closing", ledger.ClosingTotal.StringFixed(2), ""}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
