package invoice

import (
	"github.com/shopspring/decimal"

	"invoice-engine/internal/domain/models"
)

// Totals returns the ledger totals to print. Totals supplied by the booking
// record win; when the record carries none they are derived from the priced
// lines: subtotal = transport + extras, tax = subtotal * percent / 100.
func Totals(rec models.BookingRecord) models.LedgerTotals {
	l := rec.Ledger
	if l.Subtotal != 0 || l.GrandTotal != 0 {
		return l
	}

	subtotal := decimal.Zero
	for _, p := range []models.PriceLine{rec.Prices.Adult, rec.Prices.Child, rec.Prices.Infant} {
		subtotal = subtotal.Add(decimal.NewFromFloat(p.UnitPrice).Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	for _, x := range rec.Extras {
		subtotal = subtotal.Add(decimal.NewFromFloat(extraAmount(x)))
	}
	tax := subtotal.Mul(decimal.NewFromFloat(l.TaxPercent)).Div(decimal.NewFromInt(100)).Round(2)

	return models.LedgerTotals{
		Subtotal:   subtotal.Round(2).InexactFloat64(),
		TaxPercent: l.TaxPercent,
		TaxAmount:  tax.InexactFloat64(),
		GrandTotal: subtotal.Add(tax).Round(2).InexactFloat64(),
	}
}

func extraAmount(x models.ExtraCharge) float64 {
	if x.Amount != 0 {
		return x.Amount
	}
	return decimal.NewFromFloat(x.UnitPrice).Mul(decimal.NewFromInt(int64(x.Quantity))).InexactFloat64()
}
