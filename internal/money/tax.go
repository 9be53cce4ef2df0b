// Package money computes net, VAT and gross amounts for cart and order lines.
//
// All arithmetic runs on shopspring/decimal values. Amounts are never rounded
// here; persistence columns decide the stored precision.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is applied when a product carries no VAT rate.
var DefaultVATRate = decimal.RequireFromString("19.00")

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
)

var hundred = decimal.NewFromInt(100)

// Line is one priced position: a unit price, a quantity and a VAT percentage.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
	VATRate   decimal.Decimal
}

// LineAmounts holds the computed amounts of a single Line.
type LineAmounts struct {
	Net   decimal.Decimal `json:"line_net"`
	VAT   decimal.Decimal `json:"line_vat"`
	Gross decimal.Decimal `json:"line_gross"`
}

// Totals is the aggregate over many lines.
type Totals struct {
	Net   decimal.Decimal `json:"total_net"`
	VAT   decimal.Decimal `json:"total_vat"`
	Gross decimal.Decimal `json:"total_gross"`
}

// RateOrDefault returns the rate when valid, DefaultVATRate otherwise.
func RateOrDefault(rate decimal.NullDecimal) decimal.Decimal {
	if !rate.Valid {
		return DefaultVATRate
	}
	return rate.Decimal
}

// Validate checks the caller preconditions of a line.
func (l Line) Validate() error {
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// Amounts computes line_net = p*q, line_vat = p*(r/100)*q and their sum.
func (l Line) Amounts() LineAmounts {
	qty := decimal.NewFromInt(int64(l.Quantity))
	net := l.UnitPrice.Mul(qty)
	vat := l.UnitPrice.Mul(l.VATRate.Div(hundred)).Mul(qty)

	return LineAmounts{
		Net:   net,
		VAT:   vat,
		Gross: net.Add(vat),
	}
}

// Sum aggregates lines. Net and VAT are summed on their own and only then
// added, so per-line gross values never feed the total.
func Sum(lines []Line) Totals {
	totalNet := decimal.Zero
	totalVAT := decimal.Zero

	for _, l := range lines {
		a := l.Amounts()
		totalNet = totalNet.Add(a.Net)
		totalVAT = totalVAT.Add(a.VAT)
	}

	return Totals{
		Net:   totalNet,
		VAT:   totalVAT,
		Gross: totalNet.Add(totalVAT),
	}
}
