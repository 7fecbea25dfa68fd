// Package valueobject holds immutable values shared by the sale and receipt domains.
package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CentavoPlaces is the precision every stored amount is rounded to
const CentavoPlaces int32 = 2

// Reais is an amount of Brazilian reais. Arithmetic keeps full precision;
// Round brings a result back to centavos, half away from zero.
type Reais struct {
	d decimal.Decimal
}

// NewReais wraps d
func NewReais(d decimal.Decimal) Reais { return Reais{d: d} }

// SumReais adds the amounts
func SumReais(amounts ...decimal.Decimal) Reais {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Reais{d: total}
}

// Times multiplies by a quantity
func (r Reais) Times(quantity int) Reais {
	return Reais{d: r.d.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Scale multiplies by a rate such as a tax fraction
func (r Reais) Scale(rate decimal.Decimal) Reais {
	return Reais{d: r.d.Mul(rate)}
}

// Round rounds to centavos
func (r Reais) Round() Reais {
	return Reais{d: r.d.Round(CentavoPlaces)}
}

// Decimal returns the amount
func (r Reais) Decimal() decimal.Decimal { return r.d }

// Comma renders the amount the way receipts print it: "1234,50".
// Thousands are not grouped.
func (r Reais) Comma() string { return DecimalComma(r.d) }

// String renders "R$ 1234,50"
func (r Reais) String() string { return "R$ " + r.Comma() }

// DecimalComma renders d with two places and a comma separator
func DecimalComma(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(CentavoPlaces), ".", ",", 1)
}
