package catalog

import (
	"fmt"
	"strings"

	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/edusabi/mobileFacul/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ErrInvalidPrice marks product price data that cannot be coerced to a non-negative decimal
var ErrInvalidPrice = shared.NewDomainError("INVALID_PRICE", "Product price is not a valid non-negative number")

// Product is a sellable item as held in the catalog cache.
// Price is always a normalized decimal; Cost is zero when the store has none.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"preco" swaggertype:"string" example:"45.90"`
	Cost  decimal.Decimal `json:"custo" swaggertype:"string" example:"30.00"`
	Stock int             `json:"estoque"`
}

// ProductRecord is a product row in its stored representation.
// Price and cost arrive as text because the store does not guarantee numeric encoding.
type ProductRecord struct {
	ID    int64
	Name  string
	Price string
	Cost  *string
	Stock int
}

// NewProduct creates a product, rejecting negative prices or costs and
// amounts finer than a centavo. Sale lines store unit values with two
// places, so a finer catalog price would be changed by the store.
func NewProduct(id int64, name string, price, cost decimal.Decimal, stock int) (*Product, error) {
	if err := checkAmount(price); err != nil {
		return nil, shared.WrapDomainError(ErrInvalidPrice, fmt.Errorf("product %d price: %w", id, err))
	}
	if err := checkAmount(cost); err != nil {
		return nil, shared.WrapDomainError(ErrInvalidPrice, fmt.Errorf("product %d cost: %w", id, err))
	}
	return &Product{
		ID:    id,
		Name:  name,
		Price: price,
		Cost:  cost,
		Stock: stock,
	}, nil
}

func checkAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%s is negative", d)
	}
	if !d.Equal(d.Round(valueobject.CentavoPlaces)) {
		return fmt.Errorf("%s has more than %d decimal places", d, valueobject.CentavoPlaces)
	}
	return nil
}

// ParsePrice coerces a stored price to a decimal.
// Empty, non-numeric, negative and sub-centavo values are data-quality
// errors, never zero. Trailing zeros are fine: "10.500" is 10.50.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, shared.WrapDomainError(ErrInvalidPrice, fmt.Errorf("empty price"))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, shared.WrapDomainError(ErrInvalidPrice, fmt.Errorf("%q: %w", raw, err))
	}
	if err := checkAmount(d); err != nil {
		return decimal.Zero, shared.WrapDomainError(ErrInvalidPrice, fmt.Errorf("%q: %w", raw, err))
	}
	return d, nil
}

// ToProduct normalizes the record into a Product
func (r ProductRecord) ToProduct() (*Product, error) {
	price, err := ParsePrice(r.Price)
	if err != nil {
		return nil, fmt.Errorf("product %d price: %w", r.ID, err)
	}
	cost := decimal.Zero
	if r.Cost != nil && strings.TrimSpace(*r.Cost) != "" {
		cost, err = ParsePrice(*r.Cost)
		if err != nil {
			return nil, fmt.Errorf("product %d cost: %w", r.ID, err)
		}
	}
	return NewProduct(r.ID, r.Name, price, cost, r.Stock)
}
