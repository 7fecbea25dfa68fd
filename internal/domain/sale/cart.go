package sale

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZeroQuantityPolicy decides what happens to a line whose quantity is edited down to zero
type ZeroQuantityPolicy string

const (
	// ZeroQuantityKeep leaves the zero-quantity line in the cart; checkout filters it out
	ZeroQuantityKeep ZeroQuantityPolicy = "keep"
	// ZeroQuantityPrune removes the line as soon as its quantity becomes zero
	ZeroQuantityPrune ZeroQuantityPolicy = "prune"
)

// IsValid checks if the policy is a known value
func (p ZeroQuantityPolicy) IsValid() bool {
	return p == ZeroQuantityKeep || p == ZeroQuantityPrune
}

// CartItem is one line of the cart.
// Total is derived from Quantity and UnitPrice and is never set on its own.
type CartItem struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string" example:"45.90"` // snapshot of the product price when the line was created
	Total       decimal.Decimal `json:"total" swaggertype:"string" example:"91.80"`
}

func (i *CartItem) setQuantity(quantity int) {
	i.Quantity = quantity
	i.Total = LineTotal(quantity, i.UnitPrice)
}

// LineTotal returns quantity × unitPrice rounded to monetary precision
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return valueobject.NewReais(unitPrice).Times(quantity).Round().Decimal()
}

// Cart is the session-local collection of lines assembled before checkout.
// It holds at most one line per product and keeps insertion order.
// A Cart is not safe for concurrent use.
type Cart struct {
	items  []CartItem
	policy ZeroQuantityPolicy
}

// NewCart creates an empty cart
func NewCart(policy ZeroQuantityPolicy) *Cart {
	if !policy.IsValid() {
		policy = ZeroQuantityKeep
	}
	return &Cart{
		items:  make([]CartItem, 0),
		policy: policy,
	}
}

// AddItem adds quantity units of product. An existing line for the same product
// has its quantity increased; otherwise a new line is appended with the
// product's current price captured as unit price.
func (c *Cart) AddItem(product *catalog.Product, quantity int) (*CartItem, error) {
	if product == nil {
		return nil, ErrNoProductSelected
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	for idx := range c.items {
		if c.items[idx].ProductID == product.ID {
			c.items[idx].setQuantity(c.items[idx].Quantity + quantity)
			item := c.items[idx]
			return &item, nil
		}
	}

	item := CartItem{
		ID:          uuid.New(),
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
	}
	item.setQuantity(quantity)
	c.items = append(c.items, item)

	return &item, nil
}

// UpdateQuantity sets the quantity of a line from user input read by
// ParseQuantity. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, raw string) {
	c.SetQuantity(itemID, ParseQuantity(raw))
}

// SetQuantity sets the quantity of a line. Negative values are clamped to 0.
func (c *Cart) SetQuantity(itemID uuid.UUID, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	for idx := range c.items {
		if c.items[idx].ID != itemID {
			continue
		}
		if quantity == 0 && c.policy == ZeroQuantityPrune {
			c.RemoveItem(itemID)
			return
		}
		c.items[idx].setQuantity(quantity)
		return
	}
}

// RemoveItem removes a line. Removing an unknown id is a no-op.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	for idx, item := range c.items {
		if item.ID == itemID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			return
		}
	}
}

// Item returns a copy of the line with the given id
func (c *Cart) Item(itemID uuid.UUID) (CartItem, bool) {
	for _, item := range c.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// CheckoutLines returns the lines eligible for checkout (quantity > 0)
func (c *Cart) CheckoutLines() []CartItem {
	out := make([]CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Subtotal is the sum of the already-rounded line totals
func (c *Cart) Subtotal() decimal.Decimal {
	return SumTotals(c.items)
}

// Total equals Subtotal. Discounts and fees would be applied here.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal()
}

// TotalQuantity is the sum of line quantities
func (c *Cart) TotalQuantity() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Policy returns the zero-quantity policy of the cart
func (c *Cart) Policy() ZeroQuantityPolicy {
	return c.policy
}

// Clear discards every line
func (c *Cart) Clear() {
	c.items = make([]CartItem, 0)
}

// SumTotals adds up line totals
func SumTotals(items []CartItem) decimal.Decimal {
	totals := make([]decimal.Decimal, len(items))
	for i, item := range items {
		totals[i] = item.Total
	}
	return valueobject.SumReais(totals...).Decimal()
}

// ParseQuantity reads a quantity typed by the user the way a keypad field is
// read: leading blanks are skipped and the leading base-10 digits are used,
// so "3abc" is 3 and "1.5" is 1. No digits, a minus sign or an out-of-range
// number yield 0.
func ParseQuantity(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	if end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	if err != nil || negative {
		return 0
	}
	return n
}
