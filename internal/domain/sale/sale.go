package sale

import (
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// SaleHeader is the payload submitted to create a sale
type SaleHeader struct {
	CustomerID    int64           `json:"cliente_id"`
	Seller        string          `json:"vendedor"`
	PaymentMethod string          `json:"forma_pagamento"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// Sale is a persisted sale header. ID, Number and CreatedAt are assigned by the store.
type Sale struct {
	ID            int64           `json:"id"`
	Number        string          `json:"numero"`
	CustomerID    int64           `json:"cliente_id"`
	Seller        string          `json:"vendedor"`
	PaymentMethod string          `json:"forma_pagamento"`
	Subtotal      decimal.Decimal `json:"subtotal" swaggertype:"string" example:"91.80"`
	Total         decimal.Decimal `json:"total" swaggertype:"string" example:"91.80"`
	CreatedAt     time.Time       `json:"data"`
}

// LineItemRecord is one persisted sale line, tied to its parent sale
type LineItemRecord struct {
	SaleID    int64           `json:"venda_id"`
	ProductID int64           `json:"produto_id"`
	Quantity  int             `json:"quantidade"`
	UnitValue decimal.Decimal `json:"valor_unit"`
	Total     decimal.Decimal `json:"total"`
}

// LineItemsFromCart maps checkout lines to line records of the given sale
func LineItemsFromCart(saleID int64, items []CartItem) []LineItemRecord {
	records := make([]LineItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, LineItemRecord{
			SaleID:    saleID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitValue: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return records
}

// ComposedLine is a stored line item joined with its product name when available
type ComposedLine struct {
	LineItemRecord
	ProductName *string
}

// ComposedRecord is the raw joined view of a sale as returned by the store
type ComposedRecord struct {
	Header   Sale
	Customer *catalog.Customer
	Lines    []ComposedLine
}

// ProjectionLine is a receipt-ready sale line
type ProjectionLine struct {
	ProductName string          `json:"nome"`
	Quantity    int             `json:"quantidade"`
	UnitValue   decimal.Decimal `json:"valor_unit" swaggertype:"string" example:"45.90"`
	Total       decimal.Decimal `json:"total" swaggertype:"string" example:"91.80"`
}

// Projection is the fully joined view of a sale used to render its receipt
type Projection struct {
	SaleID        int64             `json:"id"`
	Number        string            `json:"numero"`
	IssuedAt      time.Time         `json:"data"`
	Seller        string            `json:"vendedor"`
	PaymentMethod string            `json:"forma_pagamento"`
	Subtotal      decimal.Decimal   `json:"subtotal" swaggertype:"string" example:"91.80"`
	Total         decimal.Decimal   `json:"total" swaggertype:"string" example:"91.80"`
	Customer      *catalog.Customer `json:"cliente,omitempty"`
	Lines         []ProjectionLine  `json:"itens"`
}

// TotalQuantity is the sum of line quantities
func (p *Projection) TotalQuantity() int {
	n := 0
	for _, l := range p.Lines {
		n += l.Quantity
	}
	return n
}

// ProductNameLookup resolves a product id to its display name
type ProductNameLookup func(productID int64) (string, bool)

// ProjectionBuilder assembles projections from raw store data.
// It is independent of any particular query shape.
type ProjectionBuilder struct {
	lookup ProductNameLookup
	now    func() time.Time
}

// NewProjectionBuilder creates a builder. lookup may be nil.
func NewProjectionBuilder(lookup ProductNameLookup) *ProjectionBuilder {
	if lookup == nil {
		lookup = func(int64) (string, bool) { return "", false }
	}
	return &ProjectionBuilder{lookup: lookup, now: time.Now}
}

// FromComposed builds a projection from a read-back record. Missing pieces fall
// back to the data the caller already holds: the customer it selected and
// the totals it computed.
func (b *ProjectionBuilder) FromComposed(rec *ComposedRecord, fallbackCustomer *catalog.Customer, fallbackSubtotal, fallbackTotal decimal.Decimal) *Projection {
	p := b.header(rec.Header, fallbackSubtotal, fallbackTotal)
	p.Customer = rec.Customer
	if p.Customer == nil {
		p.Customer = fallbackCustomer
	}
	p.Lines = make([]ProjectionLine, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		name := ""
		if l.ProductName != nil {
			name = *l.ProductName
		} else if n, ok := b.lookup(l.ProductID); ok {
			name = n
		}
		p.Lines = append(p.Lines, ProjectionLine{
			ProductName: name,
			Quantity:    l.Quantity,
			UnitValue:   l.UnitValue,
			Total:       l.Total,
		})
	}
	return p
}

// FromCart reconstructs a projection from the header returned by the write and the
// in-memory checkout lines. Used when the read-back fails.
func (b *ProjectionBuilder) FromCart(header Sale, customer *catalog.Customer, items []CartItem) *Projection {
	subtotal := SumTotals(items)
	p := b.header(header, subtotal, subtotal)
	p.Subtotal = subtotal
	p.Total = subtotal
	p.Customer = customer
	p.Lines = make([]ProjectionLine, 0, len(items))
	for _, item := range items {
		p.Lines = append(p.Lines, ProjectionLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitValue:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return p
}

func (b *ProjectionBuilder) header(h Sale, fallbackSubtotal, fallbackTotal decimal.Decimal) *Projection {
	issuedAt := h.CreatedAt
	if issuedAt.IsZero() {
		issuedAt = b.now()
	}
	subtotal := h.Subtotal
	if subtotal.IsZero() {
		subtotal = fallbackSubtotal
	}
	total := h.Total
	if total.IsZero() {
		total = fallbackTotal
	}
	return &Projection{
		SaleID:        h.ID,
		Number:        h.Number,
		IssuedAt:      issuedAt,
		Seller:        h.Seller,
		PaymentMethod: h.PaymentMethod,
		Subtotal:      subtotal,
		Total:         total,
	}
}
