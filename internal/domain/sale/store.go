package sale

import (
	"context"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
)

// Store is the remote data store the checkout writes to.
// Implementations are not expected to be transactional across calls.
type Store interface {
	catalog.Reader

	// GetCustomer returns shared.ErrNotFound when the id is unknown
	GetCustomer(ctx context.Context, id int64) (*catalog.Customer, error)
	// GetProduct returns shared.ErrNotFound when the id is unknown
	GetProduct(ctx context.Context, id int64) (*catalog.ProductRecord, error)

	// InsertSale creates the sale header and returns it with the store-assigned id and defaults
	InsertSale(ctx context.Context, header SaleHeader) (*Sale, error)
	// InsertLineItems writes all line items in one batch
	InsertLineItems(ctx context.Context, items []LineItemRecord) error
	// QueryComposed reads back the header with its customer, items and product names
	QueryComposed(ctx context.Context, saleID int64) (*ComposedRecord, error)
}
