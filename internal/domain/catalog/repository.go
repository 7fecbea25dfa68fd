package catalog

import "context"

// Reader is the read side of the remote store used to populate the catalog
type Reader interface {
	// ListCustomers fetches every customer in store order
	ListCustomers(ctx context.Context) ([]Customer, error)
	// ListProducts fetches every product in its stored representation
	ListProducts(ctx context.Context) ([]ProductRecord, error)
}
