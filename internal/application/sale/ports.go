package sale

import (
	"context"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
)

// ProjectionCache keeps composed projections retrievable by sale id
type ProjectionCache interface {
	Put(ctx context.Context, p *sale.Projection) error
	// Get returns shared.ErrNotFound on a miss
	Get(ctx context.Context, saleID int64) (*sale.Projection, error)
}

// DocumentSink renders receipt documents and hands them to a share target
type DocumentSink interface {
	RenderDocument(ctx context.Context, doc *receipt.Document) (*printing.Artifact, error)
	Share(ctx context.Context, artifact *printing.Artifact, contentType, title string) (*printing.ShareResult, error)
}

// CatalogLookup is the read access the sale flow needs from the catalog cache
type CatalogLookup interface {
	Customer(id int64) (*catalog.Customer, bool)
	Product(id int64) (*catalog.Product, bool)
	ProductName(id int64) (string, bool)
}

// CheckoutObserver receives checkout measurements
type CheckoutObserver interface {
	CheckoutFinished(state sale.CheckoutState, total decimal.Decimal, elapsed time.Duration)
	CheckoutStep(step string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) CheckoutFinished(sale.CheckoutState, decimal.Decimal, time.Duration) {}
func (nopObserver) CheckoutStep(string, time.Duration, error)                           {}
