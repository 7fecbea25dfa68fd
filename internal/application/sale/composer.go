package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"github.com/edusabi/mobileFacul/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// ReceiptContentType is the media type of shared receipts
	ReceiptContentType = "application/pdf"
	// ReceiptShareTitle is the title shown by the share target
	ReceiptShareTitle = "NFC-e"

	stepHeader   = "header"
	stepItems    = "items"
	stepComposed = "composed"
	stepDocument = "document"
)

// ComposerConfig holds checkout settings
type ComposerConfig struct {
	Seller        string
	PaymentMethod string
	CallTimeout   time.Duration
}

// DefaultComposerConfig returns the settings used when none are configured
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		Seller:        "Raimundo",
		PaymentMethod: "PIX",
		CallTimeout:   10 * time.Second,
	}
}

// CheckoutRequest is the input of one checkout attempt
type CheckoutRequest struct {
	Customer *catalog.Customer
	Lines    []sale.CartItem
	// Seller and PaymentMethod override the configured values when set
	Seller        string
	PaymentMethod string
}

// Outcome reports how far a checkout went.
// On ITEMS_WRITE_FAILED, Sale holds the orphan header that was persisted without items.
type Outcome struct {
	State            sale.CheckoutState   `json:"state"`
	Trail            []sale.CheckoutState `json:"trail"`
	Sale             *sale.Sale           `json:"sale,omitempty"`
	Orphaned         bool                 `json:"orphaned"`
	ComposedFromCart bool                 `json:"composed_from_cart"`
	Projection       *sale.Projection     `json:"projection,omitempty"`
	Document         *receipt.Document    `json:"document,omitempty"`
	Delivery         *Delivery            `json:"delivery,omitempty"`
}

func newOutcome() *Outcome {
	return &Outcome{
		State: sale.CheckoutStateIdle,
		Trail: []sale.CheckoutState{sale.CheckoutStateIdle},
	}
}

func (o *Outcome) advance(to sale.CheckoutState) error {
	if !o.State.CanTransitionTo(to) {
		return shared.WrapDomainError(shared.ErrInvalidState, fmt.Errorf("checkout %s -> %s", o.State, to))
	}
	o.State = to
	o.Trail = append(o.Trail, to)
	return nil
}

// Delivery is the rendered and shared receipt
type Delivery struct {
	ArtifactID string `json:"artifact_id"`
	URL        string `json:"url,omitempty"`
	Key        string `json:"key,omitempty"`
	Size       int64  `json:"size"`
}

// Composer runs the checkout saga: header write, items write, composed read-back
// and receipt generation. Writes are sequential and never retried.
type Composer struct {
	store      sale.Store
	generator  *receipt.Generator
	builder    *sale.ProjectionBuilder
	cache      ProjectionCache
	sink       DocumentSink
	observer   CheckoutObserver
	config     ComposerConfig
	baseLogger *zap.Logger
}

// ComposerOption configures a Composer
type ComposerOption func(*Composer)

// WithProjectionCache stores composed projections for later regeneration
func WithProjectionCache(cache ProjectionCache) ComposerOption {
	return func(c *Composer) { c.cache = cache }
}

// WithDocumentSink renders and shares receipts after a successful checkout
func WithDocumentSink(sink DocumentSink) ComposerOption {
	return func(c *Composer) { c.sink = sink }
}

// WithCheckoutObserver records checkout measurements
func WithCheckoutObserver(o CheckoutObserver) ComposerOption {
	return func(c *Composer) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithComposerLogger sets the fallback logger used when the context carries none
func WithComposerLogger(l *zap.Logger) ComposerOption {
	return func(c *Composer) {
		if l != nil {
			c.baseLogger = l
		}
	}
}

// NewComposer creates a Composer
func NewComposer(
	store sale.Store,
	generator *receipt.Generator,
	lookup sale.ProductNameLookup,
	cfg ComposerConfig,
	opts ...ComposerOption,
) *Composer {
	def := DefaultComposerConfig()
	if cfg.Seller == "" {
		cfg.Seller = def.Seller
	}
	if cfg.PaymentMethod == "" {
		cfg.PaymentMethod = def.PaymentMethod
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	c := &Composer{
		store:      store,
		generator:  generator,
		builder:    sale.NewProjectionBuilder(lookup),
		observer:   nopObserver{},
		config:     cfg,
		baseLogger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composer) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, c.baseLogger)
}

// Checkout runs the saga for req. The returned error is one of the sale
// validation or write errors; the outcome is always non-nil and tells which
// state was reached.
func (c *Composer) Checkout(ctx context.Context, req CheckoutRequest) (*Outcome, error) {
	started := time.Now()
	out := newOutcome()
	log := c.log(ctx)

	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "run")
	defer span.End()

	err := c.run(ctx, log, req, out)
	total := decimal.Zero
	if out.Sale != nil {
		total = out.Sale.Total
	}
	c.observer.CheckoutFinished(out.State, total, time.Since(started))
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCheckoutState, out.State.String(),
		telemetry.SpanAttrItemCount, len(req.Lines),
		telemetry.SpanAttrOrphaned, out.Orphaned,
	)
	if out.Sale != nil {
		telemetry.SetAttributes(span,
			telemetry.SpanAttrSaleID, out.Sale.ID,
			telemetry.SpanAttrAmount, out.Sale.Total.StringFixed(2),
		)
	}
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return out, err
}

func (c *Composer) run(ctx context.Context, log *zap.Logger, req CheckoutRequest, out *Outcome) error {
	_ = out.advance(sale.CheckoutStateValidating)

	lines := make([]sale.CartItem, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Quantity > 0 {
			lines = append(lines, l)
		}
	}
	if req.Customer == nil {
		_ = out.advance(sale.CheckoutStateValidationFailed)
		return sale.ErrNoCustomerSelected
	}
	if len(lines) == 0 {
		_ = out.advance(sale.CheckoutStateValidationFailed)
		return sale.ErrEmptyCart
	}

	// From here on the attempt runs to completion or explicit failure.
	ctx = context.WithoutCancel(ctx)

	subtotal := sale.SumTotals(lines)
	header := sale.SaleHeader{
		CustomerID:    req.Customer.ID,
		Seller:        firstNonEmpty(req.Seller, c.config.Seller),
		PaymentMethod: firstNonEmpty(req.PaymentMethod, c.config.PaymentMethod),
		Subtotal:      subtotal,
		Total:         subtotal,
	}

	var persisted *sale.Sale
	err := c.step(ctx, stepHeader, func(callCtx context.Context) error {
		var err error
		persisted, err = c.store.InsertSale(callCtx, header)
		return err
	})
	if err != nil {
		_ = out.advance(sale.CheckoutStateHeaderWriteFailed)
		log.Error("sale header write failed",
			zap.Int64("customer_id", header.CustomerID),
			zap.String("total", header.Total.StringFixed(2)),
			zap.Error(err))
		return shared.WrapDomainError(sale.ErrHeaderWriteFailed, err)
	}
	out.Sale = persisted
	_ = out.advance(sale.CheckoutStateHeaderPersisted)
	log = log.With(zap.Int64("sale_id", persisted.ID))

	records := sale.LineItemsFromCart(persisted.ID, lines)
	err = c.step(ctx, stepItems, func(callCtx context.Context) error {
		return c.store.InsertLineItems(callCtx, records)
	})
	if err != nil {
		_ = out.advance(sale.CheckoutStateItemsWriteFailed)
		out.Orphaned = true
		log.Error("sale items write failed, header persisted without items",
			zap.Int("items", len(records)),
			zap.Error(err))
		return shared.WrapDomainError(sale.ErrItemsWriteFailed, err)
	}
	_ = out.advance(sale.CheckoutStateItemsPersisted)

	var composed *sale.ComposedRecord
	err = c.step(ctx, stepComposed, func(callCtx context.Context) error {
		var err error
		composed, err = c.store.QueryComposed(callCtx, persisted.ID)
		return err
	})
	if err != nil {
		log.Warn("composed read failed, rebuilding projection from cart",
			zap.Error(shared.WrapDomainError(sale.ErrComposedReadFailed, err)))
		out.Projection = c.builder.FromCart(*persisted, req.Customer, lines)
		out.ComposedFromCart = true
	} else {
		out.Projection = c.builder.FromComposed(composed, req.Customer, persisted.Subtotal, persisted.Total)
	}
	_ = out.advance(sale.CheckoutStateComposed)

	if c.cache != nil {
		cacheCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
		if err := c.cache.Put(cacheCtx, out.Projection); err != nil {
			log.Warn("failed to cache projection", zap.Error(err))
		}
		cancel()
	}

	out.Document = c.generator.Generate(out.Projection)
	_ = out.advance(sale.CheckoutStateDone)

	log.Info("sale registered",
		zap.Int("items", len(records)),
		zap.String("total", persisted.Total.StringFixed(2)),
		zap.Bool("composed_from_cart", out.ComposedFromCart))
	return nil
}

// step runs one remote call under the per-call timeout
func (c *Composer) step(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", name,
		telemetry.WithAttribute(telemetry.SpanAttrCheckoutStep, name))
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()

	started := time.Now()
	err := fn(callCtx)
	c.observer.CheckoutStep(name, time.Since(started), err)
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return err
}

// Deliver renders doc and shares the artifact. It returns nil, nil when no sink
// is configured. Failures match sale.ErrDocumentRenderFailed.
func (c *Composer) Deliver(ctx context.Context, doc *receipt.Document) (*Delivery, error) {
	if c.sink == nil || doc == nil {
		return nil, nil
	}
	ctx = context.WithoutCancel(ctx)

	var delivery *Delivery
	err := c.step(ctx, stepDocument, func(callCtx context.Context) error {
		artifact, err := c.sink.RenderDocument(callCtx, doc)
		if err != nil {
			return err
		}
		result, err := c.sink.Share(callCtx, artifact, ReceiptContentType, ReceiptShareTitle)
		if err != nil {
			return err
		}
		delivery = toDelivery(artifact, result)
		return nil
	})
	if err != nil {
		c.log(ctx).Error("receipt delivery failed", zap.Int64("sale_id", doc.SaleID), zap.Error(err))
		return nil, shared.WrapDomainError(sale.ErrDocumentRenderFailed, err)
	}
	return delivery, nil
}

func toDelivery(a *printing.Artifact, r *printing.ShareResult) *Delivery {
	d := &Delivery{ArtifactID: a.ID.String(), Size: int64(len(a.PDF))}
	if r != nil {
		d.URL = r.URL
		d.Key = r.Key
		d.Size = r.Size
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
