package sale

import (
	"context"
	"errors"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// HTMLRenderer turns a receipt document into an HTML page
type HTMLRenderer interface {
	RenderHTML(doc *receipt.Document) ([]byte, error)
}

// ReceiptService regenerates receipts of already persisted sales
type ReceiptService struct {
	store     sale.Store
	cache     ProjectionCache
	generator *receipt.Generator
	builder   *sale.ProjectionBuilder
	html      HTMLRenderer
	sink      DocumentSink
	timeout   time.Duration
	logger    *zap.Logger
}

// NewReceiptService creates a ReceiptService. cache, html and sink may be nil.
func NewReceiptService(
	store sale.Store,
	cache ProjectionCache,
	generator *receipt.Generator,
	lookup sale.ProductNameLookup,
	html HTMLRenderer,
	sink DocumentSink,
	timeout time.Duration,
	logger *zap.Logger,
) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultComposerConfig().CallTimeout
	}
	return &ReceiptService{
		store:     store,
		cache:     cache,
		generator: generator,
		builder:   sale.NewProjectionBuilder(lookup),
		html:      html,
		sink:      sink,
		timeout:   timeout,
		logger:    logger,
	}
}

// Projection returns the composed projection of a sale, from the cache when
// possible and from the store otherwise
func (s *ReceiptService) Projection(ctx context.Context, saleID int64) (*sale.Projection, error) {
	if s.cache != nil {
		p, err := s.cache.Get(ctx, saleID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("projection cache read failed", zap.Int64("sale_id", saleID), zap.Error(err))
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rec, err := s.store.QueryComposed(callCtx, saleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.WrapDomainError(sale.ErrComposedReadFailed, err)
	}
	p := s.builder.FromComposed(rec, nil, rec.Header.Subtotal, rec.Header.Total)

	if s.cache != nil {
		if err := s.cache.Put(ctx, p); err != nil {
			s.logger.Warn("failed to cache projection", zap.Int64("sale_id", saleID), zap.Error(err))
		}
	}
	return p, nil
}

// Regenerate builds a fresh receipt document for a persisted sale
func (s *ReceiptService) Regenerate(ctx context.Context, saleID int64) (*receipt.Document, error) {
	p, err := s.Projection(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(p), nil
}

// RegenerateHTML renders a fresh receipt of a sale as HTML
func (s *ReceiptService) RegenerateHTML(ctx context.Context, saleID int64) ([]byte, error) {
	if s.html == nil {
		return nil, shared.WrapDomainError(sale.ErrDocumentRenderFailed, errors.New("html rendering is not configured"))
	}
	doc, err := s.Regenerate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	page, err := s.html.RenderHTML(doc)
	if err != nil {
		return nil, shared.WrapDomainError(sale.ErrDocumentRenderFailed, err)
	}
	return page, nil
}

// RegeneratePDF renders a fresh receipt of a sale as PDF
func (s *ReceiptService) RegeneratePDF(ctx context.Context, saleID int64) (*printing.Artifact, error) {
	if s.sink == nil {
		return nil, shared.WrapDomainError(sale.ErrDocumentRenderFailed, errors.New("pdf rendering is not configured"))
	}
	doc, err := s.Regenerate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	artifact, err := s.sink.RenderDocument(ctx, doc)
	if err != nil {
		s.logger.Error("receipt render failed", zap.Int64("sale_id", saleID), zap.Error(err))
		return nil, shared.WrapDomainError(sale.ErrDocumentRenderFailed, err)
	}
	return artifact, nil
}
