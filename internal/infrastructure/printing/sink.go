package printing

import (
	"context"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Artifact is a rendered receipt, kept in memory until it is shared
type Artifact struct {
	ID        uuid.UUID
	SaleID    int64
	HTML      []byte
	PDF       []byte
	CreatedAt time.Time
}

// HasPDF reports whether the artifact carries a PDF rendition
func (a *Artifact) HasPDF() bool {
	return a != nil && len(a.PDF) > 0
}

// ShareResult describes where a shared artifact ended up
type ShareResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Sink renders receipt documents and publishes them to an artifact store.
// Without a PDF renderer it produces HTML only, and without a store Share
// reports the artifact as is.
type Sink struct {
	templates *TemplateEngine
	pdf       PDFRenderer
	store     ArtifactStore
	paper     PaperSize
	margins   Margins
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// SinkOption configures a Sink
type SinkOption func(*Sink)

// WithPaper sets the paper size and margins used for PDF output
func WithPaper(size PaperSize, margins Margins) SinkOption {
	return func(s *Sink) {
		if size.IsValid() {
			s.paper = size
		}
		s.margins = margins
	}
}

// WithRenderTimeout bounds each PDF rendering
func WithRenderTimeout(d time.Duration) SinkOption {
	return func(s *Sink) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSink creates a Sink. pdf and store may be nil.
func NewSink(templates *TemplateEngine, pdf PDFRenderer, store ArtifactStore, logger *zap.Logger, opts ...SinkOption) *Sink {
	if templates == nil {
		templates = NewTemplateEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sink{
		templates: templates,
		pdf:       pdf,
		store:     store,
		paper:     PaperSizeReceipt80MM,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenderHTML renders a document as HTML only
func (s *Sink) RenderHTML(doc *receipt.Document) ([]byte, error) {
	return s.templates.RenderHTML(doc)
}

// RenderDocument renders a document as HTML and, when a renderer is configured, PDF
func (s *Sink) RenderDocument(ctx context.Context, doc *receipt.Document) (*Artifact, error) {
	page, err := s.templates.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	artifact := &Artifact{
		ID:        uuid.New(),
		SaleID:    doc.SaleID,
		HTML:      page,
		CreatedAt: s.now(),
	}
	if s.pdf == nil {
		return artifact, nil
	}

	result, err := s.pdf.Render(ctx, &RenderRequest{
		HTML:      string(page),
		PaperSize: s.paper,
		Margins:   s.margins,
		Title:     "NFC-e " + doc.Emission.Number,
		Timeout:   s.timeout,
	})
	if err != nil {
		return nil, err
	}
	artifact.PDF = result.PDF

	s.logger.Debug("receipt rendered",
		zap.Int64("sale_id", doc.SaleID),
		zap.String("artifact_id", artifact.ID.String()),
		zap.Int("pdf_bytes", len(result.PDF)),
		zap.Duration("duration", result.Elapsed))
	return artifact, nil
}

// Share publishes an artifact. A PDF request for an artifact without PDF
// falls back to its HTML rendition.
func (s *Sink) Share(ctx context.Context, artifact *Artifact, contentType, title string) (*ShareResult, error) {
	if artifact == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "artifact is nil", nil)
	}

	data, ext := artifact.PDF, ".pdf"
	if contentType != ContentTypePDF || !artifact.HasPDF() {
		data, ext, contentType = artifact.HTML, ".html", ContentTypeHTML
	}

	key := ArtifactKey(artifact, ext)
	if s.store == nil {
		return &ShareResult{
			Key:         key,
			Title:       title,
			ContentType: contentType,
			Size:        int64(len(data)),
		}, nil
	}

	stored, err := s.store.Put(ctx, &StoreRequest{Key: key, Data: data, ContentType: contentType})
	if err != nil {
		return nil, err
	}
	return &ShareResult{
		Key:         stored.Key,
		URL:         stored.URL,
		Title:       title,
		ContentType: contentType,
		Size:        stored.Size,
	}, nil
}

// Close releases the PDF renderer
func (s *Sink) Close() error {
	if s.pdf == nil {
		return nil
	}
	return s.pdf.Close()
}
