package printing

import (
	"context"
	"errors"
	"strings"
	"time"
)

// PaperSize is the output medium of a rendered receipt
type PaperSize string

const (
	PaperSizeA4          PaperSize = "A4"
	PaperSizeReceipt58MM PaperSize = "RECEIPT_58MM"
	PaperSizeReceipt80MM PaperSize = "RECEIPT_80MM"
)

// continuousHeightMM is the page height of roll paper, so a receipt never paginates
const continuousHeightMM = 3000

// paperWidthMM doubles as the list of supported sizes
var paperWidthMM = map[PaperSize]int{
	PaperSizeA4:          210,
	PaperSizeReceipt58MM: 58,
	PaperSizeReceipt80MM: 80,
}

func (p PaperSize) IsValid() bool {
	_, ok := paperWidthMM[p]
	return ok
}

func (p PaperSize) String() string { return string(p) }

// IsReceipt reports roll paper
func (p PaperSize) IsReceipt() bool {
	return p == PaperSizeReceipt58MM || p == PaperSizeReceipt80MM
}

// Dimensions returns width and height in millimeters. Unknown sizes are
// treated as 80 mm roll paper.
func (p PaperSize) Dimensions() (width, height int) {
	if p == PaperSizeA4 {
		return 210, 297
	}
	width, ok := paperWidthMM[p]
	if !ok {
		width = paperWidthMM[PaperSizeReceipt80MM]
	}
	return width, continuousHeightMM
}

// Margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// RenderRequest is one HTML page to print. A zero Timeout uses the renderer default.
type RenderRequest struct {
	HTML      string
	PaperSize PaperSize
	Margins   Margins
	Title     string
	Timeout   time.Duration
}

// Validate rejects blank pages and unsupported paper
func (r *RenderRequest) Validate() error {
	switch {
	case r == nil:
		return NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	case strings.TrimSpace(r.HTML) == "":
		return NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	case !r.PaperSize.IsValid():
		return NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+r.PaperSize.String(), nil)
	}
	return nil
}

type RenderResult struct {
	PDF     []byte
	Elapsed time.Duration
}

// PDFRenderer prints HTML pages to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// ErrorCode classifies printing and artifact storage failures
type ErrorCode string

const (
	ErrCodeRenderTimeout    ErrorCode = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     ErrorCode = "RENDER_FAILED"
	ErrCodeInvalidHTML      ErrorCode = "INVALID_HTML"
	ErrCodeInvalidPaperSize ErrorCode = "INVALID_PAPER_SIZE"
	ErrCodeTemplateFailed   ErrorCode = "TEMPLATE_FAILED"
	ErrCodeStorageFailed    ErrorCode = "STORAGE_FAILED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
)

// RenderError is returned by renderers, templates and artifact stores
type RenderError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func NewRenderError(code ErrorCode, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }

// IsRenderErrorCode reports whether err wraps a RenderError with code
func IsRenderErrorCode(err error, code ErrorCode) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Code == code
}
