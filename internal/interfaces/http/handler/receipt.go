package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReceiptRegenerator rebuilds receipts of persisted sales
type ReceiptRegenerator interface {
	Regenerate(ctx context.Context, saleID int64) (*receipt.Document, error)
	RegenerateHTML(ctx context.Context, saleID int64) ([]byte, error)
	RegeneratePDF(ctx context.Context, saleID int64) (*printing.Artifact, error)
}

// ArtifactReader opens stored receipt artifacts
type ArtifactReader interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// artifactPrefix is the only key namespace served by the download route
const artifactPrefix = "receipts/"

// ReceiptHandler serves receipts of registered sales
type ReceiptHandler struct {
	BaseHandler
	receipts  ReceiptRegenerator
	artifacts ArtifactReader
}

// NewReceiptHandler creates a new ReceiptHandler. artifacts may be nil, which
// disables artifact downloads.
func NewReceiptHandler(receipts ReceiptRegenerator, artifacts ArtifactReader) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, artifacts: artifacts}
}

// GetReceipt godoc
// @Summary      Get a sale receipt
// @Description  Regenerates the receipt of a registered sale as a JSON document, an HTML page or a PDF
// @Tags         receipts
// @Produce      json,html,application/pdf
// @Param        id path int true "Sale ID" minimum(1)
// @Param        format query string false "Representation" Enums(json, html, pdf) default(json)
// @Success      200 {object} dto.Response{data=receipt.Document}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/receipt [get]
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	var uri dto.SaleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.ValidationError(c, err)
		return
	}
	var query dto.ReceiptQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch query.Format {
	case "html":
		page, err := h.receipts.RegenerateHTML(ctx, uri.ID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Data(http.StatusOK, printing.ContentTypeHTML, page)
	case "pdf":
		artifact, err := h.receipts.RegeneratePDF(ctx, uri.ID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if !artifact.HasPDF() {
			// the sink falls back to HTML when no PDF renderer is available
			c.Data(http.StatusOK, printing.ContentTypeHTML, artifact.HTML)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="nfce-%d.pdf"`, uri.ID))
		c.Data(http.StatusOK, printing.ContentTypePDF, artifact.PDF)
	default:
		doc, err := h.receipts.Regenerate(ctx, uri.ID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, doc)
	}
}

// DownloadArtifact godoc
// @Summary      Download a receipt artifact
// @Description  Streams a stored receipt artifact. Only keys under receipts/ are served.
// @Tags         receipts
// @Produce      application/pdf,html
// @Param        key path string true "Artifact key, e.g. receipts/2026/03/41-uuid.pdf"
// @Success      200 {file} file
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /artifacts/{key} [get]
func (h *ReceiptHandler) DownloadArtifact(c *gin.Context) {
	if h.artifacts == nil {
		h.NotFound(c, "Artifact storage is not configured")
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !strings.HasPrefix(key, artifactPrefix) || strings.Contains(key, "..") {
		h.BadRequest(c, "Invalid artifact key")
		return
	}

	body, err := h.artifacts.Get(c.Request.Context(), key)
	if err != nil {
		if printing.IsRenderErrorCode(err, printing.ErrCodeNotFound) {
			h.NotFound(c, "Artifact not found")
			return
		}
		logger.GetGinLogger(c).Error("artifact download failed", zap.String("key", key), zap.Error(err))
		h.Error(c, http.StatusBadGateway, dto.ErrCodeInternal, "Failed to read artifact")
		return
	}
	defer body.Close()

	contentType := printing.ContentTypePDF
	if path.Ext(key) == ".html" {
		contentType = printing.ContentTypeHTML
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, path.Base(key)))
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
