package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(customer *catalog.Customer, productName string) *receipt.Document {
	g := receipt.NewGenerator(receipt.DefaultStoreProfile(),
		receipt.WithLocation(time.UTC),
		receipt.WithDigitSource(receipt.DigitSourceFunc(func(n int) int { return n - 1 })))
	return g.Generate(&sale.Projection{
		SaleID:        99,
		IssuedAt:      time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
		Seller:        "Raimundo",
		PaymentMethod: "PIX",
		Subtotal:      decimal.NewFromInt(400),
		Total:         decimal.NewFromInt(400),
		Customer:      customer,
		Lines: []sale.ProjectionLine{
			{ProductName: productName, Quantity: 2, UnitValue: decimal.NewFromInt(200), Total: decimal.NewFromInt(400)},
		},
	})
}

func TestTemplateEngine_RenderHTML(t *testing.T) {
	e := NewTemplateEngine()
	doc := sampleDocument(&catalog.Customer{ID: 1, Name: "Ana", TaxID: "123.456.789-00", Address: "Rua A"}, "Sela")

	page, err := e.RenderHTML(doc)
	require.NoError(t, err)
	html := string(page)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "size: 80mm auto;")
	assert.Contains(t, html, "SELARIA RAIMUNDO")
	assert.Contains(t, html, "1. SELA")
	assert.Contains(t, html, "2 UN x 200,00")
	assert.Contains(t, html, "R$ 400,00")
	assert.Contains(t, html, "<span>PIX</span><span>400,00</span>")
	assert.Contains(t, html, "CPF: 123.456.789-00")
	assert.Contains(t, html, "Número: 000000237 Série: 001")
	assert.Contains(t, html, "Emissão: 05/03/2024 14:07:09")
	assert.Contains(t, html, "R$ 72,00")
	assert.Contains(t, html, doc.Emission.AccessKey)
	assert.Contains(t, html, "AGRADECEMOS A PREFERÊNCIA!")
	assert.NotContains(t, html, "CONSUMIDOR NÃO IDENTIFICADO")
}

func TestTemplateEngine_NoDoubleEscaping(t *testing.T) {
	e := NewTemplateEngine()
	doc := sampleDocument(nil, `Sela "A&B" <premium>`)

	page, err := e.RenderHTML(doc)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "1. SELA &quot;A&amp;B&quot; &lt;PREMIUM&gt;")
	assert.NotContains(t, html, "&amp;amp;")
	assert.NotContains(t, html, "<PREMIUM>")
	assert.Contains(t, html, "CONSUMIDOR NÃO IDENTIFICADO")
	assert.Contains(t, html, `src="https://api.qrserver.com/v1/create-qr-code/?size=150x150&amp;data=2623`)
}

func TestTemplateEngine_NilDocument(t *testing.T) {
	_, err := NewTemplateEngine().RenderHTML(nil)
	assert.True(t, IsRenderErrorCode(err, ErrCodeInvalidHTML))
}

func TestTemplateEngine_CustomTemplate(t *testing.T) {
	e, err := NewTemplateEngineE(WithTemplateContent(`<p>{{raw .Totals.Total}} {{upper "pix"}}</p>`))
	require.NoError(t, err)

	page, err := e.RenderHTML(sampleDocument(nil, "Sela"))
	require.NoError(t, err)
	assert.Equal(t, "<p>400,00 PIX</p>", string(page))

	_, err = NewTemplateEngineE(WithTemplateContent(`{{.Broken`))
	assert.True(t, IsRenderErrorCode(err, ErrCodeTemplateFailed))
	assert.Panics(t, func() { NewTemplateEngine(WithTemplateContent(`{{end}}`)) })
}
