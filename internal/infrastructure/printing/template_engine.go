package printing

import (
	"bytes"
	"html"
	"html/template"
	"maps"
	"strings"

	"github.com/edusabi/mobileFacul/internal/domain/receipt"
)

// TemplateEngine lays receipt documents out as printable HTML pages.
// Document text arrives already escaped, so the template embeds it through
// the "raw" function instead of letting html/template escape it twice.
type TemplateEngine struct {
	funcMap template.FuncMap
	content string
	tmpl    *template.Template
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithTemplateContent replaces the built-in 80 mm receipt layout
func WithTemplateContent(content string) TemplateEngineOption {
	return func(e *TemplateEngine) {
		if strings.TrimSpace(content) != "" {
			e.content = content
		}
	}
}

// WithTemplateFuncs adds extra template functions
func WithTemplateFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a template engine with the default receipt layout.
// It panics if the layout does not parse, like template.Must.
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e, err := newTemplateEngine(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// NewTemplateEngineE is NewTemplateEngine returning the parse error instead of panicking
func NewTemplateEngineE(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	return newTemplateEngine(opts...)
}

func newTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{
		content: receiptTemplate,
		funcMap: template.FuncMap{
			"raw":      raw,
			"rawURL":   rawURL,
			"upper":    strings.ToUpper,
			"join":     strings.Join,
			"notEmpty": notEmpty,
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	tmpl, err := template.New("receipt").Funcs(e.funcMap).Parse(e.content)
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to parse receipt template", err)
	}
	e.tmpl = tmpl
	return e, nil
}

// RenderHTML renders a receipt document as a complete HTML page
func (e *TemplateEngine) RenderHTML(doc *receipt.Document) ([]byte, error) {
	if doc == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "receipt document is nil", nil)
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, doc); err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to execute receipt template", err)
	}
	return buf.Bytes(), nil
}

// raw embeds text that is already escaped
func raw(s string) template.HTML {
	return template.HTML(s) // #nosec G203 -- document fields are escaped by the generator
}

func notEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// rawURL turns an escaped URL back into a URL value for attribute context,
// where html/template applies its own escaping
func rawURL(s string) template.URL {
	return template.URL(html.UnescapeString(s)) // #nosec G203 -- built from store profile constants
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>NFC-e {{raw .Emission.Number}}</title>
<style>
  @page { margin: 0; size: 80mm auto; }
  body { font-family: 'Courier New', Courier, monospace; font-size: 10px; background: #fff; margin: 0; padding: 10px; color: #000; }
  .container { max-width: 300px; margin: 0 auto; }
  .center { text-align: center; }
  .bold { font-weight: bold; }
  .dashed { border-top: 1px dashed #000; margin: 5px 0; }
  .section { margin-bottom: 8px; }
  .header-info { font-size: 11px; }
  .title { font-size: 12px; font-weight: bold; margin: 5px 0; }
  .small { font-size: 9px; }
  .row { display: flex; justify-content: space-between; }
  .item { margin-bottom: 5px; }
  .qr { width: 120px; height: 120px; }
</style>
</head>
<body>
<div class="container">
  <div class="center section header-info">
    <div class="bold" style="font-size:14px;">{{raw .Header.Name}}</div>
    <div>CNPJ: {{raw .Header.TaxID}}</div>
    {{- range .Header.AddressLines}}
    <div>{{raw .}}</div>
    {{- end}}
    {{- if notEmpty .Header.Phone}}
    <div>Tel: {{raw .Header.Phone}}</div>
    {{- end}}
  </div>
  <div class="dashed"></div>
  <div class="center section">
    {{- range $i, $line := .Notice}}
    {{- if eq $i 0}}
    <div class="title">{{raw $line}}</div>
    {{- else}}
    <div class="small">{{raw $line}}</div>
    {{- end}}
    {{- end}}
  </div>
  <div class="dashed"></div>
  <div class="section">
    <div class="bold" style="margin-bottom:4px;">ITEM CÓDIGO DESCRIÇÃO</div>
    <div class="bold row" style="margin-bottom:4px;"><span>QTD. UN. VL.UNIT</span><span>VL.TOTAL</span></div>
    {{- range .Items}}
    <div class="item">
      <div class="bold">{{raw .Heading}}</div>
      <div class="row"><span>{{raw .QuantityText}}</span><span>{{raw .TotalText}}</span></div>
    </div>
    {{- end}}
  </div>
  <div class="dashed"></div>
  <div class="section">
    <div class="bold row"><span>QTD. TOTAL DE ITENS</span><span>{{.Totals.TotalQuantity}}</span></div>
    <div class="bold row" style="font-size:14px; margin-top:5px;"><span>VALOR TOTAL R$</span><span>{{raw .Totals.Total}}</span></div>
    <div class="row" style="margin-top:5px;"><span>FORMA DE PAGAMENTO</span><span>VALOR PAGO</span></div>
    <div class="row"><span>{{raw .Totals.PaymentMethod}}</span><span>{{raw .Totals.AmountPaid}}</span></div>
  </div>
  <div class="dashed"></div>
  <div class="center section">
    <div class="bold">{{raw .Emission.Mode}}</div>
    <div>Número: {{raw .Emission.Number}} Série: {{raw .Emission.Series}}</div>
    <div>Emissão: {{raw .Emission.IssuedAt}}</div>
    <div style="margin-top:5px;">Consulte pela Chave de Acesso em:</div>
    <div>{{raw .Emission.ConsultURL}}</div>
    <div class="bold small" style="margin-top:3px;">CHAVE DE ACESSO</div>
    <div class="small" style="letter-spacing:0.5px;">{{raw .Emission.AccessKey}}</div>
  </div>
  <div class="dashed"></div>
  <div class="center section">
    {{- if .Consumer.Identified}}
    <div class="bold">{{raw .Consumer.Label}}</div>
    <div>CPF: {{raw .Consumer.TaxID}}</div>
    <div>{{raw .Consumer.Name}}</div>
    <div class="small">{{raw .Consumer.Address}}</div>
    {{- else}}
    <div class="bold">CONSUMIDOR</div>
    <div>{{raw .Consumer.Label}}</div>
    {{- end}}
  </div>
  <div class="dashed"></div>
  <div class="center section">
    <div class="small" style="margin-bottom:5px;">Consulta via Leitor de QR Code</div>
    <img class="qr" src="{{rawURL .Authorization.QRCodeURL}}" alt="QR Code"/>
    <div class="small" style="margin-top:5px;">Protocolo de Autorização: {{raw .Authorization.Protocol}}</div>
  </div>
  <div class="dashed"></div>
  <div class="center section small">{{raw .TaxLegend}}</div>
  <div class="center bold" style="margin-top:10px; font-size:11px;">{{raw .Footer}}</div>
</div>
</body>
</html>
`
