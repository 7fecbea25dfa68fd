package receipt

import (
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaxRate is the illustrative rate used for the "Lei 12.741" tax estimate
var TaxRate = decimal.RequireFromString("0.18")

const (
	issuedAtLayout     = "02/01/2006 15:04:05"
	unidentifiedLabel  = "CONSUMIDOR NÃO IDENTIFICADO"
	identifiedLabel    = "CONSUMIDOR"
	emissionModeNormal = "EMISSÃO NORMAL"
	taxLegendPrefix    = "Tributos Totais Incidentes (Lei Federal 12.741/2012): R$ "
)

// StoreProfile holds the issuer data and fiscal presentation constants
type StoreProfile struct {
	Name            string
	TaxID           string
	AddressLines    []string
	Phone           string
	ConsultURL      string
	QRCodeBaseURL   string
	Series          string
	DefaultNumber   string
	AccessKeyPrefix string
	ProtocolPrefix  string
	Footer          string
}

// DefaultStoreProfile returns the profile of the saddlery the system was built for
func DefaultStoreProfile() StoreProfile {
	return StoreProfile{
		Name:            "SELARIA RAIMUNDO",
		TaxID:           "60.288.584/0001-74",
		AddressLines:    []string{"Rua das Selarias, SN - Centro", "Cachoeirinha - PE"},
		Phone:           "(81) 99306-0970",
		ConsultURL:      "http://nfce.sefaz.pe.gov.br/",
		QRCodeBaseURL:   "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=",
		Series:          "001",
		DefaultNumber:   "000000237",
		AccessKeyPrefix: "2623",
		ProtocolPrefix:  "3231",
		Footer:          "AGRADECEMOS A PREFERÊNCIA!",
	}
}

var defaultNotice = []string{
	"DANFE NFC-e - Documento Auxiliar",
	"da Nota Fiscal de Consumidor Eletrônica",
	"Não permite aproveitamento de crédito de ICMS",
}

// Option configures a Generator
type Option func(*Generator)

// WithDigitSource replaces the random source of access keys and protocols
func WithDigitSource(src DigitSource) Option {
	return func(g *Generator) {
		if src != nil {
			g.digits = src
		}
	}
}

// WithLocation sets the time zone used to print the issue date
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// Generator turns sale projections into receipt documents.
// Apart from the access key and protocol it is deterministic.
type Generator struct {
	profile StoreProfile
	digits  DigitSource
	loc     *time.Location
}

// NewGenerator creates a receipt generator
func NewGenerator(profile StoreProfile, opts ...Option) *Generator {
	g := &Generator{
		profile: profile,
		digits:  RandomDigits(),
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the receipt document of a projection
func (g *Generator) Generate(p *sale.Projection) *Document {
	upper := cases.Upper(language.BrazilianPortuguese)
	accessKey := AccessKey(g.digits, g.profile.AccessKeyPrefix)

	doc := &Document{
		SaleID: p.SaleID,
		Header: StoreHeader{
			Name:         Escape(g.profile.Name),
			TaxID:        Escape(g.profile.TaxID),
			AddressLines: escapeAll(g.profile.AddressLines),
			Phone:        Escape(g.profile.Phone),
		},
		Notice: escapeAll(defaultNotice),
		Items:  make([]ItemLine, 0, len(p.Lines)),
		Totals: Totals{
			TotalQuantity: p.TotalQuantity(),
			Subtotal:      money(p.Subtotal),
			Total:         money(p.Total),
			PaymentMethod: Escape(p.PaymentMethod),
			AmountPaid:    money(p.Total),
			TaxEstimate:   money(TaxEstimate(p.Total)),
		},
		Emission: Emission{
			Mode:       emissionModeNormal,
			Number:     Escape(g.number(p.Number)),
			Series:     Escape(g.profile.Series),
			IssuedAt:   p.IssuedAt.In(g.loc).Format(issuedAtLayout),
			ConsultURL: Escape(g.profile.ConsultURL),
			AccessKey:  accessKey,
		},
		Consumer: consumer(p),
		Authorization: Authorization{
			QRCodeURL: Escape(g.profile.QRCodeBaseURL + StripSpaces(accessKey)),
			Protocol:  Protocol(g.digits, g.profile.ProtocolPrefix),
		},
		Footer: Escape(g.profile.Footer),
	}
	doc.TaxLegend = taxLegendPrefix + doc.Totals.TaxEstimate

	for idx, line := range p.Lines {
		doc.Items = append(doc.Items, ItemLine{
			Index:     idx + 1,
			Name:      Escape(upper.String(line.ProductName)),
			Quantity:  line.Quantity,
			UnitValue: money(line.UnitValue),
			Total:     money(line.Total),
		})
	}

	return doc
}

// TaxEstimate is total × TaxRate rounded to monetary precision
func TaxEstimate(total decimal.Decimal) decimal.Decimal {
	return valueobject.NewReais(total).Scale(TaxRate).Round().Decimal()
}

func (g *Generator) number(n string) string {
	if n == "" {
		return g.profile.DefaultNumber
	}
	return n
}

func consumer(p *sale.Projection) Consumer {
	if p.Customer == nil {
		return Consumer{Label: unidentifiedLabel}
	}
	return Consumer{
		Identified: true,
		TaxID:      Escape(p.Customer.TaxID),
		Name:       Escape(p.Customer.Name),
		Address:    Escape(p.Customer.Address),
		Label:      identifiedLabel,
	}
}

func money(d decimal.Decimal) string {
	return valueobject.DecimalComma(d)
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Escape(s)
	}
	return out
}
