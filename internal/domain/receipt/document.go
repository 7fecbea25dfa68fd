package receipt

import "strconv"

// Document is the structured description of an NFC-e style auxiliary receipt.
// Every text field is already escaped for markup and can be embedded as is.
type Document struct {
	SaleID        int64         `json:"sale_id"`
	Header        StoreHeader   `json:"header"`
	Notice        []string      `json:"notice"`
	Items         []ItemLine    `json:"items"`
	Totals        Totals        `json:"totals"`
	Emission      Emission      `json:"emission"`
	Consumer      Consumer      `json:"consumer"`
	Authorization Authorization `json:"authorization"`
	TaxLegend     string        `json:"tax_legend"`
	Footer        string        `json:"footer"`
}

// StoreHeader identifies the issuing store
type StoreHeader struct {
	Name         string   `json:"name"`
	TaxID        string   `json:"tax_id"`
	AddressLines []string `json:"address_lines"`
	Phone        string   `json:"phone"`
}

// ItemLine is one itemized sale line
type ItemLine struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitValue string `json:"unit_value"`
	Total     string `json:"total"`
}

// Heading is the "<n>. <NAME>" line
func (l ItemLine) Heading() string {
	return strconv.Itoa(l.Index) + ". " + l.Name
}

// QuantityText is the "<q> UN x <unit>" column
func (l ItemLine) QuantityText() string {
	return strconv.Itoa(l.Quantity) + " UN x " + l.UnitValue
}

// TotalText is the "R$ <total>" column
func (l ItemLine) TotalText() string {
	return "R$ " + l.Total
}

// Summary joins both columns of the line
func (l ItemLine) Summary() string {
	return l.QuantityText() + " / " + l.TotalText()
}

// Totals is the financial summary block
type Totals struct {
	TotalQuantity int    `json:"total_quantity"`
	Subtotal      string `json:"subtotal"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method"`
	AmountPaid    string `json:"amount_paid"`
	TaxEstimate   string `json:"tax_estimate"`
}

// Emission carries numbering, issue date and the access key
type Emission struct {
	Mode       string `json:"mode"`
	Number     string `json:"number"`
	Series     string `json:"series"`
	IssuedAt   string `json:"issued_at"`
	ConsultURL string `json:"consult_url"`
	AccessKey  string `json:"access_key"`
}

// Consumer identifies the buyer, or says it is not identified
type Consumer struct {
	Identified bool   `json:"identified"`
	TaxID      string `json:"tax_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Address    string `json:"address,omitempty"`
	Label      string `json:"label"`
}

// Authorization is the QR code and protocol block
type Authorization struct {
	QRCodeURL string `json:"qr_code_url"`
	Protocol  string `json:"protocol"`
}
