package models

import (
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// ClienteModel is the persistence model of a customer
type ClienteModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Nome     string `gorm:"column:nome;type:varchar(200);not null"`
	CPF      string `gorm:"column:cpf;type:varchar(20)"`
	Endereco string `gorm:"column:endereco;type:varchar(300)"`
	Telefone string `gorm:"column:telefone;type:varchar(30)"`
}

// TableName returns the table name for GORM
func (ClienteModel) TableName() string {
	return "clientes"
}

// ToDomain converts the model to a domain Customer
func (m *ClienteModel) ToDomain() *catalog.Customer {
	return &catalog.Customer{
		ID:      m.ID,
		Name:    m.Nome,
		TaxID:   m.CPF,
		Address: m.Endereco,
		Phone:   m.Telefone,
	}
}

// ProdutoModel is the persistence model of a product.
// Price and cost are read as text; the catalog normalizes them.
type ProdutoModel struct {
	ID      int64   `gorm:"primaryKey;autoIncrement"`
	Nome    string  `gorm:"column:nome;type:varchar(200);not null"`
	Preco   string  `gorm:"column:preco"`
	Custo   *string `gorm:"column:custo"`
	Estoque int     `gorm:"column:estoque;not null;default:0"`
}

// TableName returns the table name for GORM
func (ProdutoModel) TableName() string {
	return "produtos"
}

// ToRecord converts the model to its stored representation in the domain
func (m *ProdutoModel) ToRecord() catalog.ProductRecord {
	return catalog.ProductRecord{
		ID:    m.ID,
		Name:  m.Nome,
		Price: m.Preco,
		Cost:  m.Custo,
		Stock: m.Estoque,
	}
}

// VendaModel is the persistence model of a sale header
type VendaModel struct {
	ID             int64            `gorm:"primaryKey;autoIncrement"`
	Numero         *string          `gorm:"column:numero;<-:false"`
	ClienteID      int64            `gorm:"column:cliente_id;not null;index"`
	Vendedor       string           `gorm:"column:vendedor;type:varchar(100)"`
	FormaPagamento string           `gorm:"column:forma_pagamento;type:varchar(30)"`
	Subtotal       decimal.Decimal  `gorm:"column:subtotal;type:decimal(12,2);not null"`
	Total          decimal.Decimal  `gorm:"column:total;type:decimal(12,2);not null"`
	Data           time.Time        `gorm:"column:data;autoCreateTime"`
	Cliente        *ClienteModel    `gorm:"foreignKey:ClienteID"`
	Itens          []VendaItemModel `gorm:"foreignKey:VendaID"`
}

// TableName returns the table name for GORM
func (VendaModel) TableName() string {
	return "vendas"
}

// FromHeader populates the model from a sale header
func (m *VendaModel) FromHeader(h sale.SaleHeader) {
	m.ClienteID = h.CustomerID
	m.Vendedor = h.Seller
	m.FormaPagamento = h.PaymentMethod
	m.Subtotal = h.Subtotal
	m.Total = h.Total
}

// ToDomain converts the header columns to a domain Sale
func (m *VendaModel) ToDomain() *sale.Sale {
	s := &sale.Sale{
		ID:            m.ID,
		CustomerID:    m.ClienteID,
		Seller:        m.Vendedor,
		PaymentMethod: m.FormaPagamento,
		Subtotal:      m.Subtotal,
		Total:         m.Total,
		CreatedAt:     m.Data,
	}
	if m.Numero != nil {
		s.Number = *m.Numero
	}
	return s
}

// ToComposed converts the model and its preloaded associations to a composed record
func (m *VendaModel) ToComposed() *sale.ComposedRecord {
	rec := &sale.ComposedRecord{
		Header: *m.ToDomain(),
		Lines:  make([]sale.ComposedLine, 0, len(m.Itens)),
	}
	if m.Cliente != nil {
		rec.Customer = m.Cliente.ToDomain()
	}
	for i := range m.Itens {
		item := &m.Itens[i]
		line := sale.ComposedLine{LineItemRecord: item.ToRecord()}
		if item.Produto != nil {
			name := item.Produto.Nome
			line.ProductName = &name
		}
		rec.Lines = append(rec.Lines, line)
	}
	return rec
}

// VendaItemModel is the persistence model of a sale line
type VendaItemModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	VendaID    int64           `gorm:"column:venda_id;not null;index"`
	ProdutoID  int64           `gorm:"column:produto_id;not null"`
	Quantidade int             `gorm:"column:quantidade;not null"`
	ValorUnit  decimal.Decimal `gorm:"column:valor_unit;type:decimal(12,2);not null"`
	Total      decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null"`
	Produto    *ProdutoModel   `gorm:"foreignKey:ProdutoID"`
}

// TableName returns the table name for GORM
func (VendaItemModel) TableName() string {
	return "venda_itens"
}

// VendaItemFromRecord builds a line model from its domain record
func VendaItemFromRecord(r sale.LineItemRecord) VendaItemModel {
	return VendaItemModel{
		VendaID:    r.SaleID,
		ProdutoID:  r.ProductID,
		Quantidade: r.Quantity,
		ValorUnit:  r.UnitValue,
		Total:      r.Total,
	}
}

// ToRecord converts the model to a domain line record
func (m *VendaItemModel) ToRecord() sale.LineItemRecord {
	return sale.LineItemRecord{
		SaleID:    m.VendaID,
		ProductID: m.ProdutoID,
		Quantity:  m.Quantidade,
		UnitValue: m.ValorUnit,
		Total:     m.Total,
	}
}

// AllModels returns the models in dependency order, for AutoMigrate in tests
func AllModels() []any {
	return []any{&ClienteModel{}, &ProdutoModel{}, &VendaModel{}, &VendaItemModel{}}
}
