// Package models contains the GORM persistence models of the POS tables
// (clientes, produtos, vendas, venda_itens). They carry every ORM tag and
// table mapping so the domain types stay free of them; repositories convert
// between the two with the ToDomain/ToRecord/From* mappers.
package models
