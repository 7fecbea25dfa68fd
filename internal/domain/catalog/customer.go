package catalog

import "strings"

// Customer is a buyer as fetched from the store. It is never mutated by the sale engine;
// carts and sales refer to it by ID.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	TaxID   string `json:"cpf"`
	Address string `json:"endereco"`
	Phone   string `json:"telefone"`
}

// Matches reports whether the customer satisfies a search query:
// a case-insensitive substring of the name, or a substring of the tax id.
// An empty query matches every customer.
func (c Customer) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.TaxID, q)
}
