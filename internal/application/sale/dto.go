package sale

// CheckoutInput carries optional per-checkout overrides.
// The limits are the widths of vendas.vendedor and vendas.forma_pagamento.
type CheckoutInput struct {
	Seller        string `json:"vendedor" binding:"omitempty,max=100"`
	PaymentMethod string `json:"forma_pagamento" binding:"omitempty,max=30"`
}

// SelectCustomerInput selects the buyer of a session
type SelectCustomerInput struct {
	CustomerID int64 `json:"cliente_id" binding:"required,gt=0"`
}

// AddItemInput adds a product to a session cart.
// Quantity is validated by the cart so that its error is the domain one.
type AddItemInput struct {
	ProductID int64 `json:"produto_id"`
	Quantity  int   `json:"quantidade"`
}

// UpdateQuantityInput carries the raw quantity text typed by the user
type UpdateQuantityInput struct {
	Quantity string `json:"quantidade"`
}
