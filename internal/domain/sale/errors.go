package sale

import (
	"errors"

	"github.com/edusabi/mobileFacul/internal/domain/shared"
)

// Validation errors. They block the action and carry no side effects.
var (
	ErrInvalidQuantity    = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	ErrNoProductSelected  = shared.NewDomainError("NO_PRODUCT_SELECTED", "Select a product first")
	ErrNoCustomerSelected = shared.NewDomainError("NO_CUSTOMER_SELECTED", "Select a customer before finishing the sale")
	ErrEmptyCart          = shared.NewDomainError("EMPTY_CART", "Add products to the cart")
)

// Remote-store and rendering errors.
var (
	ErrDataUnavailable      = shared.NewDomainError("DATA_UNAVAILABLE", "Catalog data could not be loaded")
	ErrHeaderWriteFailed    = shared.NewDomainError("HEADER_WRITE_FAILED", "Failed to register the sale")
	ErrItemsWriteFailed     = shared.NewDomainError("ITEMS_WRITE_FAILED", "Sale registered but its items could not be saved; the record may be incomplete")
	ErrComposedReadFailed   = shared.NewDomainError("COMPOSED_READ_FAILED", "Failed to read back the composed sale")
	ErrDocumentRenderFailed = shared.NewDomainError("DOCUMENT_RENDER_FAILED", "Sale registered but the receipt could not be generated")
	ErrCheckoutInProgress   = shared.NewDomainError("CHECKOUT_IN_PROGRESS", "A checkout is already running for this cart")
)

// IsValidationError reports whether err is one of the user-recoverable validation errors
func IsValidationError(err error) bool {
	for _, target := range []error{ErrInvalidQuantity, ErrNoProductSelected, ErrNoCustomerSelected, ErrEmptyCart} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
