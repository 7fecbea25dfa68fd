package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Request validation error codes
const (
	// ErrCodeValidation is the base code for request validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeForbidden is used when the client may not reach a resource
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeCheckoutInProgress is used when a session already runs a checkout
	ErrCodeCheckoutInProgress = "ERR_CHECKOUT_IN_PROGRESS"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Sale rule error codes
const (
	ErrCodeInvalidQuantity    = "ERR_INVALID_QUANTITY"
	ErrCodeNoProductSelected  = "ERR_NO_PRODUCT_SELECTED"
	ErrCodeNoCustomerSelected = "ERR_NO_CUSTOMER_SELECTED"
	ErrCodeEmptyCart          = "ERR_EMPTY_CART"
	ErrCodeInvalidPrice       = "ERR_INVALID_PRICE"
)

// Remote step error codes
const (
	// ErrCodeDataUnavailable is used when the catalog could not be loaded
	ErrCodeDataUnavailable = "ERR_DATA_UNAVAILABLE"
	// ErrCodeHeaderWriteFailed is used when the sale header was not persisted
	ErrCodeHeaderWriteFailed = "ERR_HEADER_WRITE_FAILED"
	// ErrCodeItemsWriteFailed is used when the header was persisted without its items
	ErrCodeItemsWriteFailed = "ERR_ITEMS_WRITE_FAILED"
	// ErrCodeComposedReadFailed is used when a persisted sale could not be read back
	ErrCodeComposedReadFailed = "ERR_COMPOSED_READ_FAILED"
	// ErrCodeDocumentRenderFailed is used when a receipt could not be rendered or shared
	ErrCodeDocumentRenderFailed = "ERR_DOCUMENT_RENDER_FAILED"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Request errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Resource errors
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeCheckoutInProgress: http.StatusConflict,
	ErrCodeInvalidState:       http.StatusConflict,

	// Sale rules -> 422 Unprocessable Entity
	ErrCodeInvalidQuantity:    http.StatusUnprocessableEntity,
	ErrCodeNoProductSelected:  http.StatusUnprocessableEntity,
	ErrCodeNoCustomerSelected: http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:          http.StatusUnprocessableEntity,
	ErrCodeInvalidPrice:       http.StatusUnprocessableEntity,

	// Remote steps -> 502 Bad Gateway, catalog load -> 503
	ErrCodeDataUnavailable:      http.StatusServiceUnavailable,
	ErrCodeHeaderWriteFailed:    http.StatusBadGateway,
	ErrCodeItemsWriteFailed:     http.StatusBadGateway,
	ErrCodeComposedReadFailed:   http.StatusBadGateway,
	ErrCodeDocumentRenderFailed: http.StatusBadGateway,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_STATE":          ErrCodeInvalidState,
	"INVALID_PRICE":          ErrCodeInvalidPrice,
	"INVALID_QUANTITY":       ErrCodeInvalidQuantity,
	"NO_PRODUCT_SELECTED":    ErrCodeNoProductSelected,
	"NO_CUSTOMER_SELECTED":   ErrCodeNoCustomerSelected,
	"EMPTY_CART":             ErrCodeEmptyCart,
	"DATA_UNAVAILABLE":       ErrCodeDataUnavailable,
	"HEADER_WRITE_FAILED":    ErrCodeHeaderWriteFailed,
	"ITEMS_WRITE_FAILED":     ErrCodeItemsWriteFailed,
	"COMPOSED_READ_FAILED":   ErrCodeComposedReadFailed,
	"DOCUMENT_RENDER_FAILED": ErrCodeDocumentRenderFailed,
	"CHECKOUT_IN_PROGRESS":   ErrCodeCheckoutInProgress,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
