package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Title         string            `json:"title,omitempty"`
	Message       string            `json:"message"`
	Fields        map[string]string `json:"fields,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON               = "INVALID_JSON"
	ErrCodeMissingInformation        = "MISSING_INFORMATION"
	ErrCodeEmptyCart                 = "EMPTY_CART"
	ErrCodeEmptyCouponCode           = "EMPTY_COUPON_CODE"
	ErrCodeCouponRejected            = "COUPON_REJECTED"
	ErrCodeInvalidCouponRule         = "INVALID_COUPON_RULE"
	ErrCodeCheckoutInProgress        = "CHECKOUT_IN_PROGRESS"
	ErrCodeOrderAwaitingConfirmation = "ORDER_AWAITING_CONFIRMATION"
	ErrCodeOrderFailed               = "ORDER_FAILED"
	ErrCodeSessionNotFound           = "SESSION_NOT_FOUND"
	ErrCodeInvalidQuantity           = "INVALID_QUANTITY"
	ErrCodeNotFound                  = "NOT_FOUND"
	ErrCodeBackendUnavailable        = "BACKEND_UNAVAILABLE"
	ErrCodeUnauthorised              = "UNAUTHORIZED"
	ErrCodeInternalError             = "INTERNAL_ERROR"
	ErrCodeInvalidRequestInput       = "INVALID_INPUT"
)

// DomainError is a business-level error carrying a stable code.
// Title is the short headline shown to shoppers alongside Message.
type DomainError struct {
	Code    string
	Title   string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so that wrapped copies compare equal
// to the package sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, title, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Title:   title,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingInformation        = NewDomainError(ErrCodeMissingInformation, "Missing Information", "Please fill in all required fields")
	ErrEmptyCart                 = NewDomainError(ErrCodeEmptyCart, "Empty Cart", "Your cart is empty")
	ErrEmptyCouponCode           = NewDomainError(ErrCodeEmptyCouponCode, "Invalid Coupon", "Please enter a coupon code")
	ErrCouponRejected            = NewDomainError(ErrCodeCouponRejected, "Invalid Coupon", "This coupon cannot be applied")
	ErrInvalidCouponRule         = NewDomainError(ErrCodeInvalidCouponRule, "Invalid Coupon", "Coupon rule is invalid")
	ErrCheckoutInProgress        = NewDomainError(ErrCodeCheckoutInProgress, "Checkout In Progress", "An order is already being placed for this cart")
	ErrOrderAwaitingConfirmation = NewDomainError(ErrCodeOrderAwaitingConfirmation, "Order Placed", "Your order was placed and is awaiting confirmation. Submit checkout again to confirm it before changing the cart.")
	ErrOrderFailed               = NewDomainError(ErrCodeOrderFailed, "Order Failed", "Failed to place order. Please try again.")
	ErrSessionNotFound           = NewDomainError(ErrCodeSessionNotFound, "Session Not Found", "Cart session not found or expired")
	ErrInvalidQuantity           = NewDomainError(ErrCodeInvalidQuantity, "Invalid Quantity", "Quantity must be a whole number")
	ErrInvalidInput              = NewDomainError(ErrCodeInvalidRequestInput, "Invalid Input", "Request contains invalid fields")
	ErrNotFound                  = NewDomainError(ErrCodeNotFound, "Not Found", "Resource not found")
)

// CouponRejected returns a coupon rejection carrying the backend's reason.
func CouponRejected(reason string) *DomainError {
	if reason == "" {
		return ErrCouponRejected
	}
	return NewDomainError(ErrCodeCouponRejected, ErrCouponRejected.Title, reason)
}

// OrderFailed wraps the error from the last order creation attempt.
func OrderFailed(err error) *DomainError {
	e := *ErrOrderFailed
	e.Err = err
	if err != nil {
		e.Message = err.Error()
	}
	return &e
}

// InvalidCouponRule describes why a coupon rule was refused.
func InvalidCouponRule(reason string) *DomainError {
	return NewDomainError(ErrCodeInvalidCouponRule, ErrInvalidCouponRule.Title, reason)
}

// MissingInformation lists the blank checkout fields.
func MissingInformation(fields map[string]string) *DomainError {
	e := *ErrMissingInformation
	e.Fields = fields
	return &e
}

// InvalidInput reports request fields that failed validation.
func InvalidInput(fields map[string]string) *DomainError {
	e := *ErrInvalidInput
	e.Fields = fields
	return &e
}

// NotFound names the missing resource.
func NotFound(resource string) *DomainError {
	return NewDomainError(ErrCodeNotFound, ErrNotFound.Title, resource+" not found")
}
