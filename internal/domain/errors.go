package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindPaymentDeclined
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPaymentDeclined:
		return "payment_declined"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Error is a user-visible failure with a stable machine-readable code.
// Two Errors match under errors.Is when their codes are equal.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrEmptyCart         = &Error{Kind: KindValidation, Code: "EMPTY_CART", Message: "Cart is empty"}
	ErrInsufficientStock = &Error{Kind: KindConflict, Code: "INSUFFICIENT_STOCK", Message: "Insufficient stock"}
	ErrAlreadyCancelled  = &Error{Kind: KindConflict, Code: "ALREADY_CANCELLED", Message: "Order already cancelled"}
	ErrAlreadyPaid       = &Error{Kind: KindConflict, Code: "ALREADY_PAID", Message: "Order already paid"}
	ErrInvalidTransition = &Error{Kind: KindForbidden, Code: "INVALID_TRANSITION", Message: "Order status does not allow this operation"}
	ErrPaymentDeclined   = &Error{Kind: KindPaymentDeclined, Code: "PAYMENT_DECLINED", Message: "Payment failed. Please try again."}

	ErrOrderNotFound    = &Error{Kind: KindNotFound, Code: "ORDER_NOT_FOUND", Message: "Order not found"}
	ErrProductNotFound  = &Error{Kind: KindNotFound, Code: "PRODUCT_NOT_FOUND", Message: "Product not found"}
	ErrCategoryNotFound = &Error{Kind: KindNotFound, Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
	ErrCartNotFound     = &Error{Kind: KindNotFound, Code: "CART_NOT_FOUND", Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Kind: KindNotFound, Code: "CART_ITEM_NOT_FOUND", Message: "Cart item not found"}
	ErrUserNotFound     = &Error{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "User not found"}

	ErrEmailTaken         = &Error{Kind: KindConflict, Code: "EMAIL_TAKEN", Message: "Email already registered"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	ErrWrongPassword      = &Error{Kind: KindUnauthorized, Code: "WRONG_PASSWORD", Message: "Current password is incorrect"}
	ErrAccountDisabled    = &Error{Kind: KindForbidden, Code: "ACCOUNT_DISABLED", Message: "Account is deactivated"}
	ErrInvalidToken       = &Error{Kind: KindValidation, Code: "INVALID_TOKEN", Message: "Invalid or expired token"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: "Unauthorized"}
	ErrForbidden          = &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "Access denied"}
	ErrNoFieldsToUpdate   = &Error{Kind: KindValidation, Code: "NO_FIELDS", Message: "No fields to update"}
	ErrRateLimited        = &Error{Kind: KindRateLimited, Code: "RATE_LIMITED", Message: "Too many requests, please try again later"}
	ErrRouteNotFound      = &Error{Kind: KindNotFound, Code: "ROUTE_NOT_FOUND", Message: "Route not found"}
)

// InsufficientStock names the product that could not be covered.
func InsufficientStock(productName string) error {
	return &Error{
		Kind:    KindConflict,
		Code:    ErrInsufficientStock.Code,
		Message: fmt.Sprintf("Insufficient stock for %s", productName),
	}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Code: "VALIDATION", Message: fmt.Sprintf(format, args...)}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Code: ErrForbidden.Code, Message: message}
}

// KindOf reports the kind of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
