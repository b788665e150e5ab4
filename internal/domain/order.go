package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type ShippingAddress struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// Order header fields other than Status and PaymentStatus never change after creation.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	Subtotal        Money           `json:"subtotal"`
	Tax             Money           `json:"tax"`
	Shipping        Money           `json:"shipping"`
	Total           Money           `json:"total"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Notes           *string         `json:"notes,omitempty"`
	ItemsCount      int64           `json:"items_count,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a snapshot of the product at sale time.
type OrderItem struct {
	ID                 uuid.UUID `json:"id"`
	OrderID            uuid.UUID `json:"order_id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription *string   `json:"product_description,omitempty"`
	Quantity           int       `json:"quantity"`
	UnitPrice          Money     `json:"unit_price"`
	Subtotal           Money     `json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderWithUser is the admin listing row.
type OrderWithUser struct {
	Order
	UserEmail     string `json:"user_email"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
}

type CheckoutRequest struct {
	PaymentMethod   string
	ShippingAddress ShippingAddress
	Notes           *string
}

// CheckCancel reports whether the order may move to cancelled.
func (o Order) CheckCancel() error {
	switch o.Status {
	case OrderStatusCancelled:
		return ErrAlreadyCancelled
	case OrderStatusShipped, OrderStatusDelivered:
		return ErrInvalidTransition
	}
	return nil
}

// CheckPay reports whether a payment attempt is allowed.
func (o Order) CheckPay() error {
	if o.PaymentStatus == PaymentStatusPaid {
		return ErrAlreadyPaid
	}
	if o.Status != OrderStatusPending {
		return ErrInvalidTransition
	}
	return nil
}

// CheckAdvance reports whether fulfilment may move the order to next.
// Only confirmed -> shipped -> delivered is allowed.
func (o Order) CheckAdvance(next OrderStatus) error {
	switch {
	case o.Status == OrderStatusConfirmed && next == OrderStatusShipped:
		return nil
	case o.Status == OrderStatusShipped && next == OrderStatusDelivered:
		return nil
	}
	return ErrInvalidTransition
}

// VisibleTo hides other users' orders from non-admin principals.
func (o Order) VisibleTo(p Principal) bool {
	return p.IsAdmin() || o.UserID == p.UserID
}
