package domain

import (
	"github.com/google/uuid"
)

// CheckoutLine is a cart item joined with live product data, read inside the checkout transaction.
type CheckoutLine struct {
	CartItemID         uuid.UUID
	ProductID          uuid.UUID
	ProductName        string
	ProductDescription *string
	Quantity           int
	UnitPrice          Money
	Stock              int
}

// ValidateStock fails on the first line whose live stock does not cover the requested quantity.
func ValidateStock(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	for _, line := range lines {
		if line.Stock < line.Quantity {
			return InsufficientStock(line.ProductName)
		}
	}

	return nil
}

// Snapshot copies the product attributes of line into an order item of orderID.
func (l CheckoutLine) Snapshot(orderID uuid.UUID) OrderItem {
	return OrderItem{
		OrderID:            orderID,
		ProductID:          l.ProductID,
		ProductName:        l.ProductName,
		ProductDescription: l.ProductDescription,
		Quantity:           l.Quantity,
		UnitPrice:          l.UnitPrice.Round(),
		Subtotal:           l.UnitPrice.Mul(l.Quantity).Round(),
	}
}
