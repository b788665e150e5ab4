package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Cart struct {
	ID      uuid.UUID  `json:"id"`
	OwnerID uuid.UUID  `json:"user_id"`
	Items   []CartItem `json:"items"`

	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription *string   `json:"product_description,omitempty"`
	ImageURL           *string   `json:"image_url,omitempty"`
	Quantity           int       `json:"quantity"`
	// Price is captured when the item is added and is not re-read at checkout.
	Price Money `json:"price"`
	Stock int   `json:"stock"`

	CreatedAt time.Time `json:"created_at"`
}

func (i CartItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}

// Total sums item subtotals. An empty cart totals zero in unit.
func (c Cart) Total(unit currency.Unit) Money {
	total := Money{Amount: decimal.Zero, Currency: unit}
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Round()
}

// CartSummary is the admin view of a non-empty cart.
type CartSummary struct {
	CartID     uuid.UUID         `json:"cart_id"`
	UserID     uuid.UUID         `json:"user_id"`
	UserEmail  string            `json:"user_email"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	ItemsCount int64             `json:"items_count"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Items      []CartSummaryLine `json:"items"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type CartSummaryLine struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CartStats struct {
	ActiveCarts     int64           `json:"total_active_carts"`
	TotalItems      int64           `json:"total_items"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	AvgItemsPerCart decimal.Decimal `json:"avg_items_per_cart"`
}
