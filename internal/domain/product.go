package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID           `json:"id"`
	CategoryID    *uuid.UUID          `json:"category_id,omitempty"`
	CategoryName  *string             `json:"category_name,omitempty"`
	Name          string              `json:"name"`
	Description   *string             `json:"description,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discount_price"`
	Stock         int                 `json:"stock"`
	ImageURL      *string             `json:"image_url,omitempty"`
	IsActive      bool                `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Purchasable reports whether qty units can be put into a cart right now.
func (p Product) Purchasable(qty int) error {
	if !p.IsActive {
		return ErrProductNotFound
	}
	if p.Stock < qty {
		return InsufficientStock(p.Name)
	}
	return nil
}

type NewProduct struct {
	CategoryID    *uuid.UUID          `json:"category_id"`
	Name          string              `json:"name" binding:"required"`
	Description   *string             `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discount_price"`
	Stock         int                 `json:"stock" binding:"min=0"`
	ImageURL      *string             `json:"image_url"`
}

func (p NewProduct) Validate() error {
	if p.Name == "" {
		return Validation("name is required")
	}
	if p.Price.IsNegative() {
		return Validation("price must be >= 0")
	}
	if p.Stock < 0 {
		return Validation("stock must be >= 0")
	}
	return nil
}

// ProductPatch holds optional fields; nil means unchanged.
type ProductPatch struct {
	CategoryID    *uuid.UUID       `json:"category_id"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Stock         *int             `json:"stock"`
	ImageURL      *string          `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
}

func (p ProductPatch) Empty() bool {
	return p.CategoryID == nil && p.Name == nil && p.Description == nil && p.Price == nil &&
		p.DiscountPrice == nil && p.Stock == nil && p.ImageURL == nil && p.IsActive == nil
}

func (p ProductPatch) Validate() error {
	if p.Empty() {
		return ErrNoFieldsToUpdate
	}
	if p.Price != nil && p.Price.IsNegative() {
		return Validation("price must be >= 0")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return Validation("stock must be >= 0")
	}
	return nil
}

type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     *string
	Page       Page
}

// BulkResult reports per-product outcomes of a bulk create.
type BulkResult struct {
	Created []Product       `json:"products"`
	Failed  []BulkItemError `json:"errors,omitempty"`
}

type BulkItemError struct {
	Product string `json:"product"`
	Error   string `json:"error"`
}

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewCategory struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

func (p CategoryPatch) Validate() error {
	if p.Name == nil && p.Description == nil && p.ImageURL == nil && p.IsActive == nil {
		return ErrNoFieldsToUpdate
	}
	return nil
}
