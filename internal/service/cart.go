package service

import (
	"context"
	"fmt"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type CartService struct {
	store    port.Store
	currency currency.Unit
}

func NewCartService(store port.Store, unit currency.Unit) *CartService {
	return &CartService{store: store, currency: unit}
}

func (s *CartService) Currency() currency.Unit {
	return s.currency
}

func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	cart, err := s.store.Repositories().Carts.GetCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repos.Carts.GetCart: %w", err)
	}
	return cart, nil
}

// AddItem captures the product's current price. Adding a product already in the cart
// merges quantities; the merged quantity must still be covered by stock.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.Validation("quantity must be at least 1")
	}

	repos := s.store.Repositories()

	product, err := repos.Products.Get(ctx, productID)
	if err != nil {
		return domain.CartItem{}, err
	}

	existing, err := repos.Carts.ItemQuantity(ctx, userID, productID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("repos.Carts.ItemQuantity: %w", err)
	}

	if err := product.Purchasable(existing + quantity); err != nil {
		return domain.CartItem{}, err
	}

	item, err := repos.Carts.AddItem(ctx, userID, domain.CartItem{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		ImageURL:           product.ImageURL,
		Quantity:           quantity,
		Price:              domain.NewMoney(product.Price, s.currency),
		Stock:              product.Stock,
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("repos.Carts.AddItem: %w", err)
	}

	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return domain.Validation("quantity must be at least 1")
	}

	repos := s.store.Repositories()

	item, err := repos.Carts.GetItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	product, err := repos.Products.Get(ctx, item.ProductID)
	if err != nil {
		return err
	}

	if err := product.Purchasable(quantity); err != nil {
		return err
	}

	return repos.Carts.SetItemQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	deleted, err := s.store.Repositories().Carts.DeleteItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("repos.Carts.DeleteItem: %w", err)
	}
	if !deleted {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.store.Repositories().Carts.Clear(ctx, userID); err != nil {
		return fmt.Errorf("repos.Carts.Clear: %w", err)
	}
	return nil
}
