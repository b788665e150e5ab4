package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyberfanta/shopping-exercise/internal/db"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	if ownerID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		dbCart, err := q.EnsureCart(ctx, ownerID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.EnsureCart: %w", err)
		}

		rows, err := q.ListCartItems(ctx, dbCart.ID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.ListCartItems: %w", err)
		}

		items, err := mapListCartItemsRowsToDomain(rows)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("mapListCartItemsRowsToDomain: %w", err)
		}

		return domain.Cart{
			ID:        dbCart.ID,
			OwnerID:   dbCart.UserID,
			Items:     items,
			UpdatedAt: dbCart.UpdatedAt,
		}, nil
	})
}

func (r *cartRepository) ItemQuantity(ctx context.Context, ownerID, productID uuid.UUID) (int, error) {
	dbCart, err := r.q.GetCartByUserID(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("q.GetCartByUserID: %w", err)
	}

	item, err := r.q.GetCartItemByProduct(ctx, db.GetCartItemByProductParams{
		CartID:    dbCart.ID,
		ProductID: productID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("q.GetCartItemByProduct: %w", err)
	}

	return int(item.Quantity), nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID uuid.UUID, item domain.CartItem) (domain.CartItem, error) {
	if ownerID == uuid.Nil {
		return domain.CartItem{}, fmt.Errorf("ownerID is empty")
	}
	if item.Quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is not positive", item.Quantity)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.CartItem, error) {
		dbCart, err := q.EnsureCart(ctx, ownerID)
		if err != nil {
			return domain.CartItem{}, fmt.Errorf("q.EnsureCart: %w", err)
		}

		row, err := q.AddCartItem(ctx, db.AddCartItemParams{
			CartID:        dbCart.ID,
			ProductID:     item.ProductID,
			Quantity:      int32(item.Quantity),
			PriceAmount:   item.Price.Amount,
			PriceCurrency: item.Price.Currency.String(),
		})
		if err != nil {
			return domain.CartItem{}, fmt.Errorf("q.AddCartItem: %w", err)
		}

		if err := q.TouchCart(ctx, dbCart.ID); err != nil {
			return domain.CartItem{}, fmt.Errorf("q.TouchCart: %w", err)
		}

		added, err := mapCartItemToDomain(row)
		if err != nil {
			return domain.CartItem{}, fmt.Errorf("mapCartItemToDomain: %w", err)
		}

		added.ProductName = item.ProductName
		added.ProductDescription = item.ProductDescription
		added.ImageURL = item.ImageURL
		added.Stock = item.Stock

		return added, nil
	})
}

func (r *cartRepository) GetItem(ctx context.Context, ownerID, itemID uuid.UUID) (domain.CartItem, error) {
	row, err := r.q.GetCartItemForUser(ctx, db.GetCartItemForUserParams{
		ID:     itemID,
		UserID: ownerID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("q.GetCartItemForUser: %w", err)
	}

	item, err := mapCartItemToDomain(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapCartItemToDomain: %w", err)
	}

	return item, nil
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		item, err := q.GetCartItemForUser(ctx, db.GetCartItemForUserParams{
			ID:     itemID,
			UserID: ownerID,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return struct{}{}, domain.ErrCartItemNotFound
		}
		if err != nil {
			return struct{}{}, fmt.Errorf("q.GetCartItemForUser: %w", err)
		}

		if _, err := q.SetCartItemQuantity(ctx, db.SetCartItemQuantityParams{
			ID:       item.ID,
			Quantity: int32(quantity),
		}); err != nil {
			return struct{}{}, fmt.Errorf("q.SetCartItemQuantity: %w", err)
		}

		if err := q.TouchCart(ctx, item.CartID); err != nil {
			return struct{}{}, fmt.Errorf("q.TouchCart: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) (bool, error) {
	if ownerID == uuid.Nil {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteCartItemForUser(ctx, db.DeleteCartItemForUserParams{
		ID:     itemID,
		UserID: ownerID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartItemForUser: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteCartItemsByUser(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteCartItemsByUser: %w", err)
	}

	return rowsAffected, nil
}

// CheckoutLines locks the cart row until the surrounding transaction ends, so a second
// checkout of the same cart waits and then reads the cleared cart.
func (r *cartRepository) CheckoutLines(ctx context.Context, ownerID uuid.UUID) ([]domain.CheckoutLine, error) {
	dbCart, err := r.q.GetCartByUserIDForUpdate(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetCartByUserIDForUpdate: %w", err)
	}

	rows, err := r.q.ListCheckoutLines(ctx, dbCart.ID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCheckoutLines: %w", err)
	}

	lines := make([]domain.CheckoutLine, 0, len(rows))
	for _, row := range rows {
		unit, err := currency.ParseISO(row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
		}

		lines = append(lines, domain.CheckoutLine{
			CartItemID:         row.ID,
			ProductID:          row.ProductID,
			ProductName:        row.ProductName,
			ProductDescription: row.ProductDescription,
			Quantity:           int(row.Quantity),
			UnitPrice:          domain.NewMoney(row.PriceAmount, unit),
			Stock:              int(row.Stock),
		})
	}

	return lines, nil
}

func (r *cartRepository) ListNonEmpty(ctx context.Context, page domain.Page) ([]domain.CartSummary, int64, error) {
	rows, err := r.q.ListNonEmptyCarts(ctx, db.ListNonEmptyCartsParams{
		Limit:  int32(page.Limit),
		Offset: int32(page.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListNonEmptyCarts: %w", err)
	}

	total, err := r.q.CountNonEmptyCarts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountNonEmptyCarts: %w", err)
	}

	summaries := make([]domain.CartSummary, 0, len(rows))
	for _, row := range rows {
		lines, err := r.summaryLines(ctx, row.ID)
		if err != nil {
			return nil, 0, err
		}

		summaries = append(summaries, domain.CartSummary{
			CartID:     row.ID,
			UserID:     row.UserID,
			UserEmail:  row.Email,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			ItemsCount: row.ItemsCount,
			Subtotal:   row.Subtotal.Round(2),
			Items:      lines,
			UpdatedAt:  row.UpdatedAt,
		})
	}

	return summaries, total, nil
}

func (r *cartRepository) Summary(ctx context.Context, ownerID uuid.UUID) (domain.CartSummary, error) {
	row, err := r.q.GetCartWithUser(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartSummary{}, domain.ErrCartNotFound
	}
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("q.GetCartWithUser: %w", err)
	}

	lines, err := r.summaryLines(ctx, row.ID)
	if err != nil {
		return domain.CartSummary{}, err
	}

	return domain.CartSummary{
		CartID:     row.ID,
		UserID:     row.UserID,
		UserEmail:  row.Email,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		ItemsCount: row.ItemsCount,
		Subtotal:   row.Subtotal.Round(2),
		Items:      lines,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (r *cartRepository) Stats(ctx context.Context) (domain.CartStats, error) {
	row, err := r.q.CartStats(ctx)
	if err != nil {
		return domain.CartStats{}, fmt.Errorf("q.CartStats: %w", err)
	}

	avg := decimal.Zero
	if row.ActiveCarts > 0 {
		avg = decimal.NewFromInt(row.TotalItems).Div(decimal.NewFromInt(row.ActiveCarts)).Round(2)
	}

	return domain.CartStats{
		ActiveCarts:     row.ActiveCarts,
		TotalItems:      row.TotalItems,
		TotalQuantity:   row.TotalQuantity,
		TotalValue:      row.TotalValue.Round(2),
		AvgItemsPerCart: avg,
	}, nil
}

func (r *cartRepository) summaryLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartSummaryLine, error) {
	rows, err := r.q.ListCartItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCartItems: %w", err)
	}

	lines := make([]domain.CartSummaryLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CartSummaryLine{
			ID:          row.ID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Price:       row.PriceAmount,
			Quantity:    int(row.Quantity),
			Subtotal:    row.PriceAmount.Mul(decimal.NewFromInt(int64(row.Quantity))).Round(2),
		})
	}

	return lines, nil
}

func mapCartItemToDomain(row db.CartItem) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartItem{
		ID:        row.ID,
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapListCartItemsRowToDomain(row db.ListCartItemsRow) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartItem{
		ID:                 row.ID,
		ProductID:          row.ProductID,
		ProductName:        row.ProductName,
		ProductDescription: row.ProductDescription,
		ImageURL:           row.ImageUrl,
		Quantity:           int(row.Quantity),
		Price:              domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Stock:              int(row.Stock),
		CreatedAt:          row.CreatedAt,
	}, nil
}

func mapListCartItemsRowsToDomain(rows []db.ListCartItemsRow) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, 0, len(rows))

	for _, row := range rows {
		item, err := mapListCartItemsRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapListCartItemsRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
