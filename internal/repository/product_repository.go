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
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: db.New(pool)}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{q: db.New(tx)}
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	rows, err := r.q.ListActiveProducts(ctx, db.ListActiveProductsParams{
		CategoryID: filter.CategoryID,
		Search:     filter.Search,
		Lim:        int32(filter.Page.Limit),
		Off:        int32(filter.Page.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListActiveProducts: %w", err)
	}

	total, err := r.q.CountActiveProducts(ctx, db.CountActiveProductsParams{
		CategoryID: filter.CategoryID,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountActiveProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.Product{
			ID:            row.ID,
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			Name:          row.Name,
			Description:   row.Description,
			Price:         row.Price,
			DiscountPrice: row.DiscountPrice,
			Stock:         int(row.Stock),
			ImageURL:      row.ImageUrl,
			IsActive:      row.IsActive,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}

	return products, total, nil
}

func (r *productRepository) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetActiveProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetActiveProduct: %w", err)
	}

	return domain.Product{
		ID:            row.ID,
		CategoryID:    row.CategoryID,
		CategoryName:  row.CategoryName,
		Name:          row.Name,
		Description:   row.Description,
		Price:         row.Price,
		DiscountPrice: row.DiscountPrice,
		Stock:         int(row.Stock),
		ImageURL:      row.ImageUrl,
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func (r *productRepository) Create(ctx context.Context, product domain.NewProduct) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		CategoryID:    product.CategoryID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Stock:         int32(product.Stock),
		ImageUrl:      product.ImageURL,
	})
	if isForeignKeyViolation(err) {
		return domain.Product{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	return mapProductToDomain(row), nil
}

func (r *productRepository) Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (domain.Product, error) {
	if err := patch.Validate(); err != nil {
		return domain.Product{}, err
	}

	params := db.UpdateProductParams{
		CategoryID:  patch.CategoryID,
		Name:        patch.Name,
		Description: patch.Description,
		ImageUrl:    patch.ImageURL,
		IsActive:    patch.IsActive,
		ID:          id,
	}
	if patch.Price != nil {
		params.Price = decimal.NewNullDecimal(*patch.Price)
	}
	if patch.DiscountPrice != nil {
		params.DiscountPrice = decimal.NewNullDecimal(*patch.DiscountPrice)
	}
	if patch.Stock != nil {
		stock := int32(*patch.Stock)
		params.Stock = &stock
	}

	row, err := r.q.UpdateProduct(ctx, params)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if isForeignKeyViolation(err) {
		return domain.Product{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.UpdateProduct: %w", err)
	}

	return mapProductToDomain(row), nil
}

func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.q.DeactivateProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("q.DeactivateProduct: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Stock(ctx context.Context, id uuid.UUID) (int, error) {
	stock, err := r.q.GetProductStock(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("q.GetProductStock: %w", err)
	}
	return int(stock), nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	rowsAffected, err := r.q.DecrementStock(ctx, db.DecrementStockParams{
		Quantity: int32(quantity),
		ID:       id,
	})
	if err != nil {
		return false, fmt.Errorf("q.DecrementStock: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	rowsAffected, err := r.q.IncrementStock(ctx, db.IncrementStockParams{
		Quantity: int32(quantity),
		ID:       id,
	})
	if err != nil {
		return fmt.Errorf("q.IncrementStock: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func mapProductToDomain(row db.Product) domain.Product {
	return domain.Product{
		ID:            row.ID,
		CategoryID:    row.CategoryID,
		Name:          row.Name,
		Description:   row.Description,
		Price:         row.Price,
		DiscountPrice: row.DiscountPrice,
		Stock:         int(row.Stock),
		ImageURL:      row.ImageUrl,
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
