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
)

type categoryRepository struct {
	q *db.Queries
}

func NewCategory(pool *pgxpool.Pool) port.CategoryRepository {
	return &categoryRepository{q: db.New(pool)}
}

func NewCategoryWithTx(tx pgx.Tx) port.CategoryRepository {
	return &categoryRepository{q: db.New(tx)}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.ListActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListActiveCategories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, mapCategoryToDomain(row))
	}

	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	row, err := r.q.GetActiveCategory(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("q.GetActiveCategory: %w", err)
	}

	return mapCategoryToDomain(row), nil
}

func (r *categoryRepository) Create(ctx context.Context, category domain.NewCategory) (domain.Category, error) {
	if category.Name == "" {
		return domain.Category{}, domain.Validation("name is required")
	}

	row, err := r.q.CreateCategory(ctx, db.CreateCategoryParams{
		Name:        category.Name,
		Description: category.Description,
		ImageUrl:    category.ImageURL,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("q.CreateCategory: %w", err)
	}

	return mapCategoryToDomain(row), nil
}

func (r *categoryRepository) Update(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (domain.Category, error) {
	if err := patch.Validate(); err != nil {
		return domain.Category{}, err
	}

	row, err := r.q.UpdateCategory(ctx, db.UpdateCategoryParams{
		Name:        patch.Name,
		Description: patch.Description,
		ImageUrl:    patch.ImageURL,
		IsActive:    patch.IsActive,
		ID:          id,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("q.UpdateCategory: %w", err)
	}

	return mapCategoryToDomain(row), nil
}

func (r *categoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.q.DeactivateCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("q.DeactivateCategory: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func mapCategoryToDomain(row db.Category) domain.Category {
	return domain.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		ImageURL:    row.ImageUrl,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
