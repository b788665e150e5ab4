package service

import (
	"context"
	"fmt"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService struct {
	store port.Store
	cache port.CategoryCache
	log   *zap.Logger
}

// NewCatalogService accepts a nil cache; categories are then always read from the store.
func NewCatalogService(store port.Store, cache port.CategoryCache, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, cache: cache, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, domain.PageInfo, error) {
	products, total, err := s.store.Repositories().Products.List(ctx, filter)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("repos.Products.List: %w", err)
	}
	return products, domain.NewPageInfo(filter.Page, total), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.store.Repositories().Products.Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product domain.NewProduct) (domain.Product, error) {
	return s.store.Repositories().Products.Create(ctx, product)
}

// CreateProducts creates each product independently; failures are collected, not fatal.
func (s *CatalogService) CreateProducts(ctx context.Context, products []domain.NewProduct) (domain.BulkResult, error) {
	if len(products) == 0 {
		return domain.BulkResult{}, domain.Validation("products must be a non-empty array")
	}

	repos := s.store.Repositories()
	result := domain.BulkResult{Created: make([]domain.Product, 0, len(products))}

	for _, product := range products {
		created, err := repos.Products.Create(ctx, product)
		if err != nil {
			if domain.KindOf(err) == domain.KindInternal {
				logger.FromContext(ctx, s.log).Error("bulk product create failed",
					zap.String("product", product.Name), zap.Error(err))
			}
			result.Failed = append(result.Failed, domain.BulkItemError{
				Product: product.Name,
				Error:   publicMessage(err),
			})
			continue
		}
		result.Created = append(result.Created, created)
	}

	return result, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (domain.Product, error) {
	return s.store.Repositories().Products.Update(ctx, id, patch)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.store.Repositories().Products.Deactivate(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	log := logger.FromContext(ctx, s.log)

	if s.cache != nil {
		categories, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn("category cache read failed", zap.Error(err))
		} else if ok {
			return categories, nil
		}
	}

	categories, err := s.store.Repositories().Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("repos.Categories.List: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			log.Warn("category cache write failed", zap.Error(err))
		}
	}

	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return s.store.Repositories().Categories.Get(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category domain.NewCategory) (domain.Category, error) {
	created, err := s.store.Repositories().Categories.Create(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	s.invalidateCategories(ctx)
	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (domain.Category, error) {
	updated, err := s.store.Repositories().Categories.Update(ctx, id, patch)
	if err != nil {
		return domain.Category{}, err
	}
	s.invalidateCategories(ctx)
	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Repositories().Categories.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx, s.log).Warn("category cache invalidation failed", zap.Error(err))
	}
}

// publicMessage hides internal error details.
func publicMessage(err error) string {
	if domain.KindOf(err) == domain.KindInternal {
		return "Internal server error"
	}
	return err.Error()
}
