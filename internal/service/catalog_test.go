package service_test

import (
	"context"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryCategoryCache struct {
	mu          sync.Mutex
	categories  []domain.Category
	cached      bool
	hits        int
	invalidated int
}

func (c *memoryCategoryCache) Get(_ context.Context) ([]domain.Category, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cached {
		return nil, false, nil
	}
	c.hits++
	return c.categories, true, nil
}

func (c *memoryCategoryCache) Set(_ context.Context, categories []domain.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.categories = categories
	c.cached = true
	return nil
}

func (c *memoryCategoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.categories = nil
	c.cached = false
	c.invalidated++
	return nil
}

func (suite *serviceSuite) TestCategoriesCache() {
	t := suite.T()
	ctx := t.Context()

	cache := &memoryCategoryCache{}
	catalog := service.NewCatalogService(suite.store, cache, zaptest.NewLogger(t))

	created, err := catalog.CreateCategory(ctx, domain.NewCategory{Name: gofakeit.UUID()})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	first, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categoryIDs(first), created.ID)
	assert.Equal(t, 0, cache.hits)

	second, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, categoryIDs(first), categoryIDs(second))

	require.NoError(t, catalog.DeleteCategory(ctx, created.ID))
	assert.Equal(t, 2, cache.invalidated)

	after, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotContains(t, categoryIDs(after), created.ID)

	_, err = catalog.GetCategory(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func (suite *serviceSuite) TestCreateProducts() {
	t := suite.T()
	ctx := t.Context()

	catalog := service.NewCatalogService(suite.store, nil, zaptest.NewLogger(t))

	category, err := catalog.CreateCategory(ctx, domain.NewCategory{Name: gofakeit.UUID()})
	require.NoError(t, err)

	unknownCategory := uuid.New()
	result, err := catalog.CreateProducts(ctx, []domain.NewProduct{
		{CategoryID: &category.ID, Name: gofakeit.ProductName(), Price: decimal.RequireFromString("9.99"), Stock: 3},
		{CategoryID: &unknownCategory, Name: "orphan", Price: decimal.RequireFromString("1.00")},
		{Name: "", Price: decimal.RequireFromString("1.00")},
		{CategoryID: &category.ID, Name: gofakeit.ProductName(), Price: decimal.RequireFromString("19.99"), Stock: 1},
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "orphan", result.Failed[0].Product)
	assert.Equal(t, domain.ErrCategoryNotFound.Message, result.Failed[0].Error)

	_, err = catalog.CreateProducts(ctx, nil)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	products, page, err := catalog.ListProducts(ctx, domain.ProductFilter{
		CategoryID: &category.ID,
		Page:       domain.Page{Page: 1, Limit: 1},
	})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(2), page.TotalItems)
	assert.Equal(t, int64(2), page.TotalPages)
	require.NotNil(t, products[0].CategoryName)
	assert.Equal(t, category.Name, *products[0].CategoryName)

	require.NoError(t, catalog.DeleteProduct(ctx, result.Created[0].ID))
	_, err = catalog.GetProduct(ctx, result.Created[0].ID)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func categoryIDs(categories []domain.Category) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	return ids
}
