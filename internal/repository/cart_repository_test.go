package repository_test

import (
	"testing"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/cyberfanta/shopping-exercise/internal/repository"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type cartRepositorySuite struct {
	suite.Suite

	repo  port.CartRepository
	repos port.Repositories
	pool  *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repos = repository.NewStore(suite.pool).Repositories()
	suite.repo = repository.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartRepositorySuite) TestAddItem() {
	defer suite.deleteAll()

	t := suite.T()
	owner := createUser(t, suite.repos)
	product := createProduct(t, suite.repos, 10)

	tests := []struct {
		name      string
		ownerID   uuid.UUID
		item      domain.CartItem
		wantError string
	}{
		{
			name:    "add item to cart: ok",
			ownerID: owner.ID,
			item:    cartItemOf(product, 2, randomMoney()),
		},
		{
			name:      "add item with empty owner ID: error",
			ownerID:   uuid.Nil,
			item:      cartItemOf(product, 1, randomMoney()),
			wantError: "ownerID is empty",
		},
		{
			name:      "add item with zero quantity: error",
			ownerID:   owner.ID,
			item:      cartItemOf(product, 0, randomMoney()),
			wantError: "quantity[0] is not positive",
		},
		{
			name:    "add item with zero price amount: ok",
			ownerID: createUser(t, suite.repos).ID,
			item: cartItemOf(product, 1, domain.Money{
				Amount:   decimal.Zero,
				Currency: randomCurrency(),
			}),
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			_, err := suite.repo.AddItem(ctx, tt.ownerID, tt.item)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			// Verify the item was added
			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			require.NoError(t, err)

			require.Len(t, cart.Items, 1)
			assertCartItem(t, tt.item, cart.Items[0])
		})
	}
}

func (suite *cartRepositorySuite) TestAddItemMergesQuantity() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	owner := createUser(t, suite.repos)
	product := createProduct(t, suite.repos, 10)
	price := randomMoney()

	_, err := suite.repo.AddItem(ctx, owner.ID, cartItemOf(product, 2, price))
	require.NoError(t, err)

	merged, err := suite.repo.AddItem(ctx, owner.ID, cartItemOf(product, 3, randomMoney()))
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Quantity)

	quantity, err := suite.repo.ItemQuantity(ctx, owner.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, quantity)

	cart, err := suite.repo.GetCart(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	// the first captured price wins
	assertCartItem(t, cartItemOf(product, 5, price), cart.Items[0])
}

func (suite *cartRepositorySuite) TestDeleteItem() {
	defer suite.deleteAll()

	t := suite.T()
	owner := createUser(t, suite.repos)
	stranger := createUser(t, suite.repos)
	product := createProduct(t, suite.repos, 10)

	tests := []struct {
		name        string
		ownerID     uuid.UUID
		setup       bool
		itemID      uuid.UUID
		wantDeleted bool
		wantError   string
	}{
		{
			name:        "delete existing item: ok",
			ownerID:     owner.ID,
			setup:       true,
			wantDeleted: true,
		},
		{
			name:        "delete non-existing item: not found",
			ownerID:     owner.ID,
			itemID:      uuid.New(),
			wantDeleted: false,
		},
		{
			name:        "delete another user's item: not found",
			ownerID:     stranger.ID,
			setup:       true,
			wantDeleted: false,
		},
		{
			name:      "delete with empty owner ID: error",
			ownerID:   uuid.Nil,
			itemID:    uuid.New(),
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			itemID := tt.itemID
			if tt.setup {
				added, err := suite.repo.AddItem(ctx, owner.ID, cartItemOf(product, 1, randomMoney()))
				require.NoError(t, err)
				itemID = added.ID
			}

			deleted, err := suite.repo.DeleteItem(ctx, tt.ownerID, itemID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
		})
	}
}

func (suite *cartRepositorySuite) TestGetCart() {
	defer suite.deleteAll()

	t := suite.T()
	first := createProduct(t, suite.repos, 5)
	second := createProduct(t, suite.repos, 7)

	tests := []struct {
		name       string
		ownerID    uuid.UUID
		setupItems []domain.CartItem
		wantError  string
	}{
		{
			name:    "get cart with items: ok",
			ownerID: createUser(t, suite.repos).ID,
			setupItems: []domain.CartItem{
				cartItemOf(first, 1, randomMoney()),
				cartItemOf(second, 3, randomMoney()),
			},
		},
		{
			name:       "get empty cart: ok",
			ownerID:    createUser(t, suite.repos).ID,
			setupItems: []domain.CartItem{},
		},
		{
			name:      "get cart with empty owner ID: error",
			ownerID:   uuid.Nil,
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			// Setup: add items to cart
			for _, item := range tt.setupItems {
				_, err := suite.repo.AddItem(ctx, tt.ownerID, item)
				require.NoError(t, err)
			}

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			assert.NotEqual(t, uuid.Nil, cart.ID)
			assert.Len(t, cart.Items, len(tt.setupItems))

			for i, expectedItem := range tt.setupItems {
				assertCartItem(t, expectedItem, cart.Items[i])
			}
		})
	}
}

func (suite *cartRepositorySuite) TestSetItemQuantity() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	owner := createUser(t, suite.repos)
	stranger := createUser(t, suite.repos)
	product := createProduct(t, suite.repos, 10)

	added, err := suite.repo.AddItem(ctx, owner.ID, cartItemOf(product, 1, randomMoney()))
	require.NoError(t, err)

	require.NoError(t, suite.repo.SetItemQuantity(ctx, owner.ID, added.ID, 4))

	item, err := suite.repo.GetItem(ctx, owner.ID, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	err = suite.repo.SetItemQuantity(ctx, stranger.ID, added.ID, 2)
	require.ErrorIs(t, err, domain.ErrCartItemNotFound)

	_, err = suite.repo.GetItem(ctx, stranger.ID, added.ID)
	require.ErrorIs(t, err, domain.ErrCartItemNotFound)
}

func (suite *cartRepositorySuite) TestCheckoutLines() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	owner := createUser(t, suite.repos)
	products := []domain.Product{
		createProduct(t, suite.repos, 3),
		createProduct(t, suite.repos, 4),
		createProduct(t, suite.repos, 5),
	}
	for _, product := range products {
		_, err := suite.repo.AddItem(ctx, owner.ID, cartItemOf(product, 1, randomMoney()))
		require.NoError(t, err)
	}

	inactive := products[2]
	require.NoError(t, suite.repos.Products.Deactivate(ctx, inactive.ID))

	lines, err := suite.repo.CheckoutLines(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].ProductID.String() < lines[1].ProductID.String(), "lines are ordered by product id")
	for _, line := range lines {
		assert.NotEqual(t, inactive.ID, line.ProductID)
	}

	noCart, err := suite.repo.CheckoutLines(ctx, createUser(t, suite.repos).ID)
	require.NoError(t, err)
	assert.Empty(t, noCart)
}

func (suite *cartRepositorySuite) TestClearAndStats() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	first := createUser(t, suite.repos)
	second := createUser(t, suite.repos)
	product := createProduct(t, suite.repos, 10)
	other := createProduct(t, suite.repos, 10)

	price := domain.Money{Amount: decimal.RequireFromString("10.50"), Currency: currency.MXN}
	_, err := suite.repo.AddItem(ctx, first.ID, cartItemOf(product, 2, price))
	require.NoError(t, err)
	_, err = suite.repo.AddItem(ctx, first.ID, cartItemOf(other, 1, price))
	require.NoError(t, err)
	_, err = suite.repo.AddItem(ctx, second.ID, cartItemOf(product, 1, price))
	require.NoError(t, err)

	stats, err := suite.repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActiveCarts)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(4), stats.TotalQuantity)
	assert.True(t, decimal.RequireFromString("42.00").Equal(stats.TotalValue), stats.TotalValue.String())
	assert.True(t, decimal.RequireFromString("1.50").Equal(stats.AvgItemsPerCart), stats.AvgItemsPerCart.String())

	summaries, total, err := suite.repo.ListNonEmpty(ctx, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, summaries, 2)

	summary, err := suite.repo.Summary(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, summary.UserEmail)
	assert.Equal(t, int64(2), summary.ItemsCount)
	assert.True(t, decimal.RequireFromString("31.50").Equal(summary.Subtotal), summary.Subtotal.String())

	cleared, err := suite.repo.Clear(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	_, total, err = suite.repo.ListNonEmpty(ctx, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = suite.repo.Summary(ctx, createUser(t, suite.repos).ID)
	require.ErrorIs(t, err, domain.ErrCartNotFound)
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_items, carts CASCADE")
	suite.NoError(err)
}

func cartItemOf(product domain.Product, quantity int, price domain.Money) domain.CartItem {
	return domain.CartItem{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductDescription: product.Description,
		ImageURL:           product.ImageURL,
		Quantity:           quantity,
		Price:              price,
		Stock:              product.Stock,
	}
}

func assertCartItem(t *testing.T, expected, actual domain.CartItem) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "ID", "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
}
