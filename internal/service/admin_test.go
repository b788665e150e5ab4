package service_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func (suite *serviceSuite) TestCartItems() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("7.25", 4)

	_, err := suite.carts.AddItem(ctx, user.ID, product.ID, 5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = suite.carts.AddItem(ctx, user.ID, product.ID, 0)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = suite.carts.AddItem(ctx, user.ID, uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	item, err := suite.carts.AddItem(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)

	_, err = suite.carts.AddItem(ctx, user.ID, product.ID, 2)
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "merged quantity exceeds stock")

	require.ErrorIs(t, suite.carts.UpdateItem(ctx, user.ID, item.ID, 5), domain.ErrInsufficientStock)
	require.NoError(t, suite.carts.UpdateItem(ctx, user.ID, item.ID, 4))

	cart, err := suite.carts.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, "29.00", cart.Total(suite.carts.Currency()).Amount.StringFixed(2))

	stranger := suite.createUser()
	require.ErrorIs(t, suite.carts.RemoveItem(ctx, stranger.ID, item.ID), domain.ErrCartItemNotFound)
	require.ErrorIs(t, suite.carts.UpdateItem(ctx, stranger.ID, item.ID, 1), domain.ErrCartItemNotFound)

	require.NoError(t, suite.carts.RemoveItem(ctx, user.ID, item.ID))
	require.ErrorIs(t, suite.carts.RemoveItem(ctx, user.ID, item.ID), domain.ErrCartItemNotFound)
}

func (suite *serviceSuite) TestAdminCarts() {
	t := suite.T()
	ctx := t.Context()

	admin := service.NewAdminService(suite.store, suite.orders, zaptest.NewLogger(t))

	user := suite.createUser()
	product := suite.createProduct("10.00", 10)
	suite.addToCart(user.ID, product.ID, 3)

	summary, err := admin.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, summary.UserEmail)
	assert.Equal(t, int64(1), summary.ItemsCount)
	assert.Equal(t, "30.00", summary.Subtotal.StringFixed(2))
	require.Len(t, summary.Items, 1)

	carts, page, err := admin.ListCarts(ctx, domain.Page{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, page.TotalItems, int64(1))
	found := false
	for _, cart := range carts {
		if cart.UserID == user.ID {
			found = true
		}
	}
	assert.True(t, found)

	stats, err := admin.CartStats(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.ActiveCarts, int64(1))
	assert.GreaterOrEqual(t, stats.TotalQuantity, int64(3))

	require.NoError(t, admin.ClearCart(ctx, user.ID))
	cart, err := suite.carts.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.ErrorIs(t, admin.ClearCart(ctx, uuid.New()), domain.ErrCartNotFound)
}

func (suite *serviceSuite) TestAdminOrders() {
	t := suite.T()
	ctx := t.Context()

	admin := service.NewAdminService(suite.store, suite.orders, zaptest.NewLogger(t))
	adminPrincipal := domain.Principal{UserID: suite.createUser().ID, Role: domain.RoleAdmin}

	user := suite.createUser()
	product := suite.createProduct("10.00", 10)
	suite.addToCart(user.ID, product.ID, 2)

	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	pending := domain.OrderStatusPending
	orders, _, err := admin.ListOrders(ctx, &pending, domain.Page{Page: 1, Limit: 100})
	require.NoError(t, err)
	for _, listed := range orders {
		assert.Equal(t, domain.OrderStatusPending, listed.Status)
	}

	invalid := domain.OrderStatus("lost")
	_, _, err = admin.ListOrders(ctx, &invalid, domain.Page{Page: 1, Limit: 10})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	got, err := admin.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = admin.CancelOrder(ctx, order.ID, domain.Principal{UserID: user.ID, Role: domain.RoleUser})
	require.ErrorIs(t, err, domain.ErrForbidden)

	cancelled, err := admin.CancelOrder(ctx, order.ID, adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, suite.stockOf(product.ID))

	_, err = admin.AdvanceOrder(ctx, order.ID, domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func (suite *serviceSuite) TestUserManagement() {
	t := suite.T()
	ctx := t.Context()

	superEmail := gofakeit.Email()
	users := service.NewUserService(suite.store, superEmail)

	super, err := suite.store.Repositories().Users.Create(ctx, domain.User{
		Email:        superEmail,
		PasswordHash: "hash",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	})
	require.NoError(t, err)

	adminUser := suite.createUser()
	target := suite.createUser()

	superPrincipal := domain.Principal{UserID: super.ID, Email: super.Email, Role: domain.RoleUser}
	adminPrincipal := domain.Principal{UserID: adminUser.ID, Email: adminUser.Email, Role: domain.RoleAdmin}

	role := domain.RoleAdmin
	_, err = users.Update(ctx, target.ID, domain.UserPatch{Role: &role}, adminPrincipal)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err), "only the superadmin assigns roles")

	promoted, err := users.Update(ctx, target.ID, domain.UserPatch{Role: &role}, superPrincipal)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	name := gofakeit.FirstName()
	_, err = users.Update(ctx, super.ID, domain.UserPatch{ProfilePatch: domain.ProfilePatch{FirstName: &name}}, adminPrincipal)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	inactive := false
	self, err := users.Update(ctx, super.ID, domain.UserPatch{
		ProfilePatch: domain.ProfilePatch{FirstName: &name},
		IsActive:     &inactive,
	}, superPrincipal)
	require.NoError(t, err)
	assert.Equal(t, name, self.FirstName)
	assert.True(t, self.IsActive)

	assert.Equal(t, domain.KindForbidden, domain.KindOf(users.Delete(ctx, super.ID)))

	require.NoError(t, users.Delete(ctx, target.ID))
	got, err := users.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.ErrorIs(t, users.Delete(ctx, uuid.New()), domain.ErrUserNotFound)

	invalid := domain.Role("root")
	_, _, err = users.List(ctx, domain.UserFilter{Role: &invalid, Page: domain.Page{Page: 1, Limit: 10}})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
