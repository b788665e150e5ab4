package service_test

import (
	"errors"
	"regexp"
	"sync"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d+-[A-Z2-7]{7}$`)

func (suite *serviceSuite) TestCheckout() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	first := suite.createProduct("100.00", 10)
	second := suite.createProduct("25.50", 3)

	suite.addToCart(user.ID, first.ID, 2)
	suite.addToCart(user.ID, second.ID, 1)

	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)

	// 2 x 100.00 + 1 x 25.50
	assert.Equal(t, "225.50", order.Subtotal.Amount.StringFixed(2))
	assert.Equal(t, "36.08", order.Tax.Amount.StringFixed(2))
	assert.Equal(t, "50.00", order.Shipping.Amount.StringFixed(2))
	assert.Equal(t, "311.58", order.Total.Amount.StringFixed(2))

	require.Len(t, order.Items, 2)
	itemsSum := decimal.Zero
	for _, item := range order.Items {
		itemsSum = itemsSum.Add(item.Subtotal.Amount)
	}
	assert.True(t, order.Subtotal.Amount.Equal(itemsSum))

	assert.Equal(t, 8, suite.stockOf(first.ID))
	assert.Equal(t, 2, suite.stockOf(second.ID))

	cart, err := suite.carts.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	stored, err := suite.orders.Get(ctx, order.ID, domain.Principal{UserID: user.ID, Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.True(t, order.Total.Amount.Equal(stored.Total.Amount))

	suite.orders.Wait()
	sent := suite.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, order.ID, sent[0].ID)
}

func (suite *serviceSuite) TestCheckoutFreeShipping() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("250.01", 5)
	suite.addToCart(user.ID, product.ID, 2)

	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "500.02", order.Subtotal.Amount.StringFixed(2))
	assert.True(t, order.Shipping.Amount.IsZero())
	assert.Equal(t, "580.02", order.Total.Amount.StringFixed(2))
}

func (suite *serviceSuite) TestCheckoutEmptyCart() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()

	_, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	// an existing but empty cart
	_, err = suite.carts.Get(ctx, user.ID)
	require.NoError(t, err)

	_, err = suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, suite.ordersOf(user.ID))
}

func (suite *serviceSuite) TestCheckoutValidation() {
	t := suite.T()

	req := checkoutRequest()
	req.ShippingAddress.Zip = " "

	_, err := suite.orders.Checkout(t.Context(), suite.createUser().ID, req)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func (suite *serviceSuite) TestCheckoutInsufficientStock() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	plenty := suite.createProduct("10.00", 10)
	scarce := suite.createProduct("20.00", 5)

	suite.addToCart(user.ID, plenty.ID, 1)
	suite.addToCart(user.ID, scarce.ID, 5)

	// someone else buys the scarce product after it was added to the cart
	_, err := suite.store.Repositories().Products.Update(ctx, scarce.ID, domain.ProductPatch{Stock: ptr(3)})
	require.NoError(t, err)

	_, err = suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), scarce.Name)

	assert.Equal(t, 10, suite.stockOf(plenty.ID))
	assert.Equal(t, 3, suite.stockOf(scarce.ID))
	assert.Empty(t, suite.ordersOf(user.ID))

	cart, err := suite.carts.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func (suite *serviceSuite) TestCheckoutRollsBackMidway() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	first := suite.createProduct("10.00", 10)
	second := suite.createProduct("20.00", 10)

	suite.addToCart(user.ID, first.ID, 1)
	suite.addToCart(user.ID, second.ID, 2)

	orders := suite.newOrderService(failingStore{Store: suite.store, failOn: 2})

	_, err := orders.Checkout(ctx, user.ID, checkoutRequest())
	require.ErrorIs(t, err, errInjected)

	assert.Equal(t, 10, suite.stockOf(first.ID), "first decrement must be rolled back")
	assert.Equal(t, 10, suite.stockOf(second.ID))
	assert.Empty(t, suite.ordersOf(user.ID))

	cart, err := suite.carts.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	orders.Wait()
	assert.Empty(t, suite.notifier.sent())
}

func (suite *serviceSuite) TestConcurrentCheckout() {
	const stock = 5

	tests := []struct {
		name        string
		buyers      int
		wantOrders  int
		wantFailure int
	}{
		{name: "exactly enough stock", buyers: stock, wantOrders: stock},
		{name: "one buyer too many", buyers: stock + 1, wantOrders: stock, wantFailure: 1},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			product := suite.createProduct("15.00", stock)

			users := make([]uuid.UUID, tt.buyers)
			for i := range users {
				users[i] = suite.createUser().ID
				suite.addToCart(users[i], product.ID, 1)
			}

			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				ok       int
				failures []error
			)

			for _, userID := range users {
				wg.Add(1)
				go func() {
					defer wg.Done()

					_, err := suite.orders.Checkout(ctx, userID, checkoutRequest())

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						failures = append(failures, err)
						return
					}
					ok++
				}()
			}
			wg.Wait()

			assert.Equal(t, tt.wantOrders, ok)
			require.Len(t, failures, tt.wantFailure)
			for _, err := range failures {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
			assert.Equal(t, 0, suite.stockOf(product.ID))
		})
	}
}

func (suite *serviceSuite) TestConcurrentCheckoutSameUser() {
	const attempts = 4

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("15.00", 10)
	suite.addToCart(user.ID, product.ID, 2)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		failures []error
	)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			ok++
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	require.Len(t, failures, attempts-1)
	for _, err := range failures {
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	}
	assert.Len(t, suite.ordersOf(user.ID), 1)
	assert.Equal(t, 8, suite.stockOf(product.ID), "one cart is decremented once")
}

func (suite *serviceSuite) TestCheckoutCartAlreadyCleared() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("10.00", 5)
	suite.addToCart(user.ID, product.ID, 1)

	orders := suite.newOrderService(emptiedCartStore{Store: suite.store})

	_, err := orders.Checkout(ctx, user.ID, checkoutRequest())
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Equal(t, 5, suite.stockOf(product.ID))
	assert.Empty(t, suite.ordersOf(user.ID))
}

func (suite *serviceSuite) TestCancel() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	owner := domain.Principal{UserID: user.ID, Role: domain.RoleUser}
	product := suite.createProduct("40.00", 6)

	suite.addToCart(user.ID, product.ID, 4)
	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, suite.stockOf(product.ID))

	stranger := domain.Principal{UserID: suite.createUser().ID, Role: domain.RoleUser}
	_, err = suite.orders.Cancel(ctx, order.ID, stranger)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = suite.orders.Cancel(ctx, uuid.New(), owner)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	cancelled, err := suite.orders.Cancel(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 6, suite.stockOf(product.ID))

	_, err = suite.orders.Cancel(ctx, order.ID, owner)
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 6, suite.stockOf(product.ID), "stock is restored once")
}

func (suite *serviceSuite) TestConcurrentCancel() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	owner := domain.Principal{UserID: user.ID, Role: domain.RoleUser}
	product := suite.createProduct("40.00", 3)

	suite.addToCart(user.ID, product.ID, 3)
	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	const attempts = 4
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = suite.orders.Cancel(ctx, order.ID, owner)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 3, suite.stockOf(product.ID))
}

func (suite *serviceSuite) TestCancelAfterShipping() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	owner := domain.Principal{UserID: user.ID, Role: domain.RoleUser}
	admin := domain.Principal{UserID: suite.createUser().ID, Role: domain.RoleAdmin}
	product := suite.createProduct("12.00", 5)

	suite.addToCart(user.ID, product.ID, 1)
	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	_, err = suite.orders.Advance(ctx, order.ID, domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrInvalidTransition, "unpaid orders are not shipped")

	_, err = suite.orders.Pay(ctx, order.ID, owner)
	require.NoError(t, err)

	shipped, err := suite.orders.Advance(ctx, order.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)

	_, err = suite.orders.Cancel(ctx, order.ID, owner)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = suite.orders.Cancel(ctx, order.ID, admin)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, 4, suite.stockOf(product.ID))
}

func (suite *serviceSuite) TestPay() {
	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	owner := domain.Principal{UserID: user.ID, Role: domain.RoleUser}
	product := suite.createProduct("30.00", 5)

	suite.addToCart(user.ID, product.ID, 1)
	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	suite.setAccept(false)
	_, err = suite.orders.Pay(ctx, order.ID, owner)
	require.ErrorIs(t, err, domain.ErrPaymentDeclined)

	declined, err := suite.orders.Get(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, declined.Status)
	assert.Equal(t, domain.PaymentStatusFailed, declined.PaymentStatus)

	suite.setAccept(true)
	paid, err := suite.orders.Pay(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, paid.Status)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)

	_, err = suite.orders.Pay(ctx, order.ID, owner)
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)

	// paid orders can still be cancelled before shipping
	cancelled, err := suite.orders.Cancel(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
}

func (suite *serviceSuite) TestNotifierFailureIsSwallowed() {
	t := suite.T()
	ctx := t.Context()

	suite.notifier.reset(errors.New("smtp unavailable"))

	user := suite.createUser()
	product := suite.createProduct("5.00", 5)
	suite.addToCart(user.ID, product.ID, 1)

	order, err := suite.orders.Checkout(ctx, user.ID, checkoutRequest())
	require.NoError(t, err)

	suite.orders.Wait()
	require.Len(t, suite.notifier.sent(), 1)

	stored, err := suite.orders.Get(ctx, order.ID, domain.Principal{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
}

func ptr[T any](v T) *T {
	return &v
}
