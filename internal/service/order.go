package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const notifyTimeout = 30 * time.Second

type OrderService struct {
	store    port.Store
	payments port.PaymentGateway
	notifier port.OrderNotifier
	log      *zap.Logger
	currency currency.Unit

	now         func() time.Time
	orderNumber func(time.Time) string

	pending sync.WaitGroup
}

type OrderOption func(*OrderService)

func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) {
		s.now = now
	}
}

func WithOrderNumbers(next func(time.Time) string) OrderOption {
	return func(s *OrderService) {
		s.orderNumber = next
	}
}

func NewOrderService(
	store port.Store,
	payments port.PaymentGateway,
	notifier port.OrderNotifier,
	log *zap.Logger,
	unit currency.Unit,
	opts ...OrderOption,
) *OrderService {
	s := &OrderService{
		store:       store,
		payments:    payments,
		notifier:    notifier,
		log:         log,
		currency:    unit,
		now:         time.Now,
		orderNumber: domain.NewOrderNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout turns the user's cart into a pending order. Stock is decremented and the
// cart cleared in the same transaction; on any error nothing is persisted.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req domain.CheckoutRequest) (domain.Order, error) {
	if err := validateCheckout(req); err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	err := s.store.Atomic(ctx, func(repos port.Repositories) error {
		lines, err := repos.Carts.CheckoutLines(ctx, userID)
		if err != nil {
			return fmt.Errorf("repos.Carts.CheckoutLines: %w", err)
		}

		if err := domain.ValidateStock(lines); err != nil {
			return err
		}

		totals := domain.PriceLines(lines, s.currency)

		order, err = repos.Orders.Create(ctx, domain.Order{
			UserID:          userID,
			OrderNumber:     s.orderNumber(s.now()),
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Total:           totals.Total,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("repos.Orders.Create: %w", err)
		}

		// lines are sorted by product id; product rows are locked in that order
		order.Items = make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			item, err := repos.Orders.AddItem(ctx, line.Snapshot(order.ID))
			if err != nil {
				return fmt.Errorf("repos.Orders.AddItem: %w", err)
			}

			ok, err := repos.Products.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("repos.Products.DecrementStock: %w", err)
			}
			if !ok {
				return domain.InsufficientStock(line.ProductName)
			}

			order.Items = append(order.Items, item)
		}
		order.ItemsCount = int64(len(order.Items))

		// the locked cart must still hold the lines that were priced
		cleared, err := repos.Carts.Clear(ctx, userID)
		if err != nil {
			return fmt.Errorf("repos.Carts.Clear: %w", err)
		}
		if cleared == 0 {
			return domain.ErrEmptyCart
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.notifyConfirmed(ctx, order)

	return order, nil
}

// Cancel restores stock for every item and marks the order cancelled.
// Orders of other users are reported as not found to non-admins.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, principal domain.Principal) (domain.Order, error) {
	var cancelled domain.Order
	err := s.store.Atomic(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.VisibleTo(principal) {
			return domain.ErrOrderNotFound
		}

		if err := order.CheckCancel(); err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := repos.Products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("repos.Products.IncrementStock: %w", err)
			}
		}

		cancelled, err = repos.Orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("repos.Orders.UpdateStatus: %w", err)
		}
		cancelled.Items = order.Items
		cancelled.ItemsCount = order.ItemsCount

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	logger.FromContext(ctx, s.log).Info("order cancelled",
		zap.String("order_number", cancelled.OrderNumber),
		zap.String("by", principal.UserID.String()),
	)

	return cancelled, nil
}

// Pay runs a simulated charge. Both outcomes are committed; a declined charge is
// reported as ErrPaymentDeclined after the failed status is stored.
func (s *OrderService) Pay(ctx context.Context, orderID uuid.UUID, principal domain.Principal) (domain.Order, error) {
	var (
		paid     domain.Order
		declined bool
	)

	err := s.store.Atomic(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.VisibleTo(principal) {
			return domain.ErrOrderNotFound
		}

		if err := order.CheckPay(); err != nil {
			return err
		}

		accepted, err := s.payments.Charge(ctx, order)
		if err != nil {
			return fmt.Errorf("payments.Charge: %w", err)
		}

		status, payment := domain.OrderStatusConfirmed, domain.PaymentStatusPaid
		if !accepted {
			status, payment = order.Status, domain.PaymentStatusFailed
			declined = true
		}

		paid, err = repos.Orders.UpdatePayment(ctx, order.ID, status, payment)
		if err != nil {
			return fmt.Errorf("repos.Orders.UpdatePayment: %w", err)
		}
		paid.Items = order.Items
		paid.ItemsCount = order.ItemsCount

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if declined {
		return domain.Order{}, domain.ErrPaymentDeclined
	}

	return paid, nil
}

// Advance moves a paid order through fulfilment: confirmed -> shipped -> delivered.
func (s *OrderService) Advance(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, domain.Validation("status[%s] is not valid", next)
	}

	var advanced domain.Order
	err := s.store.Atomic(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.CheckAdvance(next); err != nil {
			return err
		}

		advanced, err = repos.Orders.UpdateStatus(ctx, order.ID, next)
		if err != nil {
			return fmt.Errorf("repos.Orders.UpdateStatus: %w", err)
		}
		advanced.Items = order.Items
		advanced.ItemsCount = order.ItemsCount

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return advanced, nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID, principal domain.Principal) (domain.Order, error) {
	order, err := s.store.Repositories().Orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !order.VisibleTo(principal) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.store.Repositories().Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repos.Orders.ListByUser: %w", err)
	}
	return orders, nil
}

// Wait blocks until every dispatched notification has finished.
func (s *OrderService) Wait() {
	s.pending.Wait()
}

func (s *OrderService) notifyConfirmed(ctx context.Context, order domain.Order) {
	log := logger.FromContext(ctx, s.log).With(zap.String("order_number", order.OrderNumber))
	log.Info("order created",
		zap.String("total", order.Total.String()),
		zap.Int64("items", order.ItemsCount),
	)

	if s.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		user, err := s.store.Repositories().Users.GetByID(notifyCtx, order.UserID)
		if err != nil {
			log.Warn("order confirmation skipped", zap.Error(err))
			return
		}

		if err := s.notifier.OrderConfirmed(notifyCtx, user, order); err != nil {
			log.Warn("order confirmation failed", zap.Error(err))
		}
	}()
}

func validateCheckout(req domain.CheckoutRequest) error {
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return domain.Validation("payment_method is required")
	}

	address := req.ShippingAddress
	fields := []struct {
		name  string
		value string
	}{
		{"street", address.Street},
		{"city", address.City},
		{"state", address.State},
		{"zip", address.Zip},
		{"country", address.Country},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return domain.Validation("shipping_address.%s is required", field.name)
		}
	}

	return nil
}
