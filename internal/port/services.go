package port

import (
	"context"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
)

// OrderNotifier is called after an order is committed. Failures never affect the order.
type OrderNotifier interface {
	OrderConfirmed(ctx context.Context, user domain.User, order domain.Order) error
}

type PasswordResetNotifier interface {
	PasswordReset(ctx context.Context, user domain.User, link string, ttl time.Duration) error
}

type PaymentGateway interface {
	// Charge reports whether the payment was accepted.
	Charge(ctx context.Context, order domain.Order) (bool, error)
}

type CategoryCache interface {
	Get(ctx context.Context) ([]domain.Category, bool, error)
	Set(ctx context.Context, categories []domain.Category) error
	Invalidate(ctx context.Context) error
}
