package notify

import (
	"context"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"go.uber.org/zap"
)

// LogNotifier stands in for the Mailer when SMTP is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) OrderConfirmed(ctx context.Context, user domain.User, order domain.Order) error {
	logger.FromContext(ctx, n.log).Info("order confirmation",
		zap.String("to", user.Email),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()),
	)
	return nil
}

func (n *LogNotifier) PasswordReset(ctx context.Context, user domain.User, _ string, ttl time.Duration) error {
	// the link carries a credential and is never logged
	logger.FromContext(ctx, n.log).Info("password reset requested",
		zap.String("to", user.Email),
		zap.Duration("ttl", ttl),
	)
	return nil
}
