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

// AdminService backs the back-office views of carts and orders.
type AdminService struct {
	store  port.Store
	orders *OrderService
	log    *zap.Logger
}

func NewAdminService(store port.Store, orders *OrderService, log *zap.Logger) *AdminService {
	return &AdminService{store: store, orders: orders, log: log}
}

func (s *AdminService) ListCarts(ctx context.Context, page domain.Page) ([]domain.CartSummary, domain.PageInfo, error) {
	carts, total, err := s.store.Repositories().Carts.ListNonEmpty(ctx, page)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("repos.Carts.ListNonEmpty: %w", err)
	}
	return carts, domain.NewPageInfo(page, total), nil
}

func (s *AdminService) GetCart(ctx context.Context, userID uuid.UUID) (domain.CartSummary, error) {
	return s.store.Repositories().Carts.Summary(ctx, userID)
}

func (s *AdminService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	repos := s.store.Repositories()

	if _, err := repos.Carts.Summary(ctx, userID); err != nil {
		return err
	}

	removed, err := repos.Carts.Clear(ctx, userID)
	if err != nil {
		return fmt.Errorf("repos.Carts.Clear: %w", err)
	}

	logger.FromContext(ctx, s.log).Info("cart cleared by admin",
		zap.String("user_id", userID.String()),
		zap.Int64("items", removed),
	)
	return nil
}

func (s *AdminService) CartStats(ctx context.Context) (domain.CartStats, error) {
	stats, err := s.store.Repositories().Carts.Stats(ctx)
	if err != nil {
		return domain.CartStats{}, fmt.Errorf("repos.Carts.Stats: %w", err)
	}
	return stats, nil
}

func (s *AdminService) ListOrders(ctx context.Context, status *domain.OrderStatus, page domain.Page) ([]domain.OrderWithUser, domain.PageInfo, error) {
	if status != nil && !status.Valid() {
		return nil, domain.PageInfo{}, domain.Validation("status[%s] is not valid", *status)
	}

	orders, total, err := s.store.Repositories().Orders.List(ctx, status, page)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("repos.Orders.List: %w", err)
	}
	return orders, domain.NewPageInfo(page, total), nil
}

func (s *AdminService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return s.store.Repositories().Orders.Get(ctx, orderID)
}

func (s *AdminService) CancelOrder(ctx context.Context, orderID uuid.UUID, admin domain.Principal) (domain.Order, error) {
	if !admin.IsAdmin() {
		return domain.Order{}, domain.ErrForbidden
	}
	return s.orders.Cancel(ctx, orderID, admin)
}

func (s *AdminService) AdvanceOrder(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (domain.Order, error) {
	return s.orders.Advance(ctx, orderID, next)
}
