package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cyberfanta/shopping-exercise/internal/db"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q *db.Queries
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: db.New(pool)}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{q: db.New(tx)}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.UserID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("userID is empty")
	}

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("json.Marshal: %w", err)
	}

	row, err := r.q.CreateOrder(ctx, db.CreateOrderParams{
		UserID:          order.UserID,
		OrderNumber:     order.OrderNumber,
		Subtotal:        order.Subtotal.Amount,
		Tax:             order.Tax.Amount,
		Shipping:        order.Shipping.Amount,
		Total:           order.Total.Amount,
		Currency:        order.Total.Currency.String(),
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: address,
		Notes:           order.Notes,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
	}

	return mapOrderToDomain(row)
}

func (r *orderRepository) AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	row, err := r.q.CreateOrderItem(ctx, db.CreateOrderItemParams{
		OrderID:            item.OrderID,
		ProductID:          item.ProductID,
		ProductName:        item.ProductName,
		ProductDescription: item.ProductDescription,
		Quantity:           int32(item.Quantity),
		UnitPrice:          item.UnitPrice.Amount,
		Subtotal:           item.Subtotal.Amount,
	})
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("q.CreateOrderItem: %w", err)
	}

	return mapOrderItemToDomain(row, item.UnitPrice.Currency), nil
}

func (r *orderRepository) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	return r.withItems(ctx, row)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrderForUpdate(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderForUpdate: %w", err)
	}

	return r.withItems(ctx, row)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.q.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListUserOrders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(db.Order{
			ID:              row.ID,
			UserID:          row.UserID,
			OrderNumber:     row.OrderNumber,
			Status:          row.Status,
			PaymentStatus:   row.PaymentStatus,
			Subtotal:        row.Subtotal,
			Tax:             row.Tax,
			Shipping:        row.Shipping,
			Total:           row.Total,
			Currency:        row.Currency,
			PaymentMethod:   row.PaymentMethod,
			ShippingAddress: row.ShippingAddress,
			Notes:           row.Notes,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
		order.ItemsCount = row.ItemsCount

		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus, page domain.Page) ([]domain.OrderWithUser, int64, error) {
	var statusFilter *string
	if status != nil {
		value := string(*status)
		statusFilter = &value
	}

	rows, err := r.q.ListOrders(ctx, db.ListOrdersParams{
		Status: statusFilter,
		Lim:    int32(page.Limit),
		Off:    int32(page.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListOrders: %w", err)
	}

	total, err := r.q.CountOrders(ctx, statusFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountOrders: %w", err)
	}

	orders := make([]domain.OrderWithUser, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(db.Order{
			ID:              row.ID,
			UserID:          row.UserID,
			OrderNumber:     row.OrderNumber,
			Status:          row.Status,
			PaymentStatus:   row.PaymentStatus,
			Subtotal:        row.Subtotal,
			Tax:             row.Tax,
			Shipping:        row.Shipping,
			Total:           row.Total,
			Currency:        row.Currency,
			PaymentMethod:   row.PaymentMethod,
			ShippingAddress: row.ShippingAddress,
			Notes:           row.Notes,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		if err != nil {
			return nil, 0, err
		}
		order.ItemsCount = row.ItemsCount

		orders = append(orders, domain.OrderWithUser{
			Order:         order,
			UserEmail:     row.UserEmail,
			UserFirstName: row.UserFirstName,
			UserLastName:  row.UserLastName,
		})
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.Validation("status[%s] is not valid", status)
	}

	row, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ID:     id,
		Status: string(status),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	return mapOrderToDomain(row)
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, status domain.OrderStatus, payment domain.PaymentStatus) (domain.Order, error) {
	row, err := r.q.UpdateOrderPayment(ctx, db.UpdateOrderPaymentParams{
		ID:            id,
		Status:        string(status),
		PaymentStatus: string(payment),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.UpdateOrderPayment: %w", err)
	}

	return mapOrderToDomain(row)
}

func (r *orderRepository) withItems(ctx context.Context, row db.Order) (domain.Order, error) {
	order, err := mapOrderToDomain(row)
	if err != nil {
		return domain.Order{}, err
	}

	rows, err := r.q.ListOrderItems(ctx, row.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	order.Items = make([]domain.OrderItem, 0, len(rows))
	for _, itemRow := range rows {
		order.Items = append(order.Items, mapOrderItemToDomain(itemRow, order.Total.Currency))
	}
	order.ItemsCount = int64(len(order.Items))

	return order, nil
}

func mapOrderToDomain(row db.Order) (domain.Order, error) {
	unit, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	var address domain.ShippingAddress
	if err := json.Unmarshal(row.ShippingAddress, &address); err != nil {
		return domain.Order{}, fmt.Errorf("json.Unmarshal shipping_address: %w", err)
	}

	return domain.Order{
		ID:              row.ID,
		UserID:          row.UserID,
		OrderNumber:     row.OrderNumber,
		Status:          domain.OrderStatus(row.Status),
		PaymentStatus:   domain.PaymentStatus(row.PaymentStatus),
		Subtotal:        domain.NewMoney(row.Subtotal, unit),
		Tax:             domain.NewMoney(row.Tax, unit),
		Shipping:        domain.NewMoney(row.Shipping, unit),
		Total:           domain.NewMoney(row.Total, unit),
		PaymentMethod:   row.PaymentMethod,
		ShippingAddress: address,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func mapOrderItemToDomain(row db.OrderItem, unit currency.Unit) domain.OrderItem {
	return domain.OrderItem{
		ID:                 row.ID,
		OrderID:            row.OrderID,
		ProductID:          row.ProductID,
		ProductName:        row.ProductName,
		ProductDescription: row.ProductDescription,
		Quantity:           int(row.Quantity),
		UnitPrice:          domain.NewMoney(row.UnitPrice, unit),
		Subtotal:           domain.NewMoney(row.Subtotal, unit),
		CreatedAt:          row.CreatedAt,
	}
}
