package port

import (
	"context"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/google/uuid"
)

type CartRepository interface {
	// GetCart returns the owner's cart, creating an empty one on first access.
	GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error)
	ItemQuantity(ctx context.Context, ownerID, productID uuid.UUID) (int, error)
	// AddItem merges quantity into an existing line for the same product.
	AddItem(ctx context.Context, ownerID uuid.UUID, item domain.CartItem) (domain.CartItem, error)
	GetItem(ctx context.Context, ownerID, itemID uuid.UUID) (domain.CartItem, error)
	SetItemQuantity(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) (bool, error)
	Clear(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// CheckoutLines reads active lines with live stock, ordered by product id.
	// Inside Atomic the cart stays locked until the unit ends.
	CheckoutLines(ctx context.Context, ownerID uuid.UUID) ([]domain.CheckoutLine, error)

	ListNonEmpty(ctx context.Context, page domain.Page) ([]domain.CartSummary, int64, error)
	Summary(ctx context.Context, ownerID uuid.UUID) (domain.CartSummary, error)
	Stats(ctx context.Context) (domain.CartStats, error)
}

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	Create(ctx context.Context, product domain.NewProduct) (domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (domain.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Stock(ctx context.Context, id uuid.UUID) (int, error)

	// DecrementStock reports false when the product is inactive or has fewer than quantity units.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Category, error)
	Create(ctx context.Context, category domain.NewCategory) (domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (domain.Category, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Order, error)
	// GetForUpdate locks the order row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, page domain.Page) ([]domain.OrderWithUser, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, status domain.OrderStatus, payment domain.PaymentStatus) (domain.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error)

	CreateResetToken(ctx context.Context, token domain.ResetToken) error
	// ConsumeResetToken marks a valid token used and returns its user.
	ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Repositories is bound either to the pool or to one transaction.
type Repositories struct {
	Carts      CartRepository
	Products   ProductRepository
	Categories CategoryRepository
	Orders     OrderRepository
	Users      UserRepository
}

type Store interface {
	Repositories() Repositories
	// Atomic runs fn in one transaction. Any error returned by fn, or a panic, rolls it back.
	Atomic(ctx context.Context, fn func(repos Repositories) error) error
}
